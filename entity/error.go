// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Error is the API's structured error document: an optional code, a message
// and per-field validation messages.
type Error struct {
	Code    int
	Message string
	Fields  map[string][]string
}

// Document is the result of parsing a response body: an *Entity or an *Error.
type Document interface {
	document()
}

func (*Error) document()  {}
func (*Entity) document() {}

// AddFieldError appends a message for field.
func (e *Error) AddFieldError(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// FieldErrors returns the messages recorded for field.
func (e *Error) FieldErrors(field string) []string {
	return e.Fields[field]
}

// Empty reports whether the document carries no information at all.
func (e *Error) Empty() bool {
	return e == nil || (e.Code == 0 && e.Message == "" && len(e.Fields) == 0)
}

// String renders the error document in one line.
func (e *Error) String() string {
	if e.Empty() {
		return "empty error document"
	}
	var b strings.Builder
	if e.Code != 0 {
		fmt.Fprintf(&b, "%d ", e.Code)
	}
	b.WriteString(e.Message)
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		fmt.Fprintf(&b, "; %s: %s", field, strings.Join(e.Fields[field], ", "))
	}
	return strings.TrimSpace(b.String())
}
