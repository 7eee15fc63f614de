// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stacklok/connect-client-go/entity"
)

var (
	// ErrMalformed indicates a body that is not JSON at all.
	ErrMalformed = errors.New("malformed document")

	// ErrInvalidDocument indicates JSON that does not have the shape of a Connect document.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrUnknownKind indicates an entity kind missing from the registry.
	ErrUnknownKind = errors.New("unknown entity kind")
)

// SchemaError lists every violation found while validating a document.
type SchemaError struct {
	Messages []string
}

// Error renders the violations as a numbered list.
func (e *SchemaError) Error() string {
	const prefix = "document schema validation failed"
	switch len(e.Messages) {
	case 0:
		return prefix
	case 1:
		return fmt.Sprintf("%s: %s", prefix, e.Messages[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s with %d errors:\n", prefix, len(e.Messages))
	for i, msg := range e.Messages {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Is makes errors.Is(err, ErrInvalidDocument) match.
func (*SchemaError) Is(target error) bool {
	return target == ErrInvalidDocument
}

// UnexpectedDocumentError is returned when a response parsed into a document
// of the wrong type, such as an error document in a successful response.
type UnexpectedDocumentError struct {
	Document entity.Document
}

// Error implements the error interface.
func (e *UnexpectedDocumentError) Error() string {
	if doc, ok := e.Document.(*entity.Error); ok {
		return "unexpected error document in successful response: " + doc.String()
	}
	return fmt.Sprintf("unexpected document %T", e.Document)
}
