// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package entity

import "maps"

// Form is a server-advertised submission descriptor: where to send fields
// and with which method. It performs no validation.
type Form struct {
	action string
	method string
	fields map[string]any
}

// NewForm creates a form. The fields map is copied.
func NewForm(action, method string, fields map[string]any) *Form {
	f := &Form{action: action, method: method}
	f.SetFields(fields)
	return f
}

// Action returns the target URL.
func (f *Form) Action() string { return f.action }

// Method returns the HTTP method.
func (f *Form) Method() string { return f.method }

// Field returns the value for key and whether the form declares it.
func (f *Form) Field(key string) (any, bool) {
	v, ok := f.fields[key]
	return v, ok
}

// Fields returns a copy of the field map.
func (f *Form) Fields() map[string]any {
	return maps.Clone(f.fields)
}

// AddField sets a single field.
func (f *Form) AddField(key string, value any) {
	f.fields[key] = value
}

// SetAction replaces the target URL.
func (f *Form) SetAction(action string) { f.action = action }

// SetMethod replaces the HTTP method.
func (f *Form) SetMethod(method string) { f.method = method }

// SetFields replaces all fields with a copy of fields.
func (f *Form) SetFields(fields map[string]any) {
	f.fields = make(map[string]any, len(fields))
	maps.Copy(f.fields, fields)
}
