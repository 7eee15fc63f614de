// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package entity

// Ref addresses one property of an entity by name.
type Ref struct {
	e    *Entity
	name string
}

// Index returns a reference to the named property.
func (e *Entity) Index(name string) Ref {
	return Ref{e: e, name: name}
}

// Exists reports whether the property is declared.
func (r Ref) Exists() bool { return r.e.Has(r.name) }

// Value returns the property value.
func (r Ref) Value() (any, error) { return r.e.Get(r.name) }

// Set replaces the property value.
func (r Ref) Set(v any) error { return r.e.Set(r.name, v) }

// Delete always fails: properties can be changed but never removed.
func (r Ref) Delete() error {
	return &UnsupportedOperationError{Op: "delete", Property: r.name}
}
