// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"slices"
)

// Client is the subset of the API client an entity needs to refresh itself
// and submit its forms.
type Client interface {
	Get(ctx context.Context, url string, header http.Header) (*Entity, error)
	Submit(ctx context.Context, url, method string, fields map[string]any, header http.Header) (*Entity, error)
}

// Entity is a hypermedia resource: a typed property bag with a self link, an
// alternate link and the forms the server advertised for it.
//
// An Entity is not safe for concurrent mutation.
type Entity struct {
	schema       *Schema
	selfURL      string
	alternateURL string
	properties   map[string]any
	forms        map[string]*Form
	client       Client
}

// New creates an entity of the given schema with every declared property set
// to its default. List defaults are cloned so entities never share them.
func New(schema *Schema, selfURL, alternateURL string) *Entity {
	e := &Entity{
		schema:       schema,
		selfURL:      selfURL,
		alternateURL: alternateURL,
		properties:   make(map[string]any, len(schema.Properties)),
		forms:        make(map[string]*Form),
	}
	for _, p := range schema.Properties {
		e.properties[p.Name] = cloneValue(p.Default)
	}
	return e
}

// Kind returns the entity kind.
func (e *Entity) Kind() string { return e.schema.Kind }

// Schema returns the entity's schema.
func (e *Entity) Schema() *Schema { return e.schema }

// SelfURL returns the canonical URL of the resource.
func (e *Entity) SelfURL() string { return e.selfURL }

// AlternateURL returns the human-facing URL of the resource.
func (e *Entity) AlternateURL() string { return e.alternateURL }

// String returns the self URL.
func (e *Entity) String() string { return e.selfURL }

// Has reports whether the schema declares name.
func (e *Entity) Has(name string) bool { return e.schema.Has(name) }

// Get returns the value of a declared property.
func (e *Entity) Get(name string) (any, error) {
	if !e.Has(name) {
		return nil, e.unknown(name)
	}
	return e.properties[name], nil
}

// Set replaces the value of a declared property.
func (e *Entity) Set(name string, value any) error {
	if !e.Has(name) {
		return e.unknown(name)
	}
	e.properties[name] = value
	return nil
}

// Add appends value to a list property. A nil property becomes a new list.
func (e *Entity) Add(name string, value any) error {
	if !e.Has(name) {
		return e.unknown(name)
	}
	child, isEntity := value.(*Entity)
	switch cur := e.properties[name].(type) {
	case nil:
		if isEntity {
			e.properties[name] = []*Entity{child}
		} else {
			e.properties[name] = []any{value}
		}
	case []any:
		e.properties[name] = append(cur, value)
	case []*Entity:
		if !isEntity {
			return fmt.Errorf("%w: %s.%s holds entities, got %T", ErrNotAList, e.Kind(), name, value)
		}
		e.properties[name] = append(cur, child)
	case []string:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s.%s holds strings, got %T", ErrNotAList, e.Kind(), name, value)
		}
		e.properties[name] = append(cur, s)
	default:
		return fmt.Errorf("%w: %s.%s is %T", ErrNotAList, e.Kind(), name, cur)
	}
	return nil
}

// StringValue returns a string property. A nil value yields the empty string.
func (e *Entity) StringValue(name string) (string, error) {
	v, err := e.Get(name)
	if err != nil || v == nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s is %T, want string", ErrPropertyType, e.Kind(), name, v)
	}
	return s, nil
}

// Bool returns a boolean property. A nil value yields false.
func (e *Entity) Bool(name string) (bool, error) {
	v, err := e.Get(name)
	if err != nil || v == nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s.%s is %T, want bool", ErrPropertyType, e.Kind(), name, v)
	}
	return b, nil
}

// Entity returns a nested entity property, or nil when unset.
func (e *Entity) Entity(name string) (*Entity, error) {
	v, err := e.Get(name)
	if err != nil || v == nil {
		return nil, err
	}
	child, ok := v.(*Entity)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s is %T, want entity", ErrPropertyType, e.Kind(), name, v)
	}
	return child, nil
}

// Entities returns a list of nested entities. A single entity is returned as
// a one-element list.
func (e *Entity) Entities(name string) ([]*Entity, error) {
	v, err := e.Get(name)
	if err != nil || v == nil {
		return nil, err
	}
	switch list := v.(type) {
	case []*Entity:
		return slices.Clone(list), nil
	case *Entity:
		return []*Entity{list}, nil
	case []any:
		out := make([]*Entity, 0, len(list))
		for _, item := range list {
			child, ok := item.(*Entity)
			if !ok {
				return nil, fmt.Errorf("%w: %s.%s holds %T, want entity", ErrPropertyType, e.Kind(), name, item)
			}
			out = append(out, child)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s.%s is %T, want entity list", ErrPropertyType, e.Kind(), name, v)
	}
}

// Forms returns the entity's forms keyed by id. The map is a copy; the forms
// are shared.
func (e *Entity) Forms() map[string]*Form {
	return maps.Clone(e.forms)
}

// Form returns the form with the given id.
func (e *Entity) Form(id string) (*Form, bool) {
	f, ok := e.forms[id]
	return f, ok
}

// AddForm registers or replaces a form.
func (e *Entity) AddForm(id string, f *Form) {
	e.forms[id] = f
}

// SetForms replaces all forms.
func (e *Entity) SetForms(forms map[string]*Form) {
	e.forms = make(map[string]*Form, len(forms))
	maps.Copy(e.forms, forms)
}

// Client returns the client the entity is attached to, or nil.
func (e *Entity) Client() Client { return e.client }

// SetClient attaches c to the entity and to every entity nested in its
// properties.
func (e *Entity) SetClient(c Client) {
	e.walk(make(map[*Entity]bool), func(n *Entity) { n.client = c })
}

func (e *Entity) walk(seen map[*Entity]bool, fn func(*Entity)) {
	if seen[e] {
		return
	}
	seen[e] = true
	fn(e)
	for _, v := range e.properties {
		switch child := v.(type) {
		case *Entity:
			child.walk(seen, fn)
		case []*Entity:
			for _, c := range child {
				c.walk(seen, fn)
			}
		case []any:
			for _, item := range child {
				if c, ok := item.(*Entity); ok {
					c.walk(seen, fn)
				}
			}
		}
	}
}

// Refresh re-fetches the entity from its self URL and copies every declared
// property and the forms from the fresh representation.
func (e *Entity) Refresh(ctx context.Context) error {
	if e.client == nil {
		return ErrDetached
	}
	fresh, err := e.client.Get(ctx, e.selfURL, nil)
	if err != nil {
		return err
	}
	if fresh == nil {
		return fmt.Errorf("refresh %s: %w", e.selfURL, ErrNoContent)
	}
	// Nothing is written until every declared property was found.
	props := make(map[string]any, len(e.properties))
	for _, name := range e.schema.Names() {
		v, err := fresh.Get(name)
		if err != nil {
			return err
		}
		props[name] = v
	}
	e.properties = props
	e.SetForms(fresh.forms)
	return nil
}

// Submit sends the form identified by formID. Form fields that source
// declares are overwritten with source's values; a nil source means e itself.
// A nil entity with a nil error means the server accepted the submission
// without returning content.
func (e *Entity) Submit(ctx context.Context, formID string, source *Entity) (*Entity, error) {
	form, ok := e.forms[formID]
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s entity", ErrUnknownForm, formID, e.Kind())
	}
	if e.client == nil {
		return nil, ErrDetached
	}
	if source == nil {
		source = e
	}
	fields := form.Fields()
	for key := range fields {
		if source.Has(key) {
			fields[key] = source.properties[key]
		}
	}
	return e.client.Submit(ctx, form.Action(), form.Method(), fields, nil)
}

// ToMap returns a plain map view of the properties. Nested entities become
// maps too, with their kind and self URL under "kind" and "self". JSON
// numbers become int64 or float64.
func (e *Entity) ToMap() map[string]any {
	return e.toMap(make(map[*Entity]bool))
}

func (e *Entity) toMap(seen map[*Entity]bool) map[string]any {
	seen[e] = true
	defer delete(seen, e)

	out := make(map[string]any, len(e.properties)+2)
	for name, v := range e.properties {
		out[name] = plain(v, seen)
	}
	out["kind"] = e.Kind()
	out["self"] = e.selfURL
	return out
}

func plain(v any, seen map[*Entity]bool) any {
	switch t := v.(type) {
	case *Entity:
		if seen[t] {
			return t.selfURL
		}
		return t.toMap(seen)
	case []*Entity:
		out := make([]any, len(t))
		for i, c := range t {
			out[i] = plain(c, seen)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, c := range t {
			out[i] = plain(c, seen)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, c := range t {
			out[k] = plain(c, seen)
		}
		return out
	case json.Number:
		return number(t)
	default:
		return v
	}
}

// number turns a decoded JSON number into int64 when it fits, else float64.
func number(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

func (e *Entity) unknown(name string) error {
	return &UnknownPropertyError{Kind: e.Kind(), Property: name}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		return slices.Clone(t)
	case []string:
		return slices.Clone(t)
	case []*Entity:
		return slices.Clone(t)
	case map[string]any:
		return maps.Clone(t)
	default:
		return v
	}
}
