// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"maps"
	"slices"
	"sync"
)

// Property declares one property of an entity kind.
type Property struct {
	Name    string
	Default any
}

// Prop declares a property without a default value.
func Prop(name string) Property {
	return Property{Name: name}
}

// Schema is the fixed list of properties valid for one entity kind.
type Schema struct {
	Kind       string
	Properties []Property
}

// NewSchema builds a schema. A repeated name keeps its last default.
func NewSchema(kind string, props ...Property) *Schema {
	seen := make(map[string]int, len(props))
	out := make([]Property, 0, len(props))
	for _, p := range props {
		if i, ok := seen[p.Name]; ok {
			out[i] = p
			continue
		}
		seen[p.Name] = len(out)
		out = append(out, p)
	}
	return &Schema{Kind: kind, Properties: out}
}

// Has reports whether the schema declares name.
func (s *Schema) Has(name string) bool {
	return slices.ContainsFunc(s.Properties, func(p Property) bool { return p.Name == name })
}

// Names returns the declared property names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Properties))
	for i, p := range s.Properties {
		names[i] = p.Name
	}
	return names
}

// Registry maps kind names to schemas. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewRegistry creates a registry holding schemas.
func NewRegistry(schemas ...*Schema) *Registry {
	r := &Registry{schemas: make(map[string]*Schema, len(schemas))}
	for _, s := range schemas {
		r.schemas[s.Kind] = s
	}
	return r
}

// DefaultRegistry returns a new registry with the built-in Connect kinds.
func DefaultRegistry() *Registry {
	return NewRegistry(RootSchema, UserSchema, MembershipSchema, ClubSchema)
}

// Register adds or replaces the schema for s.Kind.
func (r *Registry) Register(s *Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[s.Kind] = s
}

// Lookup returns the schema registered for kind.
func (r *Registry) Lookup(kind string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[kind]
	return s, ok
}

// Kinds returns the registered kind names, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.schemas))
}
