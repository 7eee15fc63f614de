// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/stacklok/connect-client-go/entity"
)

// ContentType is the media type of Connect API documents.
const ContentType = "application/vnd.com.symfony.connect+json"

const (
	errorKind  = "error"
	schemaFile = "data/document.schema.json"
)

//go:embed data/document.schema.json
var embeddedSchemaFS embed.FS

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	data, err := embeddedSchemaFS.ReadFile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded schema %s: %w", schemaFile, err)
	}
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
})

// Option configures a JSON parser.
type Option func(*JSON)

// WithRegistry sets the kind registry used to build entities.
func WithRegistry(r *entity.Registry) Option {
	return func(p *JSON) {
		p.registry = r
	}
}

// JSON parses Connect vendor JSON documents into entities and error documents.
// It is safe for concurrent use.
type JSON struct {
	registry *entity.Registry
}

// New creates a JSON parser. Without WithRegistry it knows the built-in kinds.
func New(opts ...Option) *JSON {
	p := &JSON{}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = entity.DefaultRegistry()
	}
	return p
}

// ContentType returns the media type this parser understands.
func (*JSON) ContentType() string {
	return ContentType
}

// Registry returns the parser's kind registry.
func (p *JSON) Registry() *entity.Registry {
	return p.registry
}

type rawForm struct {
	Action string         `json:"action"`
	Method string         `json:"method"`
	Fields map[string]any `json:"fields"`
}

type rawDocument struct {
	Kind       string              `json:"kind"`
	Self       string              `json:"self"`
	Alternate  string              `json:"alternate"`
	Properties map[string]any      `json:"properties"`
	Forms      map[string]rawForm  `json:"forms"`
	Code       int                 `json:"code"`
	Message    string              `json:"message"`
	Errors     map[string][]string `json:"errors"`
}

// Parse validates body and turns it into an *entity.Entity or *entity.Error.
func (p *JSON) Parse(body []byte) (entity.Document, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformed)
	}
	if err := validate(body); err != nil {
		return nil, err
	}

	raw, err := decode(body)
	if err != nil {
		return nil, err
	}

	if raw.Kind == "" || raw.Kind == errorKind {
		return &entity.Error{Code: raw.Code, Message: raw.Message, Fields: raw.Errors}, nil
	}
	e, err := p.build(raw)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func validate(body []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return &SchemaError{Messages: msgs}
}

func (p *JSON) build(raw rawDocument) (*entity.Entity, error) {
	schema, ok := p.registry.Lookup(raw.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, raw.Kind)
	}
	e := entity.New(schema, raw.Self, raw.Alternate)
	for _, name := range schema.Names() {
		v, present := raw.Properties[name]
		if !present {
			continue
		}
		converted, err := p.value(v)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", raw.Kind, name, err)
		}
		if err := e.Set(name, converted); err != nil {
			return nil, err
		}
	}
	for id, f := range raw.Forms {
		e.AddForm(id, entity.NewForm(f.Action, f.Method, f.Fields))
	}
	return e, nil
}

// value converts a decoded JSON value, turning objects with a registered kind
// into nested entities. Lists made only of entities become []*entity.Entity.
func (p *JSON) value(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if !p.isEntity(t) {
			return t, nil
		}
		return p.nested(t)
	case []any:
		out := make([]any, len(t))
		entities := make([]*entity.Entity, 0, len(t))
		for i, item := range t {
			converted, err := p.value(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = converted
			if e, ok := converted.(*entity.Entity); ok {
				entities = append(entities, e)
			}
		}
		if len(t) > 0 && len(entities) == len(t) {
			return entities, nil
		}
		return out, nil
	default:
		return v, nil
	}
}

func (p *JSON) isEntity(m map[string]any) bool {
	kind, ok := m["kind"].(string)
	if !ok || kind == errorKind {
		return false
	}
	_, registered := p.registry.Lookup(kind)
	return registered
}

func (p *JSON) nested(m map[string]any) (*entity.Entity, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	if err := validate(data); err != nil {
		return nil, err
	}
	raw, err := decode(data)
	if err != nil {
		return nil, err
	}
	return p.build(raw)
}

// decode keeps numbers as json.Number so integers beyond float64 precision
// survive a round trip back to the server.
func decode(data []byte) (rawDocument, error) {
	var raw rawDocument
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return rawDocument{}, &SchemaError{Messages: []string{err.Error()}}
	}
	return raw, nil
}
