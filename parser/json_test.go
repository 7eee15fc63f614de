// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/connect-client-go/entity"
)

const userDocument = `{
  "kind": "user",
  "self": "https://connect.example/api/users/42",
  "alternate": "https://connect.example/profile/alice",
  "properties": {
    "username": "alice",
    "name": "Alice",
    "shoeSize": 38,
    "additionalEmails": ["a@example.com"],
    "memberships": [
      {
        "kind": "membership",
        "self": "https://connect.example/api/memberships/1",
        "properties": {
          "isOwner": true,
          "isPublic": false,
          "club": {
            "kind": "club",
            "self": "https://connect.example/api/clubs/7",
            "properties": {"name": "Gophers", "slug": "gophers"},
            "forms": {"join": {"action": "https://connect.example/api/clubs/7/join", "method": "POST", "fields": {}}}
          }
        }
      }
    ]
  },
  "forms": {
    "update": {
      "action": "https://connect.example/api/users/42",
      "method": "PUT",
      "fields": {"name": "Alice", "city": ""}
    }
  }
}`

func TestParseEntity(t *testing.T) {
	t.Parallel()

	doc, err := New().Parse([]byte(userDocument))
	require.NoError(t, err)

	user, ok := doc.(*entity.Entity)
	require.True(t, ok, "got %T", doc)
	assert.Equal(t, entity.KindUser, user.Kind())
	assert.Equal(t, "https://connect.example/api/users/42", user.SelfURL())
	assert.Equal(t, "https://connect.example/profile/alice", user.AlternateURL())

	name, err := user.StringValue("username")
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	emails, err := user.Get("additionalEmails")
	require.NoError(t, err)
	assert.Equal(t, []any{"a@example.com"}, emails)

	assert.False(t, user.Has("shoeSize"), "undeclared properties are ignored")

	form, ok := user.Form("update")
	require.True(t, ok)
	assert.Equal(t, "PUT", form.Method())
	assert.Equal(t, map[string]any{"name": "Alice", "city": ""}, form.Fields())

	memberships, err := user.Entities("memberships")
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	owner, err := memberships[0].Bool("isOwner")
	require.NoError(t, err)
	assert.True(t, owner)

	club, err := memberships[0].Entity("club")
	require.NoError(t, err)
	require.NotNil(t, club)
	assert.Equal(t, "https://connect.example/api/clubs/7", club.SelfURL())
	_, ok = club.Form("join")
	assert.True(t, ok, "nested entities keep their forms")
}

func TestParseErrorDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want *entity.Error
	}{
		{
			name: "code and message",
			body: `{"code":404,"message":"not found"}`,
			want: &entity.Error{Code: 404, Message: "not found"},
		},
		{
			name: "explicit kind with field errors",
			body: `{"kind":"error","message":"invalid","errors":{"email":["is blank"]}}`,
			want: &entity.Error{Message: "invalid", Fields: map[string][]string{"email": {"is blank"}}},
		},
		{
			name: "null members",
			body: `{"code":null,"message":"gone"}`,
			want: &entity.Error{Message: "gone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := New().Parse([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc)
		})
	}
}

func TestParseFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "not json", body: `<html>`, wantErr: ErrMalformed},
		{name: "empty", body: ``, wantErr: ErrMalformed},
		{name: "array", body: `[1,2]`, wantErr: ErrInvalidDocument},
		{name: "empty object", body: `{}`, wantErr: ErrInvalidDocument},
		{name: "code is a string", body: `{"code":"x"}`, wantErr: ErrInvalidDocument},
		{name: "form without action", body: `{"kind":"user","forms":{"f":{"method":"POST"}}}`, wantErr: ErrInvalidDocument},
		{name: "unknown kind", body: `{"kind":"badge","self":"x"}`, wantErr: ErrUnknownKind},
		{
			name:    "invalid nested entity",
			body:    `{"kind":"membership","properties":{"club":{"kind":"club","forms":{"f":{}}}}}`,
			wantErr: ErrInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := New().Parse([]byte(tt.body))
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSchemaErrorMessages(t *testing.T) {
	t.Parallel()

	_, err := New().Parse([]byte(`{"code":"x","message":3}`))
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.GreaterOrEqual(t, len(se.Messages), 2)
	assert.Contains(t, se.Error(), "errors:\n  1. ")

	single := &SchemaError{Messages: []string{"bad"}}
	assert.Equal(t, "document schema validation failed: bad", single.Error())
}

func TestParseNestedUnknownKindStaysRaw(t *testing.T) {
	t.Parallel()

	doc, err := New().Parse([]byte(`{"kind":"membership","properties":{"club":{"kind":"guild","name":"x"}}}`))
	require.NoError(t, err)
	club, err := doc.(*entity.Entity).Get("club")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"kind": "guild", "name": "x"}, club)
}

func TestWithRegistry(t *testing.T) {
	t.Parallel()

	reg := entity.DefaultRegistry()
	reg.Register(entity.NewSchema("badge", entity.Prop("name")))
	p := New(WithRegistry(reg))

	assert.Equal(t, ContentType, p.ContentType())
	assert.Same(t, reg, p.Registry())

	doc, err := p.Parse([]byte(`{"kind":"badge","self":"https://x/badges/1","properties":{"name":"Expert"}}`))
	require.NoError(t, err)
	badge := doc.(*entity.Entity)
	name, _ := badge.StringValue("name")
	assert.Equal(t, "Expert", name)
}

func TestUnexpectedDocumentError(t *testing.T) {
	t.Parallel()

	err := &UnexpectedDocumentError{Document: &entity.Error{Code: 500, Message: "boom"}}
	assert.Equal(t, "unexpected error document in successful response: 500 boom", err.Error())
}
