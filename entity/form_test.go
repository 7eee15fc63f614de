// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForm(t *testing.T) {
	t.Parallel()

	src := map[string]any{"name": "a"}
	f := NewForm("https://x/a", "PUT", src)
	src["name"] = "changed"

	v, ok := f.Field("name")
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	fields := f.Fields()
	fields["extra"] = 1
	_, ok = f.Field("extra")
	assert.False(t, ok, "Fields returns a copy")

	f.AddField("email", "a@example.com")
	f.SetAction("https://x/b")
	f.SetMethod("PATCH")
	assert.Equal(t, "https://x/b", f.Action())
	assert.Equal(t, "PATCH", f.Method())
	assert.Len(t, f.Fields(), 2)

	f.SetFields(nil)
	assert.Empty(t, f.Fields())
	f.AddField("k", "v")
	assert.Len(t, f.Fields(), 1)
}

func TestErrorDocument(t *testing.T) {
	t.Parallel()

	var nilErr *Error
	assert.True(t, nilErr.Empty())
	assert.True(t, (&Error{}).Empty())
	assert.Equal(t, "empty error document", (&Error{}).String())

	e := &Error{Code: 422, Message: "invalid"}
	e.AddFieldError("email", "is blank")
	e.AddFieldError("email", "is invalid")
	e.AddFieldError("age", "too young")

	assert.False(t, e.Empty())
	assert.Equal(t, []string{"is blank", "is invalid"}, e.FieldErrors("email"))
	assert.Equal(t, "422 invalid; age: too young; email: is blank, is invalid", e.String())
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	assert.Equal(t, []string{"club", "membership", "root", "user"}, r.Kinds())

	s, ok := r.Lookup(KindMembership)
	assert.True(t, ok)
	assert.Equal(t, []string{"club", "isPublic", "isOwner"}, s.Names())

	_, ok = r.Lookup("badge")
	assert.False(t, ok)

	r.Register(NewSchema("badge", Prop("name"), Prop("name")))
	s, ok = r.Lookup("badge")
	assert.True(t, ok)
	assert.Len(t, s.Properties, 1)
}
