// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package entity models the resources served by the Connect hypermedia API.
//
// An Entity is a property bag whose valid keys are fixed by a Schema. Reading
// or writing an undeclared key fails with an *UnknownPropertyError, which
// matches ErrUnknownProperty:
//
//	user := entity.New(entity.UserSchema, "https://connect.example/api/users/1", "")
//	if err := user.Set("username", "alice"); err != nil {
//		// Handle error
//	}
//	name, _ := user.StringValue("username")
//
// Entities carry the forms the server advertised for them. Once attached to a
// Client, an entity can refresh itself from its self URL and submit its forms:
//
//	updated, err := user.Submit(ctx, "update", nil)
//
// A nil entity with a nil error from Submit means the server accepted the
// request without returning a representation.
//
// Error is the API's error document. Both *Entity and *Error implement
// Document, the result type of response parsers.
package entity
