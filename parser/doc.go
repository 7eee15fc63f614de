// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package parser turns Connect API response bodies into entity documents.
//
// The JSON parser understands the vendor media type
// application/vnd.com.symfony.connect+json. Every body is validated against
// an embedded JSON schema before it is decoded, so shape problems surface as
// a *SchemaError listing each violation:
//
//	p := parser.New()
//	doc, err := p.Parse(body)
//	switch d := doc.(type) {
//	case *entity.Entity:
//		// A resource
//	case *entity.Error:
//		// An error document
//	}
//
// Objects nested in properties whose kind is registered become entities
// themselves. Properties the kind's schema does not declare are ignored.
package parser
