// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"log/slog"

	"golang.org/x/oauth2"

	"github.com/stacklok/connect-client-go/logging"
)

// AccessToken is the credential returned by a successful code exchange.
// Its String and LogValue forms never reveal the token.
type AccessToken struct {
	Value string
	Scope string
}

// String implements fmt.Stringer without exposing the token.
func (t AccessToken) String() string {
	if t.Value == "" {
		return "AccessToken{}"
	}
	return "AccessToken{" + logging.Redacted + " scope=" + t.Scope + "}"
}

// LogValue implements slog.LogValuer.
func (t AccessToken) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("value", logging.Redacted),
		slog.String("scope", t.Scope),
	)
}

// Valid reports whether the token carries a value.
func (t AccessToken) Valid() bool {
	return t.Value != ""
}

// OAuth2 converts the token for use with golang.org/x/oauth2. Connect tokens
// travel in the query string, but the type is "Bearer" for interop.
func (t AccessToken) OAuth2() *oauth2.Token {
	tok := &oauth2.Token{AccessToken: t.Value, TokenType: "Bearer"}
	return tok.WithExtra(map[string]any{"scope": t.Scope})
}

// TokenFromOAuth2 converts a golang.org/x/oauth2 token.
func TokenFromOAuth2(tok *oauth2.Token) AccessToken {
	if tok == nil {
		return AccessToken{}
	}
	scope, _ := tok.Extra("scope").(string)
	return AccessToken{Value: tok.AccessToken, Scope: scope}
}
