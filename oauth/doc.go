// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package oauth implements the client side of the Connect authorization code
// flow.
//
// A Consumer builds the URI a user is sent to and exchanges the code the
// provider hands back for an AccessToken:
//
//	consumer := oauth.NewConsumer(oauth.Config{
//		ClientID:     "app-id",
//		ClientSecret: "app-secret",
//		Scope:        "SCOPE_PUBLIC SCOPE_EMAIL",
//	})
//	http.Redirect(w, r, consumer.AuthorizationURI(callbackURL, state), http.StatusFound)
//
//	// In the callback handler, after checking state:
//	token, err := consumer.ExchangeCode(ctx, callbackURL, r.URL.Query().Get("code"))
//	if errors.Is(err, oauth.ErrProvider) {
//		// The provider refused the code or answered with garbage
//	}
//
// AccessToken never prints its value; pass it to slog or fmt freely.
//
// # Redirect URI Validation
//
// Callback URIs can be checked before any request is made, following RFC 6749
// Section 3.1.2 and RFC 8252:
//
//	consumer := oauth.NewConsumer(cfg, oauth.WithRedirectURIPolicy(oauth.RedirectURIPolicyStrict))
//
// # Server Metadata
//
// Discover fetches RFC 8414 metadata, and NewConsumerFromMetadata builds a
// consumer from it when the endpoints differ from the Connect defaults.
package oauth
