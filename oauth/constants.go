// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

// DefaultEndpoint is the Connect authorization server.
const DefaultEndpoint = "https://connect.symfony.com"

// Endpoint paths relative to the authorization server.
const (
	// AuthorizePath is the path of the authorization endpoint.
	AuthorizePath = "/oauth/authorize"

	// TokenPath is the path of the token endpoint.
	TokenPath = "/oauth/access_token"

	// WellKnownOAuthServerPath is the standard OAuth authorization server metadata endpoint path
	// per RFC 8414 (OAuth 2.0 Authorization Server Metadata).
	WellKnownOAuthServerPath = "/.well-known/oauth-authorization-server"
)

// GrantTypeAuthorizationCode is the authorization code grant type (RFC 6749 Section 4.1).
const GrantTypeAuthorizationCode = "authorization_code"

// ResponseTypeCode is the authorization code response type (RFC 6749 Section 4.1.1).
const ResponseTypeCode = "code"

// Error codes reported by the consumer itself rather than the provider.
const (
	// ErrorCodeProvider marks failures to understand the provider's response.
	ErrorCodeProvider = "provider"
)
