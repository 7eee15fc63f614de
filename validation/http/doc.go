// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package http provides validation functions for HTTP headers and service
endpoints.

The API client accepts extra request headers from its callers and the
configuration layer accepts endpoint URLs from files and the environment.
Both are checked here before any request is made.

# Header Validation

	if err := http.ValidateHeaders(header); err != nil {
		// errors.Is(err, http.ErrInvalidHeader)
	}

The validators check for CRLF injection, control characters, RFC 7230 token
compliance for names and length limits (256 bytes for names, 8192 for values).

# Endpoint Validation

	if err := http.ValidateEndpoint("https://connect.symfony.com/api"); err != nil {
		// errors.Is(err, http.ErrInvalidEndpoint)
	}

Endpoints must be absolute http or https URLs with a host and without a
fragment or query string; paths such as /oauth/authorize are appended to them.
*/
package http
