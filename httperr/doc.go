// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package httperr provides error types carrying HTTP response context.

The ResponseError type keeps the status code, reason phrase, headers and raw
body of a failed response. Higher-level error types (for example the API
client's ServerError and ClientError) embed it so that callers can always
render a diagnostic message without re-parsing anything.

# Extracting Status Codes

	code := httperr.Code(err)
	// Returns the code of the first error in the chain implementing Coder
	// Returns http.StatusInternalServerError (500) if none is found
	// Returns http.StatusOK (200) if err is nil

# Status Classes

	httperr.IsServerError(503) // true
	httperr.IsClientError(404) // true
*/
package httperr
