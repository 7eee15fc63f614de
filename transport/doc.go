// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package transport defines the narrow HTTP collaborator used by the OAuth
consumer and the API client, plus a default implementation on net/http.

A Transport sends a Request and returns a fully read Response carrying the
status code, reason phrase, headers and body. Non-2xx statuses are not
errors at this layer; only failures that produce no response are, and those
are returned as *Error with the request URL redacted.

# Timeouts, Retries and Cancellation

The default HTTP transport uses a pooled go-cleanhttp client with no overall
timeout and performs no retries. Deadlines and cancellation come from the
context passed to Do.

# Testing

A generated mock is available in the mocks sub-package:

	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	tr.EXPECT().Do(gomock.Any(), gomock.Any()).Return(&transport.Response{StatusCode: 204}, nil)
*/
package transport
