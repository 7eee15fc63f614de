// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package recovery provides panic recovery middleware for HTTP handlers.
//
// The middleware recovers from panics, logs the panic value with its stack
// trace and returns a 500 Internal Server Error response to the client. Query
// strings in the logged URL are redacted, so OAuth codes reaching a callback
// handler do not end up in the logs.
//
// # Basic Usage
//
//	r := chi.NewRouter()
//	r.Use(recovery.Middleware(logger))
//	r.Get("/callback", handler)
//	http.ListenAndServe("127.0.0.1:8765", r)
package recovery
