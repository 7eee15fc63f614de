// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/stacklok/connect-client-go/logging"
)

// Middleware returns HTTP middleware that recovers from panics, logs the
// panic value and stack trace, and answers 500 Internal Server Error.
// http.ErrAbortHandler is re-raised so the server aborts the response as
// usual. A nil logger discards the log lines.
func Middleware(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value, compared as the stdlib does
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "recovered from panic",
					"panic", rec,
					"method", r.Method,
					"url", logging.RedactURL(r.URL.String()),
					"stack", string(debug.Stack()),
				)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
