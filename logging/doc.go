// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package logging provides a pre-configured [log/slog.Logger] factory whose
output never contains OAuth credentials.

The OAuth consumer and the API client log outbound requests. Access tokens
travel in request URLs, and client secrets and authorization codes travel in
form bodies, so every handler built here masks them before a record is
written.

# Defaults

  - Format: JSON ([FormatJSON]) via [log/slog.JSONHandler]
  - Level: INFO ([log/slog.LevelInfo])
  - Output: [os.Stderr]
  - Timestamps: [time.RFC3339]

# Basic Usage

	logger := logging.New()
	logger.Info("requesting access token", "url", tokenURL)

# Redaction

Attributes whose key is one of access_token, refresh_token, client_secret,
code, password, token or authorization are replaced by [Redacted], including
inside groups. String values containing an access_token query parameter are
rewritten with [RedactURL]. [RedactValues] and [RedactFields] are available
for callers that need to log form payloads:

	logger.Debug("sent params", "fields", logging.RedactValues(form))

# Zap

Applications already logging through zap can route records there:

	logger := logging.New(logging.WithZap(zap.Must(zap.NewDevelopment())))

# Testing

Inject a buffer to capture log output in tests:

	var buf bytes.Buffer
	logger := logging.New(logging.WithOutput(&buf))
*/
package logging
