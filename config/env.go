// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=env.go -destination=mocks/mock_env.go -package=mocks EnvReader

import "os"

// Environment variables that override file settings.
const (
	EnvEndpoint     = "CONNECT_ENDPOINT"
	EnvAPIEndpoint  = "CONNECT_API_ENDPOINT"
	EnvClientID     = "CONNECT_CLIENT_ID"
	EnvClientSecret = "CONNECT_CLIENT_SECRET"
	EnvScope        = "CONNECT_SCOPE"
	EnvCallbackURL  = "CONNECT_CALLBACK_URL"
	EnvStrictChecks = "CONNECT_STRICT_CHECKS"
	EnvLogLevel     = "CONNECT_LOG_LEVEL"
)

// EnvReader defines an interface for environment variable access
type EnvReader interface {
	Getenv(key string) string
}

// OSEnvReader implements EnvReader using the standard os package
type OSEnvReader struct{}

// Getenv returns the value of the environment variable named by the key
func (*OSEnvReader) Getenv(key string) string {
	return os.Getenv(key)
}
