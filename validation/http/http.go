// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package http provides validation functions for HTTP headers and service endpoints.
package http

import (
	"errors"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// ErrInvalidHeader is wrapped by every header validation failure.
var ErrInvalidHeader = errors.New("invalid HTTP header")

// ErrInvalidEndpoint is wrapped by every endpoint validation failure.
var ErrInvalidEndpoint = errors.New("invalid endpoint")

const (
	maxHeaderNameLength  = 256
	maxHeaderValueLength = 8192
)

// ValidateHeaderName validates that a string is a valid HTTP header name per RFC 7230.
func ValidateHeaderName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidHeader)
	}
	if len(name) > maxHeaderNameLength {
		return fmt.Errorf("%w: name exceeds maximum length of %d bytes", ErrInvalidHeader, maxHeaderNameLength)
	}
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("%w: name %q contains invalid characters", ErrInvalidHeader, name)
	}
	return nil
}

// ValidateHeaderValue validates that a string is a valid HTTP header value per RFC 7230.
// Empty values are allowed; CR, LF and other control characters are not.
func ValidateHeaderValue(value string) error {
	if len(value) > maxHeaderValueLength {
		return fmt.Errorf("%w: value exceeds maximum length of %d bytes", ErrInvalidHeader, maxHeaderValueLength)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("%w: value contains control characters", ErrInvalidHeader)
	}
	return nil
}

// ValidateHeaders validates every name and value in h.
func ValidateHeaders(h nethttp.Header) error {
	for name, values := range h {
		if err := ValidateHeaderName(name); err != nil {
			return err
		}
		for _, v := range values {
			if err := ValidateHeaderValue(v); err != nil {
				return fmt.Errorf("header %s: %w", name, err)
			}
		}
	}
	return nil
}

// ValidateEndpoint validates a service base URL: an absolute http or https
// URL with a host, no fragment and no query string.
func ValidateEndpoint(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("%w: endpoint cannot be empty", ErrInvalidEndpoint)
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	case "":
		return fmt.Errorf("%w: must include a scheme (e.g., https://): %s", ErrInvalidEndpoint, endpoint)
	default:
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidEndpoint, parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("%w: must include a host: %s", ErrInvalidEndpoint, endpoint)
	}
	if parsed.Fragment != "" {
		return fmt.Errorf("%w: must not contain fragments (#): %s", ErrInvalidEndpoint, endpoint)
	}
	if parsed.RawQuery != "" {
		return fmt.Errorf("%w: must not contain a query string: %s", ErrInvalidEndpoint, endpoint)
	}

	return nil
}
