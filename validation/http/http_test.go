// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package http

import (
	nethttp "net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHeaderName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{"valid simple", "X-Request-Id", false},
		{"valid accept", "Accept-Language", false},
		{"valid with dots", "X.Custom.Header", false},
		{"crlf injection", "X-Request-Id\r\nX-Injected: malicious", true},
		{"newline injection", "X-Request-Id\nInjected", true},
		{"null byte", "X-Request-Id\x00", true},
		{"contains space", "X Request Id", true},
		{"empty string", "", true},
		{"too long", strings.Repeat("A", 300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateHeaderName(tt.input)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidHeader)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateHeaderValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{"valid", "fr-FR,fr;q=0.9", false},
		{"empty is allowed", "", false},
		{"crlf injection", "value\r\nX-Injected: malicious", true},
		{"null byte", "value\x00", true},
		{"too long", strings.Repeat("v", 9000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateHeaderValue(tt.input)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidHeader)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateHeaders(t *testing.T) {
	t.Parallel()

	t.Run("valid header set", func(t *testing.T) {
		t.Parallel()
		h := nethttp.Header{}
		h.Set("X-Request-Id", "42")
		h.Add("Accept-Language", "en")
		require.NoError(t, ValidateHeaders(h))
	})

	t.Run("nil header set", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, ValidateHeaders(nil))
	})

	t.Run("invalid value is reported with its header name", func(t *testing.T) {
		t.Parallel()
		h := nethttp.Header{"X-Trace": []string{"a\nb"}}
		err := ValidateHeaders(h)
		require.ErrorIs(t, err, ErrInvalidHeader)
		assert.Contains(t, err.Error(), "X-Trace")
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()
		h := nethttp.Header{"Bad Name": []string{"v"}}
		require.ErrorIs(t, ValidateHeaders(h), ErrInvalidHeader)
	})
}

func TestValidateEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{"https with path", "https://connect.symfony.com/api", false},
		{"http with port", "http://localhost:8080", false},
		{"uppercase scheme", "HTTPS://connect.example.com", false},
		{"empty", "", true},
		{"no scheme", "connect.example.com/api", true},
		{"ftp scheme", "ftp://connect.example.com", true},
		{"no host", "https:///api", true},
		{"fragment", "https://connect.example.com/api#frag", true},
		{"query", "https://connect.example.com/api?x=1", true},
		{"malformed", "https://[::1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateEndpoint(tt.input)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidEndpoint)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
