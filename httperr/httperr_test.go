// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewResponseError(t *testing.T) {
	t.Parallel()

	t.Run("keeps response context", func(t *testing.T) {
		t.Parallel()

		header := http.Header{"X-Request-Id": []string{"abc"}}
		err := NewResponseError(http.StatusBadGateway, "Bad Gateway", header, []byte(" upstream down \n"))

		require.Equal(t, http.StatusBadGateway, err.HTTPCode())
		require.Equal(t, "Bad Gateway", err.Reason)
		require.Equal(t, "abc", err.Header.Get("X-Request-Id"))
		require.Equal(t, "upstream down", err.BodyString())
		require.Equal(t, "502 Bad Gateway", err.Error())
	})

	t.Run("fills missing reason and header", func(t *testing.T) {
		t.Parallel()

		err := NewResponseError(http.StatusNotFound, "", nil, nil)
		require.Equal(t, "Not Found", err.Reason)
		require.NotNil(t, err.Header)
	})
}

func TestCode(t *testing.T) {
	t.Parallel()

	t.Run("extracts code from ResponseError", func(t *testing.T) {
		t.Parallel()

		err := NewResponseError(http.StatusNotFound, "", nil, nil)
		require.Equal(t, http.StatusNotFound, Code(err))
	})

	t.Run("returns 500 for error without code", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, http.StatusInternalServerError, Code(errors.New("plain error")))
	})

	t.Run("returns 200 for nil error", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, http.StatusOK, Code(nil))
	})

	t.Run("extracts code from deeply wrapped error", func(t *testing.T) {
		t.Parallel()

		base := NewResponseError(http.StatusBadRequest, "", nil, nil)
		wrapped1 := fmt.Errorf("layer 1: %w", base)
		wrapped2 := fmt.Errorf("layer 2: %w", wrapped1)
		require.Equal(t, http.StatusBadRequest, Code(wrapped2))
	})

	t.Run("errors.As finds the ResponseError", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("wrapped: %w", NewResponseError(http.StatusConflict, "", nil, []byte("dup")))

		var respErr *ResponseError
		require.ErrorAs(t, err, &respErr)
		require.Equal(t, "dup", respErr.BodyString())
	})
}

func TestStatusClasses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		server bool
		client bool
	}{
		{"OK", http.StatusOK, false, false},
		{"NoContent", http.StatusNoContent, false, false},
		{"BadRequest", http.StatusBadRequest, false, true},
		{"NotFound", http.StatusNotFound, false, true},
		{"last client code", 499, false, true},
		{"InternalServerError", http.StatusInternalServerError, true, false},
		{"non-standard 599", 599, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.server, IsServerError(tt.status))
			require.Equal(t, tt.client, IsClientError(tt.status))
		})
	}
}
