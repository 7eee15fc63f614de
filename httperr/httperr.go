// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package httperr provides error types carrying an HTTP response's status,
// reason phrase, headers and raw body.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Coder is implemented by errors that carry an HTTP status code.
type Coder interface {
	HTTPCode() int
}

// ResponseError describes a non-successful HTTP response. It keeps enough of
// the response to render a diagnostic without re-reading or re-parsing it.
type ResponseError struct {
	StatusCode int
	Reason     string
	Header     http.Header
	Body       []byte
}

// NewResponseError builds a ResponseError. A missing reason phrase is filled
// in from the status code.
func NewResponseError(status int, reason string, header http.Header, body []byte) *ResponseError {
	if reason == "" {
		reason = http.StatusText(status)
	}
	if header == nil {
		header = http.Header{}
	}
	return &ResponseError{
		StatusCode: status,
		Reason:     reason,
		Header:     header,
		Body:       body,
	}
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.Reason)
}

// HTTPCode returns the HTTP status code of the response.
func (e *ResponseError) HTTPCode() int {
	return e.StatusCode
}

// BodyString returns the raw body with surrounding whitespace trimmed.
func (e *ResponseError) BodyString() string {
	return strings.TrimSpace(string(e.Body))
}

// Code extracts the HTTP status code from an error.
// It unwraps the error chain looking for a Coder.
// If no Coder is found, it returns http.StatusInternalServerError (500).
func Code(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var coder Coder
	if errors.As(err, &coder) {
		return coder.HTTPCode()
	}

	return http.StatusInternalServerError
}

// IsServerError reports whether the status code is in the 5xx range or above.
func IsServerError(status int) bool {
	return status >= http.StatusInternalServerError
}

// IsClientError reports whether the status code is in the 4xx range.
func IsClientError(status int) bool {
	return status >= http.StatusBadRequest && status < http.StatusInternalServerError
}
