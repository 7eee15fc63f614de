// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"

	"github.com/stacklok/connect-client-go/entity"
	"github.com/stacklok/connect-client-go/httperr"
)

var (
	// ErrServer matches every *ServerError.
	ErrServer = errors.New("api server error")

	// ErrClient matches every *ClientError.
	ErrClient = errors.New("api client error")

	// ErrUnsupportedField indicates a form field value that cannot be encoded.
	ErrUnsupportedField = errors.New("unsupported form field value")
)

// ServerError is returned for responses with status 500 and above. The body
// is kept verbatim and never parsed.
type ServerError struct {
	*httperr.ResponseError
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return "api server error: " + e.ResponseError.Error()
}

// Unwrap returns the response error.
func (e *ServerError) Unwrap() error {
	return e.ResponseError
}

// Is makes errors.Is(err, ErrServer) match.
func (*ServerError) Is(target error) bool {
	return target == ErrServer
}

// ClientError is returned for responses with status 400 to 499. Document is
// never nil: a body that is not an error document yields an empty one.
type ClientError struct {
	*httperr.ResponseError
	Document *entity.Error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	msg := "api client error: " + e.ResponseError.Error()
	if !e.Document.Empty() {
		msg += ": " + e.Document.String()
	}
	return msg
}

// Unwrap returns the response error.
func (e *ClientError) Unwrap() error {
	return e.ResponseError
}

// Is makes errors.Is(err, ErrClient) match.
func (*ClientError) Is(target error) bool {
	return target == ErrClient
}
