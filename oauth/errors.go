// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"errors"
	"fmt"
)

var (
	// ErrProvider matches every *ProviderError.
	ErrProvider = errors.New("oauth provider error")

	// ErrInvalidRedirectURI indicates a callback URI rejected by the configured policy.
	ErrInvalidRedirectURI = errors.New("invalid redirect_uri")
)

// Validation errors for authorization server metadata.
var (
	// ErrMissingIssuer indicates the issuer field is missing from the metadata document.
	ErrMissingIssuer = errors.New("missing issuer")

	// ErrMissingAuthorizationEndpoint indicates the authorization_endpoint field is missing.
	ErrMissingAuthorizationEndpoint = errors.New("missing authorization_endpoint")

	// ErrMissingTokenEndpoint indicates the token_endpoint field is missing.
	ErrMissingTokenEndpoint = errors.New("missing token_endpoint")

	// ErrUnsupportedGrantType indicates metadata advertising grant types without authorization_code.
	ErrUnsupportedGrantType = errors.New("authorization_code grant not supported")
)

// ProviderError is returned when the token endpoint answers with an error
// or with a body that cannot be understood.
type ProviderError struct {
	// Code is the provider's error code, or ErrorCodeProvider for local decoding failures.
	Code string
	// Message is the human-readable description.
	Message string
	// Cause is the underlying failure, if any.
	Cause error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("oauth %s error", e.Code)
	}
	return fmt.Sprintf("oauth %s error: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrProvider) match.
func (*ProviderError) Is(target error) bool {
	return target == ErrProvider
}
