// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/stacklok/connect-client-go/httperr"
	"github.com/stacklok/connect-client-go/transport"
)

// AuthorizationServerMetadata is the subset of RFC 8414 metadata the
// consumer needs to locate its endpoints.
type AuthorizationServerMetadata struct {
	// Issuer is the authorization server's issuer identifier (REQUIRED per RFC 8414).
	Issuer string `json:"issuer"`

	// AuthorizationEndpoint is the URL of the authorization endpoint.
	AuthorizationEndpoint string `json:"authorization_endpoint"`

	// TokenEndpoint is the URL of the token endpoint.
	TokenEndpoint string `json:"token_endpoint"`

	// ResponseTypesSupported lists the response types supported.
	ResponseTypesSupported []string `json:"response_types_supported,omitempty"`

	// GrantTypesSupported lists the grant types supported. Absent means
	// authorization_code and implicit per RFC 8414 Section 2.
	GrantTypesSupported []string `json:"grant_types_supported,omitempty"`

	// ScopesSupported lists the scope values supported.
	ScopesSupported []string `json:"scopes_supported,omitempty"`
}

// Validate checks the fields the consumer relies on.
func (m *AuthorizationServerMetadata) Validate() error {
	if m.Issuer == "" {
		return ErrMissingIssuer
	}
	if m.AuthorizationEndpoint == "" {
		return ErrMissingAuthorizationEndpoint
	}
	if m.TokenEndpoint == "" {
		return ErrMissingTokenEndpoint
	}
	if len(m.GrantTypesSupported) > 0 && !m.SupportsGrantType(GrantTypeAuthorizationCode) {
		return ErrUnsupportedGrantType
	}
	return nil
}

// SupportsGrantType returns true if the authorization server supports the given grant type.
func (m *AuthorizationServerMetadata) SupportsGrantType(grantType string) bool {
	return slices.Contains(m.GrantTypesSupported, grantType)
}

// Discover fetches and validates the RFC 8414 metadata published by issuer.
func Discover(ctx context.Context, t transport.Transport, issuer string) (*AuthorizationServerMetadata, error) {
	wellKnown := strings.TrimSuffix(issuer, "/") + WellKnownOAuthServerPath
	resp, err := t.Do(ctx, &transport.Request{
		Method: http.MethodGet,
		URL:    wellKnown,
		Header: http.Header{"Accept": []string{"application/json"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch authorization server metadata: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch authorization server metadata: %w",
			httperr.NewResponseError(resp.StatusCode, resp.Reason, resp.Header, resp.Body))
	}

	var md AuthorizationServerMetadata
	if err := json.Unmarshal(resp.Body, &md); err != nil {
		return nil, fmt.Errorf("failed to decode authorization server metadata: %w", err)
	}
	if err := md.Validate(); err != nil {
		return nil, err
	}
	return &md, nil
}
