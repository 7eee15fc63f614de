// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/stacklok/connect-client-go/security"
)

// DefaultKeyringService is the keyring service tokens are stored under.
const DefaultKeyringService = "connect-client-go"

// ErrNotLoggedIn is returned when no token is stored for an endpoint.
var ErrNotLoggedIn = errors.New("not logged in, run 'connect login' first")

// TokenStore keeps security tokens in the system keyring, one per
// authorization server.
type TokenStore struct {
	service string
}

// NewTokenStore creates a store under the given keyring service.
func NewTokenStore(service string) *TokenStore {
	return &TokenStore{service: service}
}

func key(endpoint string) string {
	return "connect::" + endpoint
}

// Save stores tok for endpoint, replacing any previous token.
func (s *TokenStore) Save(endpoint string, tok *security.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	if err := keyring.Set(s.service, key(endpoint), string(data)); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// Load returns the token stored for endpoint.
func (s *TokenStore) Load(endpoint string) (*security.Token, error) {
	data, err := keyring.Get(s.service, key(endpoint))
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}
	var tok security.Token
	if err := json.Unmarshal([]byte(data), &tok); err != nil {
		return nil, fmt.Errorf("invalid stored token: %w", err)
	}
	return &tok, nil
}

// Delete removes the token for endpoint. Deleting a missing token is not an error.
func (s *TokenStore) Delete(endpoint string) error {
	err := keyring.Delete(s.service, key(endpoint))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
