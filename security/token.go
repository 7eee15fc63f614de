// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package security

import (
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/stacklok/connect-client-go/entity"
	"github.com/stacklok/connect-client-go/logging"
	"github.com/stacklok/connect-client-go/oauth"
)

// Token is what a host application keeps in its session once a Connect user
// has logged in. It is authenticated only when it carries roles.
type Token struct {
	user        string
	accessToken oauth.AccessToken
	apiUser     *entity.Entity
	apiUserURL  string
	providerKey string
	roles       []string
}

// NewToken creates a token. providerKey names the firewall or provider the
// token belongs to and must not be empty. apiUser may be nil.
func NewToken(
	user string, accessToken oauth.AccessToken, apiUser *entity.Entity, providerKey string, roles []string,
) (*Token, error) {
	if providerKey == "" {
		return nil, ErrEmptyProviderKey
	}
	t := &Token{
		user:        user,
		accessToken: accessToken,
		providerKey: providerKey,
		roles:       slices.Clone(roles),
	}
	t.SetAPIUser(apiUser)
	return t, nil
}

// User returns the user identifier.
func (t *Token) User() string { return t.user }

// AccessToken returns the OAuth access token.
func (t *Token) AccessToken() oauth.AccessToken { return t.accessToken }

// SetAccessToken replaces the access token.
func (t *Token) SetAccessToken(tok oauth.AccessToken) { t.accessToken = tok }

// Credentials returns the raw access token value.
func (t *Token) Credentials() string { return t.accessToken.Value }

// Scope returns the scope granted with the access token.
func (t *Token) Scope() string { return t.accessToken.Scope }

// SetScope replaces the granted scope.
func (t *Token) SetScope(scope string) { t.accessToken.Scope = scope }

// APIUser returns the Connect user entity, if one was attached.
func (t *Token) APIUser() *entity.Entity { return t.apiUser }

// SetAPIUser attaches the Connect user entity.
func (t *Token) SetAPIUser(u *entity.Entity) {
	t.apiUser = u
	if u != nil {
		t.apiUserURL = u.SelfURL()
	}
}

// APIUserURL returns the self URL of the Connect user. It survives
// serialization when the entity itself does not.
func (t *Token) APIUserURL() string { return t.apiUserURL }

// ProviderKey returns the provider key.
func (t *Token) ProviderKey() string { return t.providerKey }

// Roles returns a copy of the granted roles.
func (t *Token) Roles() []string { return slices.Clone(t.roles) }

// HasRole reports whether role was granted.
func (t *Token) HasRole(role string) bool { return slices.Contains(t.roles, role) }

// Authenticated reports whether at least one role was granted.
func (t *Token) Authenticated() bool { return len(t.roles) > 0 }

// LogValue implements slog.LogValuer. The access token is never included.
func (t *Token) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("user", t.user),
		slog.String("provider_key", t.providerKey),
		slog.Any("roles", t.roles),
		slog.String("credentials", logging.Redacted),
	)
}

type tokenJSON struct {
	User        string   `json:"user"`
	AccessToken string   `json:"access_token"`
	Scope       string   `json:"scope,omitempty"`
	APIUser     string   `json:"api_user,omitempty"`
	ProviderKey string   `json:"provider_key"`
	Roles       []string `json:"roles,omitempty"`
}

// MarshalJSON serializes the token for session storage. The API user is
// stored as its self URL.
func (t *Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenJSON{
		User:        t.user,
		AccessToken: t.accessToken.Value,
		Scope:       t.accessToken.Scope,
		APIUser:     t.apiUserURL,
		ProviderKey: t.providerKey,
		Roles:       t.roles,
	})
}

// UnmarshalJSON restores a token serialized with MarshalJSON.
func (t *Token) UnmarshalJSON(data []byte) error {
	var raw tokenJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ProviderKey == "" {
		return ErrEmptyProviderKey
	}
	*t = Token{
		user:        raw.User,
		accessToken: oauth.AccessToken{Value: raw.AccessToken, Scope: raw.Scope},
		apiUserURL:  raw.APIUser,
		providerKey: raw.ProviderKey,
		roles:       raw.Roles,
	}
	return nil
}
