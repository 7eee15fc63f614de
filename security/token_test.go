// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package security

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/connect-client-go/entity"
	"github.com/stacklok/connect-client-go/logging"
	"github.com/stacklok/connect-client-go/oauth"
)

func TestNewToken(t *testing.T) {
	t.Parallel()

	me := entity.New(entity.UserSchema, "https://connect.example/api/users/42", "")
	at := oauth.AccessToken{Value: "abc123", Scope: "SCOPE_PUBLIC"}

	tok, err := NewToken("alice", at, me, "connect", []string{"ROLE_USER"})
	require.NoError(t, err)
	assert.True(t, tok.Authenticated())
	assert.Equal(t, "alice", tok.User())
	assert.Equal(t, "abc123", tok.Credentials())
	assert.Equal(t, "SCOPE_PUBLIC", tok.Scope())
	assert.Same(t, me, tok.APIUser())
	assert.Equal(t, "https://connect.example/api/users/42", tok.APIUserURL())
	assert.Equal(t, "connect", tok.ProviderKey())
	assert.True(t, tok.HasRole("ROLE_USER"))
	assert.False(t, tok.HasRole("ROLE_ADMIN"))

	roles := tok.Roles()
	roles[0] = "mutated"
	assert.Equal(t, []string{"ROLE_USER"}, tok.Roles())

	tok.SetScope("SCOPE_EMAIL")
	assert.Equal(t, "SCOPE_EMAIL", tok.AccessToken().Scope)
}

func TestNewToken_Unauthenticated(t *testing.T) {
	t.Parallel()

	tok, err := NewToken("alice", oauth.AccessToken{Value: "x"}, nil, "connect", nil)
	require.NoError(t, err)
	assert.False(t, tok.Authenticated())
	assert.Nil(t, tok.APIUser())
}

func TestNewToken_EmptyProviderKey(t *testing.T) {
	t.Parallel()

	_, err := NewToken("alice", oauth.AccessToken{}, nil, "", []string{"ROLE_USER"})
	assert.ErrorIs(t, err, ErrEmptyProviderKey)
}

func TestToken_JSON(t *testing.T) {
	t.Parallel()

	me := entity.New(entity.UserSchema, "https://connect.example/api/users/42", "")
	tok, err := NewToken("alice", oauth.AccessToken{Value: "abc123", Scope: "read"}, me, "connect", []string{"ROLE_USER"})
	require.NoError(t, err)

	data, err := json.Marshal(tok)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":"alice","access_token":"abc123","scope":"read",
		"api_user":"https://connect.example/api/users/42","provider_key":"connect","roles":["ROLE_USER"]}`, string(data))

	var restored Token
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, "abc123", restored.Credentials())
	assert.Equal(t, "https://connect.example/api/users/42", restored.APIUserURL())
	assert.Nil(t, restored.APIUser())
	assert.True(t, restored.Authenticated())

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"user":"x"}`), &restored), ErrEmptyProviderKey)
}

func TestToken_LogValue(t *testing.T) {
	t.Parallel()

	tok, err := NewToken("alice", oauth.AccessToken{Value: "abc123"}, nil, "connect", []string{"ROLE_USER"})
	require.NoError(t, err)

	var buf bytes.Buffer
	logging.New(logging.WithOutput(&buf)).Info("login", "session", tok)
	assert.NotContains(t, buf.String(), "abc123")
	assert.Contains(t, buf.String(), "alice")
	assert.Contains(t, buf.String(), slog.LevelInfo.String())
}
