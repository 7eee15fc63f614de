// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("default format is JSON with RFC3339 timestamps", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := New(WithOutput(&buf))

		logger.Info("test message", "key", "value")

		entry := decode(t, &buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "test message", entry["msg"])
		assert.Equal(t, "value", entry["key"])

		ts, ok := entry["time"].(string)
		require.True(t, ok, "time field should be a string")
		_, err := time.Parse(time.RFC3339, ts)
		assert.NoError(t, err, "timestamp should be valid RFC3339")
	})

	t.Run("text format produces key=value output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := New(WithFormat(FormatText), WithLevel(slog.LevelDebug), WithOutput(&buf))

		logger.Debug("debug message")

		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "msg=\"debug message\"")
	})
}

func TestNew_WithLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		level       slog.Level
		logLevel    slog.Level
		shouldWrite bool
	}{
		{"debug logger writes debug", slog.LevelDebug, slog.LevelDebug, true},
		{"info logger filters debug", slog.LevelInfo, slog.LevelDebug, false},
		{"info logger writes info", slog.LevelInfo, slog.LevelInfo, true},
		{"warn logger filters info", slog.LevelWarn, slog.LevelInfo, false},
		{"error logger writes error", slog.LevelError, slog.LevelError, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := New(WithLevel(tc.level), WithOutput(&buf))

			logger.Log(context.TODO(), tc.logLevel, "test")

			if tc.shouldWrite {
				assert.NotEmpty(t, buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestNew_Redaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		log   func(*slog.Logger)
		key   string
		check func(t *testing.T, v any)
	}{
		{
			name: "sensitive key is masked",
			log:  func(l *slog.Logger) { l.Info("exchange", "client_secret", "s3cr3t") },
			key:  "client_secret",
			check: func(t *testing.T, v any) {
				t.Helper()
				assert.Equal(t, Redacted, v)
			},
		},
		{
			name: "sensitive key is matched case-insensitively",
			log:  func(l *slog.Logger) { l.Info("exchange", "Access_Token", "abc123") },
			key:  "Access_Token",
			check: func(t *testing.T, v any) {
				t.Helper()
				assert.Equal(t, Redacted, v)
			},
		},
		{
			name: "token in URL value is masked",
			log:  func(l *slog.Logger) { l.Info("GET", "url", "https://connect.example.com/api?access_token=abc123&page=2") },
			key:  "url",
			check: func(t *testing.T, v any) {
				t.Helper()
				s, ok := v.(string)
				require.True(t, ok)
				assert.NotContains(t, s, "abc123")
				assert.Contains(t, s, "page=2")
			},
		},
		{
			name: "group members are masked",
			log: func(l *slog.Logger) {
				l.Info("request", slog.Group("form", slog.String("code", "authcode"), slog.String("scope", "read")))
			},
			key: "form",
			check: func(t *testing.T, v any) {
				t.Helper()
				group, ok := v.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, Redacted, group["code"])
				assert.Equal(t, "read", group["scope"])
			},
		},
		{
			name: "non-sensitive key passes through",
			log:  func(l *slog.Logger) { l.Info("exchange", "scope", "read") },
			key:  "scope",
			check: func(t *testing.T, v any) {
				t.Helper()
				assert.Equal(t, "read", v)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tc.log(New(WithOutput(&buf)))

			entry := decode(t, &buf)
			tc.check(t, entry[tc.key])
		})
	}
}

func TestNew_RedactionWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(WithOutput(&buf)).With("token", "abc123", "client_id", "app")

	logger.Info("bound attrs")

	entry := decode(t, &buf)
	assert.Equal(t, Redacted, entry["token"])
	assert.Equal(t, "app", entry["client_id"])
	assert.NotContains(t, buf.String(), "abc123")
}

func TestNew_WithZap(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	logger := New(WithZap(zap.New(core)))

	logger.Info("exchange complete", "access_token", "abc123", "scope", "read")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "exchange complete", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, Redacted, fields["access_token"])
	assert.Equal(t, "read", fields["scope"])
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	logger := Discard()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"no query", "https://connect.example.com/api", "https://connect.example.com/api"},
		{"token masked", "https://connect.example.com/api?access_token=abc", "https://connect.example.com/api?access_token=%5BREDACTED%5D"},
		{"other params kept", "https://h/p?a=1&code=xyz", "https://h/p?a=1&code=%5BREDACTED%5D"},
		{"userinfo password masked", "https://user:pw@h/p", "https://user:xxxxx@h/p"},
		{"unparseable", "http://[::1", Redacted},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, RedactURL(tc.raw))
		})
	}
}

func TestRedactFields(t *testing.T) {
	t.Parallel()

	in := map[string]any{"client_secret": "s", "name": "Fabien"}
	out := RedactFields(in)

	assert.Equal(t, Redacted, out["client_secret"])
	assert.Equal(t, "Fabien", out["name"])
	assert.Equal(t, "s", in["client_secret"], "input must not be modified")

	nested := RedactFields(map[string]any{
		"properties": map[string]any{"access_token": "tok", "city": "Lille"},
		"items":      []any{map[string]any{"password": "p"}, "plain"},
	})
	assert.Equal(t, map[string]any{
		"properties": map[string]any{"access_token": Redacted, "city": "Lille"},
		"items":      []any{map[string]any{"password": Redacted}, "plain"},
	}, nested)
}

func TestReplaceAttr(t *testing.T) {
	t.Parallel()

	t.Run("formats time attribute to RFC3339", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2026, 2, 17, 10, 30, 0, 0, time.UTC)
		result := replaceAttr(nil, slog.Time(slog.TimeKey, now))

		assert.Equal(t, slog.TimeKey, result.Key)
		assert.Equal(t, "2026-02-17T10:30:00Z", result.Value.String())
	})

	t.Run("passes non-time attributes unchanged", func(t *testing.T) {
		t.Parallel()
		attr := slog.String("key", "value")
		assert.Equal(t, attr, replaceAttr(nil, attr))
	})
}
