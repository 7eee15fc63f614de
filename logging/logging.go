// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

// Format selects the record encoding.
type Format int

const (
	// FormatJSON writes one JSON object per record. It is the default and
	// what services embedding the consumer usually ship to a collector.
	FormatJSON Format = iota

	// FormatText writes key=value lines, as the connect CLI does on a terminal.
	FormatText
)

type config struct {
	format Format
	level  slog.Leveler
	output io.Writer
	zap    *zap.Logger
}

// Option customizes [New] and [NewHandler].
type Option func(*config)

// WithFormat picks [FormatJSON] or [FormatText].
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithLevel drops records below l. It has no effect together with
// [WithZap]; the zap logger's own level applies there.
func WithLevel(l slog.Leveler) Option {
	return func(c *config) {
		c.level = l
	}
}

// WithOutput redirects records to w.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithZap routes records through an existing zap logger instead of a
// slog handler. slog levels map onto logr verbosity, so Debug records need
// a zap level of -4 or lower to be written.
func WithZap(z *zap.Logger) Option {
	return func(c *config) {
		c.zap = z
	}
}

// New creates a pre-configured [*log/slog.Logger] whose records have
// credentials redacted before they reach the output.
//
// Defaults:
//   - Format: JSON ([FormatJSON])
//   - Level: INFO ([log/slog.LevelInfo])
//   - Output: [os.Stderr]
//   - Timestamps: [time.RFC3339]
func New(opts ...Option) *slog.Logger {
	return slog.New(NewHandler(opts...))
}

// NewHandler returns the redacting [log/slog.Handler] used by [New], for
// callers that want to wrap it further.
func NewHandler(opts ...Option) slog.Handler {
	cfg := &config{
		format: FormatJSON,
		level:  slog.LevelInfo,
		output: os.Stderr,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.zap != nil {
		return &redactHandler{next: logr.ToSlogHandler(zapr.NewLogger(cfg.zap))}
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       cfg.level,
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	switch cfg.format {
	case FormatText:
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	return &redactHandler{next: handler}
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// replaceAttr renders timestamps as RFC3339.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format(time.RFC3339))
		}
	}
	return a
}
