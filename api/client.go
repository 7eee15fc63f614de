// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/stacklok/connect-client-go/entity"
	"github.com/stacklok/connect-client-go/httperr"
	"github.com/stacklok/connect-client-go/logging"
	"github.com/stacklok/connect-client-go/metrics"
	"github.com/stacklok/connect-client-go/parser"
	"github.com/stacklok/connect-client-go/transport"
	httpval "github.com/stacklok/connect-client-go/validation/http"
)

// DefaultEndpoint is the Connect API entry point.
const DefaultEndpoint = "https://connect.symfony.com/api"

// ErrNilParser is returned by NewClient without a parser.
var ErrNilParser = errors.New("api client requires a parser")

// Parser turns response bodies into documents and names the media type it
// understands.
type Parser interface {
	ContentType() string
	Parse(body []byte) (entity.Document, error)
}

// Client talks to the Connect hypermedia API on behalf of one user session.
// Access token methods are safe for concurrent use, but a client is meant to
// serve a single logical session.
type Client struct {
	endpoint  string
	base      *url.URL
	parser    Parser
	transport transport.Transport
	logger    *slog.Logger
	metrics   *metrics.Recorder

	mu          sync.RWMutex
	accessToken string
}

var _ entity.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithEndpoint sets the API entry point. Defaults to DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithTransport sets the HTTP collaborator. Defaults to transport.NewHTTP().
func WithTransport(t transport.Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithMetrics records request counts and durations.
func WithMetrics(m *metrics.Recorder) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates an API client that decodes responses with p.
func NewClient(p Parser, opts ...Option) (*Client, error) {
	if p == nil {
		return nil, ErrNilParser
	}
	c := &Client{endpoint: DefaultEndpoint, parser: p}
	for _, opt := range opts {
		opt(c)
	}
	if err := httpval.ValidateEndpoint(c.endpoint); err != nil {
		return nil, err
	}
	base, err := url.Parse(strings.TrimSuffix(c.endpoint, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	c.base = base
	if c.transport == nil {
		c.transport = transport.NewHTTP()
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	return c, nil
}

// Endpoint returns the API entry point.
func (c *Client) Endpoint() string { return c.endpoint }

// Parser returns the response parser.
func (c *Client) Parser() Parser { return c.parser }

// SetAccessToken sets the token injected into every request, replacing any
// previous one.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

// ResetAccessToken removes the access token.
func (c *Client) ResetAccessToken() {
	c.SetAccessToken("")
}

// AccessToken returns the current access token, or "" when none is set.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// Root fetches the API entry point.
func (c *Client) Root(ctx context.Context) (*entity.Entity, error) {
	return c.Get(ctx, c.endpoint, nil)
}

// Get fetches the resource at rawURL. A nil entity with a nil error means the
// server answered without content.
func (c *Client) Get(ctx context.Context, rawURL string, header http.Header) (*entity.Entity, error) {
	return c.do(ctx, http.MethodGet, rawURL, nil, header)
}

// Submit sends fields to rawURL with method, POST when empty. A nil entity
// with a nil error means the server accepted the request without content.
func (c *Client) Submit(
	ctx context.Context, rawURL, method string, fields map[string]any, header http.Header,
) (*entity.Entity, error) {
	if method == "" {
		method = http.MethodPost
	}
	form, err := EncodeFields(fields)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, strings.ToUpper(method), rawURL, form, header)
}

func (c *Client) do(
	ctx context.Context, method, rawURL string, form url.Values, header http.Header,
) (*entity.Entity, error) {
	target, err := c.resolve(rawURL)
	if err != nil {
		return nil, err
	}
	target, err = InjectAccessToken(target, c.AccessToken())
	if err != nil {
		return nil, err
	}
	h, err := c.headers(header)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "api request", "method", method, "url", logging.RedactURL(target))
	if form != nil {
		c.logger.DebugContext(ctx, "posted fields", "fields", logging.RedactValues(form).Encode())
	}

	start := time.Now()
	resp, err := c.transport.Do(ctx, &transport.Request{
		Method: method,
		URL:    target,
		Header: h,
		Form:   form,
	})
	if err != nil {
		c.metrics.ObserveRequest(method, 0, time.Since(start))
		c.logger.ErrorContext(ctx, "api request failed", "method", method, "error", err)
		return nil, err
	}
	c.metrics.ObserveRequest(method, resp.StatusCode, time.Since(start))

	c.logger.InfoContext(ctx, "api response", "method", method, "status", resp.StatusCode)
	c.logBody(ctx, resp.Body)

	return c.process(resp)
}

// logBody logs a JSON object body at debug level with sensitive keys masked
// at any depth. Other bodies are logged by size only.
func (c *Client) logBody(ctx context.Context, body []byte) {
	if !c.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	var doc map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		c.logger.DebugContext(ctx, "api response body", "bytes", len(body))
		return
	}
	c.logger.DebugContext(ctx, "api response body", "body", logging.RedactFields(doc))
}

// headers validates and copies the caller's headers, then sets Accept.
func (c *Client) headers(header http.Header) (http.Header, error) {
	if err := httpval.ValidateHeaders(header); err != nil {
		return nil, err
	}
	h := header.Clone()
	if h == nil {
		h = make(http.Header)
	}
	h.Set("Accept", c.parser.ContentType())
	return h, nil
}

func (c *Client) process(resp *transport.Response) (*entity.Entity, error) {
	switch {
	case httperr.IsServerError(resp.StatusCode):
		return nil, &ServerError{
			ResponseError: httperr.NewResponseError(resp.StatusCode, resp.Reason, resp.Header, resp.Body),
		}
	case resp.StatusCode >= http.StatusBadRequest:
		doc := &entity.Error{}
		if parsed, err := c.parser.Parse(resp.Body); err == nil {
			if e, ok := parsed.(*entity.Error); ok {
				doc = e
			}
		}
		return nil, &ClientError{
			ResponseError: httperr.NewResponseError(resp.StatusCode, resp.Reason, resp.Header, resp.Body),
			Document:      doc,
		}
	case resp.StatusCode == http.StatusNoContent:
		return nil, nil
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 {
		return nil, nil
	}

	doc, err := c.parser.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	e, ok := doc.(*entity.Entity)
	if !ok {
		return nil, &parser.UnexpectedDocumentError{Document: doc}
	}
	e.SetClient(c)
	return e, nil
}
