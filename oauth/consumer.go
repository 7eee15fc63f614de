// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/go-querystring/query"
	"golang.org/x/oauth2"

	"github.com/stacklok/connect-client-go/logging"
	"github.com/stacklok/connect-client-go/metrics"
	"github.com/stacklok/connect-client-go/transport"
)

// Config holds the client registration used by a Consumer.
type Config struct {
	ClientID     string
	ClientSecret string
	Scope        string
	// Endpoint is the authorization server base URL. Empty means DefaultEndpoint.
	Endpoint string
}

// Consumer drives the authorization code flow against a Connect server: it
// builds the URI the user is redirected to and exchanges the returned code
// for an access token.
type Consumer struct {
	clientID     string
	clientSecret string
	scope        string
	endpoint     string
	authorizeURL string
	tokenURL     string
	strictChecks bool
	policy       *RedirectURIPolicy

	transport transport.Transport
	logger    *slog.Logger
	metrics   *metrics.Recorder
}

// Option configures a Consumer.
type Option func(*Consumer)

// WithTransport sets the HTTP collaborator. Defaults to transport.NewHTTP().
func WithTransport(t transport.Transport) Option {
	return func(c *Consumer) {
		c.transport = t
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Consumer) {
		c.logger = l
	}
}

// WithMetrics records exchange outcomes.
func WithMetrics(m *metrics.Recorder) Option {
	return func(c *Consumer) {
		c.metrics = m
	}
}

// WithStrictChecks sets the strict flag sent with token requests. It is
// passed to the provider verbatim and changes nothing locally.
func WithStrictChecks(strict bool) Option {
	return func(c *Consumer) {
		c.strictChecks = strict
	}
}

// WithRedirectURIPolicy validates callback URIs against policy before any request.
func WithRedirectURIPolicy(policy RedirectURIPolicy) Option {
	return func(c *Consumer) {
		c.policy = &policy
	}
}

// WithPaths overrides the authorization and token endpoint paths.
// Empty values keep the defaults.
func WithPaths(authorize, token string) Option {
	return func(c *Consumer) {
		if authorize != "" {
			c.authorizeURL = c.endpoint + authorize
		}
		if token != "" {
			c.tokenURL = c.endpoint + token
		}
	}
}

// NewConsumer creates a consumer for the given client registration.
func NewConsumer(cfg Config, opts ...Option) *Consumer {
	endpoint := strings.TrimSuffix(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Consumer{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		scope:        cfg.Scope,
		endpoint:     endpoint,
		authorizeURL: endpoint + AuthorizePath,
		tokenURL:     endpoint + TokenPath,
		strictChecks: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = transport.NewHTTP()
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	return c
}

// NewConsumerFromMetadata creates a consumer whose endpoints come from RFC
// 8414 metadata. cfg.Endpoint is ignored in favor of md.Issuer.
func NewConsumerFromMetadata(cfg Config, md *AuthorizationServerMetadata, opts ...Option) (*Consumer, error) {
	if err := md.Validate(); err != nil {
		return nil, err
	}
	cfg.Endpoint = md.Issuer
	c := NewConsumer(cfg, opts...)
	c.authorizeURL = md.AuthorizationEndpoint
	c.tokenURL = md.TokenEndpoint
	return c, nil
}

// ClientID returns the client identifier.
func (c *Consumer) ClientID() string { return c.clientID }

// Scope returns the requested scope.
func (c *Consumer) Scope() string { return c.scope }

// Endpoint returns the authorization server base URL.
func (c *Consumer) Endpoint() string { return c.endpoint }

// StrictChecks returns the strict flag sent with token requests.
func (c *Consumer) StrictChecks() bool { return c.strictChecks }

// TokenURL returns the token endpoint URL.
func (c *Consumer) TokenURL() string { return c.tokenURL }

type authorizeParams struct {
	ClientID     string `url:"client_id"`
	Scope        string `url:"scope"`
	RedirectURI  string `url:"redirect_uri"`
	State        string `url:"state"`
	ResponseType string `url:"response_type"`
}

type tokenParams struct {
	ClientID     string `url:"client_id"`
	ClientSecret string `url:"client_secret"`
	Code         string `url:"code"`
	GrantType    string `url:"grant_type"`
	RedirectURI  string `url:"redirect_uri"`
	ResponseType string `url:"response_type"`
	Scope        string `url:"scope"`
	Strict       bool   `url:"strict,int"`
}

// AuthorizationURI returns the URI to redirect the user to. It performs no I/O.
func (c *Consumer) AuthorizationURI(callbackURI, state string) string {
	vals, err := query.Values(authorizeParams{
		ClientID:     c.clientID,
		Scope:        c.scope,
		RedirectURI:  callbackURI,
		State:        state,
		ResponseType: ResponseTypeCode,
	})
	if err != nil {
		// Unreachable: the struct only has string fields.
		panic(err)
	}
	sep := "?"
	if strings.Contains(c.authorizeURL, "?") {
		sep = "&"
	}
	return c.authorizeURL + sep + vals.Encode()
}

// ExchangeCode trades an authorization code for an access token. The
// callback URI must be the one used to build the authorization URI.
//
// The provider's answer is judged by its body alone: a body that is not JSON
// or lacks an access token, and a body carrying an error field, all yield a
// *ProviderError.
func (c *Consumer) ExchangeCode(ctx context.Context, callbackURI, code string) (AccessToken, error) {
	if c.policy != nil {
		if err := ValidateRedirectURI(callbackURI, *c.policy); err != nil {
			c.metrics.ObserveExchange(metrics.ExchangeInvalid)
			return AccessToken{}, err
		}
	}

	form, err := query.Values(tokenParams{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		Code:         code,
		GrantType:    GrantTypeAuthorizationCode,
		RedirectURI:  callbackURI,
		ResponseType: ResponseTypeCode,
		Scope:        c.scope,
		Strict:       c.strictChecks,
	})
	if err != nil {
		return AccessToken{}, err
	}

	c.logger.InfoContext(ctx, "requesting access token", "url", c.tokenURL)
	c.logger.DebugContext(ctx, "sent token request parameters", "params", logging.RedactValues(form).Encode())

	resp, err := c.transport.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		URL:    c.tokenURL,
		Header: http.Header{"Accept": []string{"application/json"}},
		Form:   form,
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "token request failed", "error", err)
		return AccessToken{}, c.fail(&ProviderError{
			Code:    ErrorCodeProvider,
			Message: "response content couldn't be converted to JSON",
			Cause:   err,
		})
	}

	var raw map[string]any
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		c.logger.ErrorContext(ctx, "received non-json response", "status", resp.StatusCode)
		return AccessToken{}, c.fail(&ProviderError{
			Code:    ErrorCodeProvider,
			Message: "response content couldn't be converted to JSON",
			Cause:   err,
		})
	}
	c.logger.DebugContext(ctx, "received token response",
		"status", resp.StatusCode, "response", logging.RedactFields(raw))

	if errCode, ok := raw["error"]; ok && errCode != nil {
		code, message := field(errCode), field(raw["message"])
		c.logger.ErrorContext(ctx, "the oauth provider responded with an error",
			"error_code", code, "message", message)
		return AccessToken{}, c.fail(&ProviderError{Code: code, Message: message})
	}
	accessToken := field(raw["access_token"])
	if accessToken == "" {
		return AccessToken{}, c.fail(&ProviderError{
			Code:    ErrorCodeProvider,
			Message: "response did not contain an access token",
		})
	}

	c.metrics.ObserveExchange(metrics.ExchangeSuccess)
	return AccessToken{Value: accessToken, Scope: field(raw["scope"])}, nil
}

// field renders a token response member as text. Providers are not strict
// about types, so non-string values are formatted rather than rejected.
func field(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func (c *Consumer) fail(err *ProviderError) error {
	c.metrics.ObserveExchange(metrics.ExchangeProviderError)
	return err
}

// OAuth2Config describes the consumer as a golang.org/x/oauth2 configuration.
// Connect expects client credentials in the request body.
func (c *Consumer) OAuth2Config(callbackURI string) *oauth2.Config {
	var scopes []string
	if c.scope != "" {
		scopes = strings.Fields(c.scope)
	}
	return &oauth2.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		RedirectURL:  callbackURI,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.authorizeURL,
			TokenURL:  c.tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}
