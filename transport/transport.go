// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package transport

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=transport.go -destination=mocks/mock_transport.go -package=mocks Transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/stacklok/connect-client-go/logging"
)

// DefaultMaxResponseBytes bounds how much of a response body is read.
const DefaultMaxResponseBytes int64 = 10 << 20

// ErrResponseTooLarge is returned when a body exceeds the configured limit.
var ErrResponseTooLarge = errors.New("response body too large")

// Request is an outbound HTTP request.
type Request struct {
	Method string
	URL    string
	Header http.Header
	// Form is sent as an application/x-www-form-urlencoded body, or merged
	// into the query string for methods without a body.
	Form url.Values
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Reason     string
	Header     http.Header
	Body       []byte
}

// Transport performs HTTP round trips.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Error reports a request that produced no response. Its message never
// contains the request's query string values in clear.
type Error struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, logging.RedactURL(e.URL), e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTP is the default Transport, backed by a net/http client.
type HTTP struct {
	client   *http.Client
	maxBytes int64
}

// HTTPOption configures an HTTP transport.
type HTTPOption func(*HTTP)

// WithClient replaces the pooled default client.
func WithClient(c *http.Client) HTTPOption {
	return func(h *HTTP) {
		h.client = c
	}
}

// WithMaxResponseBytes sets the response body limit.
func WithMaxResponseBytes(n int64) HTTPOption {
	return func(h *HTTP) {
		h.maxBytes = n
	}
}

// NewHTTP creates an HTTP transport. Without options it uses a pooled
// client from go-cleanhttp, which sets no overall request timeout; callers
// control deadlines through the request context.
func NewHTTP(opts ...HTTPOption) *HTTP {
	h := &HTTP{maxBytes: DefaultMaxResponseBytes}
	for _, opt := range opts {
		opt(h)
	}
	if h.client == nil {
		h.client = cleanhttp.DefaultPooledClient()
	}
	return h
}

// Do sends req and reads the whole response body.
func (h *HTTP) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := newHTTPRequest(ctx, req)
	if err != nil {
		return nil, &Error{Method: req.Method, URL: req.URL, Err: err}
	}

	resp, err := h.client.Do(httpReq)
	if err != nil {
		// *url.Error repeats the full URL, token included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, &Error{Method: httpReq.Method, URL: req.URL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, &Error{Method: httpReq.Method, URL: req.URL, Err: err}
	}
	if int64(len(body)) > h.maxBytes {
		return nil, &Error{Method: httpReq.Method, URL: req.URL, Err: ErrResponseTooLarge}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Reason:     reasonPhrase(resp),
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func newHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	target := req.URL
	var body io.Reader
	if len(req.Form) > 0 {
		if hasBody(method) {
			body = strings.NewReader(req.Form.Encode())
		} else {
			u, err := url.Parse(target)
			if err != nil {
				return nil, err
			}
			q := u.Query()
			for k, vs := range req.Form {
				q[k] = append(q[k], vs...)
			}
			u.RawQuery = q.Encode()
			target = u.String()
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return httpReq, nil
}

func hasBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return false
	}
	return true
}

// reasonPhrase extracts "Not Found" from a status line such as "404 Not Found".
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
