// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"net/url"
	"strings"
)

// AccessTokenParam is the query parameter carrying the access token.
const AccessTokenParam = "access_token"

// InjectAccessToken sets the access_token query parameter of rawURL to
// token, replacing any previous value. Every other part of the URL, the
// order and encoding of the remaining query parameters included, is left
// untouched. An empty token returns rawURL unchanged.
func InjectAccessToken(rawURL, token string) (string, error) {
	if token == "" {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	var pairs []string
	if u.RawQuery != "" {
		for _, pair := range strings.Split(u.RawQuery, "&") {
			key, _, _ := strings.Cut(pair, "=")
			if k, err := url.QueryUnescape(key); err == nil && k == AccessTokenParam {
				continue
			}
			pairs = append(pairs, pair)
		}
	}
	pairs = append(pairs, AccessTokenParam+"="+url.QueryEscape(token))

	u.RawQuery = strings.Join(pairs, "&")
	u.ForceQuery = false
	return u.String(), nil
}

// resolve turns rawURL into an absolute URL, resolving relative references
// against the endpoint as a directory.
func (c *Client) resolve(rawURL string) (string, error) {
	ref, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if ref.IsAbs() {
		return rawURL, nil
	}
	return c.base.ResolveReference(ref).String(), nil
}
