// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package oauth

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ory/fosite"
)

// MaxRedirectURILength is the maximum allowed length for a callback URI.
const MaxRedirectURILength = 2048

// RedirectURIPolicy controls which callback URIs the consumer accepts before
// talking to the provider.
type RedirectURIPolicy int

const (
	// RedirectURIPolicyStrict allows only https and http-loopback schemes
	// (RFC 8252 Section 8.4). Web applications and the CLI loopback server
	// both satisfy it.
	RedirectURIPolicyStrict RedirectURIPolicy = iota

	// RedirectURIPolicyAllowPrivateSchemes also allows private-use URI schemes
	// such as myapp:// for native applications (RFC 8252 Section 7.1).
	RedirectURIPolicyAllowPrivateSchemes
)

// String returns the policy name.
func (p RedirectURIPolicy) String() string {
	switch p {
	case RedirectURIPolicyStrict:
		return "strict"
	case RedirectURIPolicyAllowPrivateSchemes:
		return "allow-private-schemes"
	default:
		return fmt.Sprintf("RedirectURIPolicy(%d)", int(p))
	}
}

// ValidateRedirectURI checks a callback URI per RFC 6749 Section 3.1.2 and
// RFC 8252. Every failure wraps ErrInvalidRedirectURI.
func ValidateRedirectURI(uri string, policy RedirectURIPolicy) error {
	if len(uri) > MaxRedirectURILength {
		return fmt.Errorf("%w: too long (maximum %d characters)", ErrInvalidRedirectURI, MaxRedirectURILength)
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRedirectURI, err)
	}

	if !fosite.IsValidRedirectURI(parsed) {
		return fmt.Errorf("%w: must be an absolute URI without a fragment", ErrInvalidRedirectURI)
	}

	ctx := context.Background()
	switch policy {
	case RedirectURIPolicyStrict:
		if !fosite.IsRedirectURISecureStrict(ctx, parsed) {
			return fmt.Errorf("%w: must use http (for loopback) or https scheme", ErrInvalidRedirectURI)
		}
	case RedirectURIPolicyAllowPrivateSchemes:
		if !fosite.IsRedirectURISecure(ctx, parsed) {
			return fmt.Errorf("%w: must use a secure scheme (https, http for loopback, or a private-use scheme)",
				ErrInvalidRedirectURI)
		}
	default:
		return fmt.Errorf("%w: unknown policy %s", ErrInvalidRedirectURI, policy)
	}

	return nil
}
