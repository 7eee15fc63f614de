// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package role

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Prefix starts every role name.
const Prefix = "ROLE_"

// ErrInvalidName is wrapped by every validation failure.
var ErrInvalidName = errors.New("invalid role name")

var validNameRegex = regexp.MustCompile(`^ROLE_[A-Z0-9_]+$`)

// ValidateName checks that name is a ROLE_ prefixed uppercase identifier.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: cannot be empty", ErrInvalidName)
	}

	if !strings.HasPrefix(name, Prefix) {
		return fmt.Errorf("%w: must start with %s: %q", ErrInvalidName, Prefix, name)
	}

	if !validNameRegex.MatchString(name) {
		return fmt.Errorf("%w: can only contain uppercase letters, digits and underscores: %q", ErrInvalidName, name)
	}

	// Trailing underscores usually mean a truncated template variable
	if strings.HasSuffix(name, "_") {
		return fmt.Errorf("%w: cannot end with an underscore: %q", ErrInvalidName, name)
	}

	return nil
}
