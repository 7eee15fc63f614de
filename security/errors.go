// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package security

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

// Sentinel errors for tokens and role rules.
var (
	// ErrEmptyProviderKey is returned when a token is built without a provider key.
	ErrEmptyProviderKey = errors.New("provider key must not be empty")

	// ErrExpressionCheck is returned when a role expression fails syntax or type checking.
	ErrExpressionCheck = errors.New("role expression check failed")

	// ErrEvaluation is returned when a role expression fails at runtime.
	ErrEvaluation = errors.New("role expression evaluation failed")

	// ErrInvalidResult is returned when a role expression does not yield a bool.
	ErrInvalidResult = errors.New("role expression must evaluate to bool")
)

// Issue is one problem found in a role expression.
type Issue struct {
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
	Msg  string `json:"msg,omitempty"`
}

// ExpressionError reports a role rule whose expression does not compile.
type ExpressionError struct {
	Role   string
	Source string
	Issues []Issue
	cause  error
}

// Error implements the error interface.
func (e *ExpressionError) Error() string {
	return fmt.Sprintf("role %s: invalid expression %q: %s", e.Role, e.Source, e.cause)
}

// Unwrap returns the underlying error.
func (e *ExpressionError) Unwrap() error {
	return e.cause
}

func newExpressionError(role, source string, issues *cel.Issues) error {
	out := make([]Issue, 0, len(issues.Errors()))
	for _, err := range issues.Errors() {
		out = append(out, Issue{
			Line: err.Location.Line(),
			Col:  err.Location.Column(),
			Msg:  err.Message,
		})
	}
	return &ExpressionError{
		Role:   role,
		Source: source,
		Issues: out,
		cause:  fmt.Errorf("%w: %w", ErrExpressionCheck, issues.Err()),
	}
}
