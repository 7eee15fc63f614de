// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package security

import (
	"fmt"
	"slices"

	"github.com/google/cel-go/cel"

	"github.com/stacklok/connect-client-go/entity"
	"github.com/stacklok/connect-client-go/oauth"
	"github.com/stacklok/connect-client-go/validation/role"
)

const (
	// DefaultMaxExpressionLength is the maximum allowed length for a role expression.
	DefaultMaxExpressionLength = 10000

	// DefaultCostLimit is the runtime cost limit for evaluating one role expression.
	DefaultCostLimit = 1000000
)

// Rule grants Role when Expression evaluates to true. The expression sees
// two variables: user, the Connect user as a map, and scope, the granted
// scope string.
//
//	{Role: "ROLE_CLUB_OWNER", Expression: "user.memberships.exists(m, m.isOwner)"}
type Rule struct {
	Role       string `yaml:"role" json:"role"`
	Expression string `yaml:"expression" json:"expression"`
}

type compiledRule struct {
	role    string
	program cel.Program
}

// RoleMapper derives roles from a Connect user. It is safe for concurrent use.
type RoleMapper struct {
	rules []compiledRule
}

type mapperOptions struct {
	maxExpressionLength int
	costLimit           uint64
}

// MapperOption configures a RoleMapper.
type MapperOption func(*mapperOptions)

// WithMaxExpressionLength sets the maximum allowed expression length.
func WithMaxExpressionLength(n int) MapperOption {
	return func(o *mapperOptions) {
		o.maxExpressionLength = n
	}
}

// WithCostLimit sets the runtime cost limit per expression.
func WithCostLimit(limit uint64) MapperOption {
	return func(o *mapperOptions) {
		o.costLimit = limit
	}
}

// NewRoleMapper compiles rules. Role names must pass role.ValidateName and
// every expression must type-check to bool.
func NewRoleMapper(rules []Rule, opts ...MapperOption) (*RoleMapper, error) {
	o := mapperOptions{
		maxExpressionLength: DefaultMaxExpressionLength,
		costLimit:           DefaultCostLimit,
	}
	for _, opt := range opts {
		opt(&o)
	}

	env, err := cel.NewEnv(
		cel.Variable("user", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("scope", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	m := &RoleMapper{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		if err := role.ValidateName(r.Role); err != nil {
			return nil, err
		}
		if len(r.Expression) > o.maxExpressionLength {
			return nil, fmt.Errorf("role %s: %w: expression length %d exceeds maximum of %d",
				r.Role, ErrExpressionCheck, len(r.Expression), o.maxExpressionLength)
		}
		parsed, issues := env.Parse(r.Expression)
		if issues.Err() != nil {
			return nil, newExpressionError(r.Role, r.Expression, issues)
		}
		checked, issues := env.Check(parsed)
		if issues.Err() != nil {
			return nil, newExpressionError(r.Role, r.Expression, issues)
		}
		if !checked.OutputType().IsExactType(cel.BoolType) && !checked.OutputType().IsExactType(cel.DynType) {
			return nil, fmt.Errorf("role %s: %w, got %s", r.Role, ErrInvalidResult, checked.OutputType())
		}
		program, err := env.Program(checked, cel.CostLimit(o.costLimit))
		if err != nil {
			return nil, fmt.Errorf("failed to create CEL program for %q: %w", r.Expression, err)
		}
		m.rules = append(m.rules, compiledRule{role: r.Role, program: program})
	}
	return m, nil
}

// Roles returns the roles whose rule matches user, in rule order and without
// duplicates.
func (m *RoleMapper) Roles(user *entity.Entity, scope string) ([]string, error) {
	activation := map[string]any{
		"user":  user.ToMap(),
		"scope": scope,
	}
	var roles []string
	for _, r := range m.rules {
		out, _, err := r.program.Eval(activation)
		if err != nil {
			return nil, fmt.Errorf("role %s: %w: %s", r.role, ErrEvaluation, err)
		}
		granted, ok := out.Value().(bool)
		if !ok {
			return nil, fmt.Errorf("role %s: %w, got %T", r.role, ErrInvalidResult, out.Value())
		}
		if granted && !slices.Contains(roles, r.role) {
			roles = append(roles, r.role)
		}
	}
	return roles, nil
}

// Authenticate builds a token for user. The token is authenticated only when
// at least one rule matched.
func (m *RoleMapper) Authenticate(
	user *entity.Entity, accessToken oauth.AccessToken, providerKey string,
) (*Token, error) {
	roles, err := m.Roles(user, accessToken.Scope)
	if err != nil {
		return nil, err
	}
	username, err := user.StringValue("username")
	if err != nil {
		return nil, err
	}
	return NewToken(username, accessToken, user, providerKey, roles)
}
