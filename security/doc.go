// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package security connects a Connect login to a host application's session.

Token holds the user, the access token, the Connect user entity and the
granted roles. A token without roles is not authenticated.

RoleMapper grants roles from CEL rules evaluated against the user:

	mapper, err := security.NewRoleMapper([]security.Rule{
		{Role: "ROLE_USER", Expression: "true"},
		{Role: "ROLE_EMAIL", Expression: `scope.contains("SCOPE_EMAIL")`},
		{Role: "ROLE_OWNER", Expression: "user.memberships.exists(m, m.isOwner)"},
	})
	if err != nil {
		return err
	}
	token, err := mapper.Authenticate(me, accessToken, "connect")

Expressions are limited in length and runtime cost. An expression that does
not compile is reported as an *ExpressionError listing each issue.
*/
package security
