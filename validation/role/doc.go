// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package role provides validation functions for security role names.

Roles granted by the security rules are compared verbatim by host
applications, so their names follow the conventional ROLE_ form.

# Name Validation

	if err := role.ValidateName("ROLE_CONNECT_USER"); err != nil {
		// Handle invalid role name
	}

Valid role names must:
  - Start with ROLE_
  - Contain only uppercase letters, digits and underscores after the prefix
  - Not end with an underscore

# Examples

Valid names:

	"ROLE_USER"
	"ROLE_CLUB_OWNER"
	"ROLE_ADMIN2"

Invalid names:

	""                  // empty
	"USER"              // missing prefix
	"ROLE_"             // nothing after the prefix
	"ROLE_user"         // lowercase
	"ROLE_CLUB OWNER"   // space
*/
package role
