// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package app implements the connect command line.

Settings come from a YAML file (see package config) overridden by CONNECT_*
environment variables. The login command runs the authorization code flow
through a loopback callback server and keeps the resulting session in the
system keyring, keyed by authorization server:

	connect login
	connect get
	connect get /api/users/42
	connect submit /api/users/42 profile --set city=Lille
	connect logout
*/
package app
