// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package config loads client settings from a YAML file and the environment.

# File

The default location follows the XDG base directory specification:

	$XDG_CONFIG_HOME/connect/config.yaml

A typical file:

	client_id: my-app
	client_secret: s3cr3t
	scope: SCOPE_PUBLIC SCOPE_EMAIL
	log:
	  format: text
	  level: debug

# Environment

CONNECT_* variables override the file. Environment access goes through the
EnvReader interface so tests can inject the generated mock from the mocks
sub-package:

	ctrl := gomock.NewController(t)
	env := mocks.NewMockEnvReader(ctrl)
	env.EXPECT().Getenv(gomock.Any()).Return("").AnyTimes()

	err := cfg.ApplyEnv(env)
*/
package config
