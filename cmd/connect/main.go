// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Command connect logs into a Connect server and browses its API.
package main

import (
	"os"

	"github.com/stacklok/connect-client-go/cmd/connect/app"
)

func main() {
	os.Exit(app.Execute())
}
