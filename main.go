// Copyright 2025 The APH Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/aph-tools/aph/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
