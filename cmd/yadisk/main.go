// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import "github.com/yadisk-tools/yadisk-sdk/internal/cli"

func main() {
	cli.Execute()
}
