// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/shimgen/shimgen/cmd/shimgen"

func main() {
	cmd.Execute()
}
