// SPDX-License-Identifier: MPL-2.0

package main

import cmd "vsh-cli/cmd/vsh"

func main() {
	cmd.Execute()
}
