// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command bookreviewctl runs migrations and seeds sample data against the
// book review database.
package main

import "github.com/danielhkuo/bookreview/cmd/bookreviewctl/commands"

func main() {
	commands.Execute()
}
