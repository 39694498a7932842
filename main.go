// Package main is the entry point for the owngrep CLI.
package main

import "owngrep.dev/pkg/owngrep/cmd"

func main() {
	cmd.Execute()
}
