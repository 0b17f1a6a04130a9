// Package main is the entry point for the studio-quote CLI.
package main

import (
	"os"

	"studio-quote/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
