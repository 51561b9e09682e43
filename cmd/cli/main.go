// Package main is the entry point for the quote CLI.
package main

import (
	"os"

	"quote-pricing/cmd/cli/cmd"
	"quote-pricing/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
