// Package main provides the entry point for the codex CLI.
package main

import (
	"fmt"
	"os"

	"github.com/codexreader/codex-core/internal/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
