// Package main is the entry point of the abrigoctl operator CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "abrigoctl",
	Short:         "Operator tooling for the Abrigo backend",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Run executes CLI.
func Run() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}

	return 0
}

func main() {
	os.Exit(Run())
}
