// Package main is the entry point for the presence CLI.
//
// Usage:
//
//	presence serve                    # Serve using SECRET_KEY from the environment
//	presence serve -c config.yaml     # Serve using a config file
//	presence validate -c config.yaml  # Validate configuration
//	presence get --url URL            # Read the current status
//	presence set busy --url URL       # Publish a status
//	presence version                  # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "presence",
	Short: "A minimal presence-reporting endpoint",
	Long: `presence serves a single HTTP route that reports whether you are
online, busy, or offline.

Publishers POST {"status":"online"} or {"status":"busy"} with the shared
secret as a bearer token. Anyone may GET the current status; once the last
publish is older than ten minutes it reads as "offline".

Quick start:
  1. export SECRET_KEY=change-me
  2. presence serve
  3. presence set busy --url http://localhost:8080`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this presence binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "presence %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
