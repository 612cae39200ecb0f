package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a presence configuration without starting the server.

This command parses the YAML, expands environment variables, and validates
all fields. Without --config it checks the environment defaults.

The secret itself is never printed.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  presence validate -c config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("config", "c", "", "path to config file (defaults to environment)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	store := cfg.Store.Driver
	if cfg.Store.Path != "" {
		store += " (" + cfg.Store.Path + ")"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Port:        %d\n", cfg.Port)
	fmt.Fprintf(out, "  Stale after: %s\n", cfg.StaleAfter.Duration())
	fmt.Fprintf(out, "  Seed status: %t\n", cfg.Seed())
	fmt.Fprintf(out, "  Store:       %s\n", store)
	fmt.Fprintf(out, "  Secret:      %d bytes\n", len(cfg.SecretKey))
	return nil
}
