package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turkgate/turkgate/config"
)

// validateCmd validates a config file without touching the platform.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a turkgate configuration file without starting the monitor.

This command parses the YAML, expands environment variables, and validates
all fields. No platform calls are made. It's useful for CI/CD pipelines or
pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  turkgate validate -c config.yaml
  turkgate validate --config /etc/turkgate/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	statusServer := "disabled"
	if cfg.StatusPort != 0 {
		statusServer = fmt.Sprintf("port %d", cfg.StatusPort)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Batch:           %s\n", cfg.BatchID)
	fmt.Printf("  Max assignments: %d\n", cfg.MaxAssignments)
	fmt.Printf("  Poll interval:   %s\n", cfg.PollInterval.Duration())
	fmt.Printf("  Endpoint:        %s\n", cfg.EndpointURL)
	fmt.Printf("  Region:          %s\n", cfg.Region)
	fmt.Printf("  Status server:   %s\n", statusServer)
	fmt.Printf("  Dry run:         %t\n", cfg.DryRun)

	return nil
}
