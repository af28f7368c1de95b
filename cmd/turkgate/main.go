// Package main is the entry point for the turkgate CLI.
//
// turkgate can be run either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	turkgate run -c config.yaml      # Start monitoring the batch
//	turkgate audit -c config.yaml    # One dry-run cycle, print tallies
//	turkgate validate -c config.yaml # Validate configuration
//	turkgate version                 # Show version info
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
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "turkgate",
	Short: "Per-worker completion caps for Mechanical Turk batches",
	Long: `turkgate monitors a batch of Mechanical Turk HITs and enforces a
per-worker completion cap.

On a fixed interval it tallies each worker's Submitted and Approved
assignments across the batch. Workers whose tally strictly exceeds the
cap are granted a disqualifying qualification that gates further access,
keeping submissions spread across many workers.

Quick start:
  1. Create a qualification type on MTurk and require its absence on
     the batch's HITs
  2. Create a config file (turkgate.yaml)
  3. Run: turkgate run -c turkgate.yaml

Example config:
  batch_id: "3954555"
  max_assignments: 10
  qualification_type_id: 3XB6FJ8KPXAMPLE
  endpoint_url: https://mturk-requester-sandbox.us-east-1.amazonaws.com
  access_key_id: ${AWS_ACCESS_KEY_ID}
  secret_access_key: ${AWS_SECRET_ACCESS_KEY}`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
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
	Long:  `Print the version, commit hash, and build date of this turkgate binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("turkgate %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
