package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turkgate/turkgate"
	"github.com/turkgate/turkgate/config"
	"github.com/turkgate/turkgate/mturk"
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// runCmd starts the batch monitor.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start monitoring the batch",
	Long: `Start the turkgate batch monitor.

The monitor will:
  - Load configuration from the specified YAML file
  - Poll the batch's completed assignments on the configured interval
  - Disqualify every worker whose tally strictly exceeds the cap

The monitor runs until interrupted (Ctrl+C) or it receives SIGTERM.
Any platform API error (bad credentials, missing batch, rate limit,
network failure) stops the process with a non-zero exit; restarting is
always safe because each cycle re-derives its state from the platform.

Example:
  turkgate run -c config.yaml
  turkgate run --config /etc/turkgate/config.yaml`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("config loaded",
		"batch_id", cfg.BatchID,
		"max_assignments", cfg.MaxAssignments,
		"poll_interval", cfg.PollInterval.Duration().String(),
		"endpoint_url", cfg.EndpointURL,
		"dry_run", cfg.DryRun,
	)

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mturk.New(ctx, config.BuildClientConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create mturk client: %w", err)
	}

	opts := append(config.BuildOptions(cfg, client), turkgate.WithLogger(logger))
	mon, err := turkgate.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create monitor: %w", err)
	}

	// blocks until the context is cancelled or a platform call fails
	if err := mon.Start(ctx); err != nil {
		return fmt.Errorf("monitor error: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
