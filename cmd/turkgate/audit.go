package main

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turkgate/turkgate"
	"github.com/turkgate/turkgate/config"
	"github.com/turkgate/turkgate/mturk"
)

// auditCmd runs a single dry-run cycle and prints the tallies.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run one dry-run cycle and print per-worker tallies",
	Long: `Run a single monitoring cycle against the batch without issuing any
qualification grants, then print each worker's completed-assignment tally
and which workers are over the cap.

Useful for checking a threshold against a live batch before enforcing it.

Example:
  turkgate audit -c config.yaml`,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = auditCmd.MarkFlagRequired("config")
}

func runAudit(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mturk.New(ctx, config.BuildClientConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create mturk client: %w", err)
	}

	opts := append(config.BuildOptions(cfg, client),
		turkgate.WithLogger(logger),
		turkgate.WithDryRun(true),
	)
	mon, err := turkgate.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create monitor: %w", err)
	}

	rep, err := mon.RunCycle(ctx)
	if err != nil {
		return fmt.Errorf("audit cycle failed: %w", err)
	}

	workerIDs := make([]string, 0, len(rep.Tally))
	for workerID := range rep.Tally {
		workerIDs = append(workerIDs, workerID)
	}
	sort.Strings(workerIDs)

	fmt.Printf("Batch %s: %d workers with completed assignments\n", cfg.BatchID, len(rep.Tally))
	for _, workerID := range workerIDs {
		marker := ""
		if rep.Tally[workerID] > cfg.MaxAssignments {
			marker = "  <- over cap"
		}
		fmt.Printf("  %-16s %4d%s\n", workerID, rep.Tally[workerID], marker)
	}
	fmt.Printf("Already disqualified: %d\n", len(rep.AlreadyDisqualified))
	fmt.Printf("Would disqualify:     %d\n", len(rep.Disqualified))

	return nil
}
