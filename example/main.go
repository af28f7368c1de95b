// Command example demonstrates SDK usage of turkgate against the MTurk
// sandbox. It needs real sandbox credentials in the environment, a batch
// published through the web UI, and a qualification type to grant.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turkgate/turkgate"
	"github.com/turkgate/turkgate/mturk"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mturk.New(ctx, mturk.ClientConfig{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		Region:          "us-east-1",
		EndpointURL:     "https://mturk-requester-sandbox.us-east-1.amazonaws.com",
	})
	if err != nil {
		logger.Error("failed to create mturk client", "error", err)
		os.Exit(1)
	}

	mon, err := turkgate.New(
		turkgate.WithPlatform(client),
		turkgate.WithBatchID(os.Getenv("TURKGATE_BATCH_ID")),
		turkgate.WithQualificationTypeID(os.Getenv("TURKGATE_QUALIFICATION_ID")),
		turkgate.WithMaxAssignments(10),
		turkgate.WithPollInterval(30*time.Second),
		turkgate.WithStatusPort(8080),
		turkgate.WithLogger(logger),
		turkgate.WithOnDisqualify(func(d turkgate.Disqualification) {
			logger.Info("cap enforced",
				"worker_id", d.WorkerID,
				"completed", d.Completed,
			)
		}),
	)
	if err != nil {
		logger.Error("failed to create monitor", "error", err)
		os.Exit(1)
	}

	// blocks until SIGINT/SIGTERM or a platform error
	if err := mon.Start(ctx); err != nil {
		logger.Error("monitor error", "error", err)
		os.Exit(1)
	}
}
