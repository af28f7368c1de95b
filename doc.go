// Package turkgate enforces a per-worker completion cap on a batch of
// Mechanical Turk HITs.
//
// A [Monitor] polls the platform on a fixed interval, tallies completed
// (Submitted or Approved) assignments per worker across the batch, and
// grants a disqualifying qualification to any worker whose tally strictly
// exceeds the configured maximum. The qualification gates further access
// to the batch, keeping submissions spread across many workers.
//
// # Quick Start
//
// Build a platform client, configure a monitor, and start it with graceful
// shutdown:
//
//	client, _ := mturk.New(ctx, mturk.ClientConfig{
//	    AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
//	    SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
//	    Region:          "us-east-1",
//	    EndpointURL:     "https://mturk-requester-sandbox.us-east-1.amazonaws.com",
//	})
//
//	mon, _ := turkgate.New(
//	    turkgate.WithPlatform(client),
//	    turkgate.WithBatchID("3954555"),
//	    turkgate.WithQualificationTypeID("3XB6FJ8KPXAMPLE"),
//	    turkgate.WithMaxAssignments(10),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	mon.Start(ctx) // blocks until context cancelled or a platform call fails
//
// # Failure Model
//
// The monitor is deliberately fail-fast: any platform error aborts the
// current cycle and is returned from [Monitor.Start]. There is no retry or
// backoff. Restarting is always safe because every cycle re-derives its
// state from the platform; nothing carries over between cycles or between
// process runs.
//
// # Configuration
//
// Monitors are configured with the functional options pattern:
//
//	mon, err := turkgate.New(
//	    turkgate.WithPlatform(client),
//	    turkgate.WithBatchID("3954555"),
//	    turkgate.WithQualificationTypeID("3XB6FJ8KPXAMPLE"),
//	    turkgate.WithMaxAssignments(10),
//	    turkgate.WithPollInterval(2 * time.Minute),
//	    turkgate.WithStatusPort(8080),
//	    turkgate.WithOnDisqualify(func(d turkgate.Disqualification) {
//	        log.Printf("blacklisted %s after %d completions", d.WorkerID, d.Completed)
//	    }),
//	)
//
// The mturk subpackage implements [Platform] against the real MTurk
// requester API; the config subpackage loads YAML configuration for the
// standalone CLI under cmd/turkgate.
package turkgate
