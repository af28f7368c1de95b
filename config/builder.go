package config

import (
	"github.com/turkgate/turkgate"
	"github.com/turkgate/turkgate/mturk"
)

// BuildOptions converts a validated Config into SDK options for
// [turkgate.New]. The platform client is built separately (see
// [BuildClientConfig]) and passed in, so callers can substitute fakes.
func BuildOptions(cfg *Config, platform turkgate.Platform) []turkgate.Option {
	opts := []turkgate.Option{
		turkgate.WithPlatform(platform),
		turkgate.WithBatchID(cfg.BatchID),
		turkgate.WithQualificationTypeID(cfg.QualificationTypeID),
		turkgate.WithMaxAssignments(cfg.MaxAssignments),
		turkgate.WithPollInterval(cfg.PollInterval.Duration()),
	}

	if cfg.StatusPort != 0 {
		opts = append(opts, turkgate.WithStatusPort(cfg.StatusPort))
	}

	if cfg.DryRun {
		opts = append(opts, turkgate.WithDryRun(true))
	}

	return opts
}

// BuildClientConfig converts a validated Config into the MTurk client
// configuration.
func BuildClientConfig(cfg *Config) mturk.ClientConfig {
	return mturk.ClientConfig{
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		Region:          cfg.Region,
		EndpointURL:     cfg.EndpointURL,
		DisqualifyValue: cfg.DisqualifyValue,
	}
}
