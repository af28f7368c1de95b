// Package config provides YAML configuration parsing for the turkgate CLI.
//
// This package enables running turkgate as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	batch_id: "3954555"
//	max_assignments: 10
//	qualification_type_id: 3XB6FJ8KPXAMPLE
//	poll_interval: 2m
//
//	region: us-east-1
//	endpoint_url: https://mturk-requester-sandbox.us-east-1.amazonaws.com
//	access_key_id: ${AWS_ACCESS_KEY_ID}
//	secret_access_key: ${AWS_SECRET_ACCESS_KEY}
//
//	status_port: 8080
package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// minPollInterval is the minimum allowed polling interval.
// This prevents accidental rate-limit exhaustion against the MTurk API.
const minPollInterval = 1 * time.Second

const (
	defaultPollInterval    = 2 * time.Minute
	defaultRegion          = "us-east-1"
	defaultDisqualifyValue = 1
)

// Config is the root configuration structure for turkgate.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// BatchID is the batch of HITs to monitor, e.g. "3954555".
	BatchID string `yaml:"batch_id"`

	// MaxAssignments is the completion cap. A worker whose completed
	// tally strictly exceeds this value is disqualified.
	MaxAssignments int `yaml:"max_assignments"`

	// QualificationTypeID is the qualification granted to workers over
	// the cap. It must already exist on the platform.
	QualificationTypeID string `yaml:"qualification_type_id"`

	// PollInterval is the sleep between monitoring cycles.
	// Accepts duration strings like "120s", "2m". Defaults to 2m.
	PollInterval Duration `yaml:"poll_interval"`

	// Region is the AWS region of the requester account. Defaults to
	// us-east-1.
	Region string `yaml:"region"`

	// EndpointURL is the MTurk requester endpoint, selecting production
	// or sandbox. Supports environment variable substitution.
	EndpointURL string `yaml:"endpoint_url"`

	// AccessKeyID and SecretAccessKey are the requester account's AWS
	// credentials. Values support environment variable substitution:
	// ${VAR} or ${VAR:-default}.
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`

	// DisqualifyValue is the integer value attached to the qualification
	// when granted. Defaults to 1.
	DisqualifyValue int `yaml:"disqualify_value"`

	// StatusPort enables the HTTP status server on the given port.
	// 0 (the default) disables it.
	StatusPort int `yaml:"status_port"`

	// DryRun makes the monitor tally and report without issuing grants.
	DryRun bool `yaml:"dry_run"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in EndpointURL, AccessKeyID, and
// SecretAccessKey. Defaults are applied for PollInterval (2m), Region
// (us-east-1), and DisqualifyValue (1).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.PollInterval == 0 {
		cfg.PollInterval = Duration(defaultPollInterval)
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	if cfg.DisqualifyValue == 0 {
		cfg.DisqualifyValue = defaultDisqualifyValue
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.BatchID == "" {
		return fmt.Errorf("batch_id is required")
	}

	if c.MaxAssignments < 1 {
		return fmt.Errorf("max_assignments must be at least 1, got %d", c.MaxAssignments)
	}

	if c.QualificationTypeID == "" {
		return fmt.Errorf("qualification_type_id is required")
	}

	if c.PollInterval.Duration() < minPollInterval {
		return fmt.Errorf("poll_interval must be at least %s, got %s", minPollInterval, c.PollInterval.Duration())
	}

	if c.EndpointURL == "" {
		return fmt.Errorf("endpoint_url is required")
	}
	expanded, err := expandEnvVars(c.EndpointURL)
	if err != nil {
		return fmt.Errorf("endpoint_url: %w", err)
	}
	c.EndpointURL = expanded

	parsedURL, err := url.Parse(c.EndpointURL)
	if err != nil {
		return fmt.Errorf("invalid endpoint_url: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("endpoint_url scheme must be http or https, got %q", parsedURL.Scheme)
	}

	if c.AccessKeyID == "" {
		return fmt.Errorf("access_key_id is required")
	}
	expanded, err = expandEnvVars(c.AccessKeyID)
	if err != nil {
		return fmt.Errorf("access_key_id: %w", err)
	}
	c.AccessKeyID = expanded

	if c.SecretAccessKey == "" {
		return fmt.Errorf("secret_access_key is required")
	}
	expanded, err = expandEnvVars(c.SecretAccessKey)
	if err != nil {
		return fmt.Errorf("secret_access_key: %w", err)
	}
	c.SecretAccessKey = expanded

	if c.DisqualifyValue < 0 {
		return fmt.Errorf("disqualify_value cannot be negative, got %d", c.DisqualifyValue)
	}

	if c.StatusPort != 0 && (c.StatusPort < 1 || c.StatusPort > 65535) {
		return fmt.Errorf("status_port must be between 1 and 65535, got %d", c.StatusPort)
	}

	return nil
}
