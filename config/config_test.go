package config

import (
	"strings"
	"testing"
	"time"
)

const validYAML = `
batch_id: "3954555"
max_assignments: 10
qualification_type_id: QUAL1
endpoint_url: https://mturk-requester-sandbox.us-east-1.amazonaws.com
access_key_id: AKIAEXAMPLE
secret_access_key: secretexample
`

func TestParse_MinimalConfig(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// check defaults applied
	if cfg.PollInterval.Duration() != 2*time.Minute {
		t.Errorf("PollInterval = %v, want 2m", cfg.PollInterval.Duration())
	}
	if cfg.Region != "us-east-1" {
		t.Errorf("Region = %q, want us-east-1", cfg.Region)
	}
	if cfg.DisqualifyValue != 1 {
		t.Errorf("DisqualifyValue = %d, want 1", cfg.DisqualifyValue)
	}
	if cfg.StatusPort != 0 {
		t.Errorf("StatusPort = %d, want 0", cfg.StatusPort)
	}
	if cfg.DryRun {
		t.Error("DryRun = true, want false")
	}
}

func TestParse_FullConfig(t *testing.T) {
	yaml := `
batch_id: "3954555"
max_assignments: 25
qualification_type_id: QUAL1
poll_interval: 45s
region: us-west-2
endpoint_url: https://mturk-requester.us-east-1.amazonaws.com
access_key_id: AKIAEXAMPLE
secret_access_key: secretexample
disqualify_value: 7
status_port: 9090
dry_run: true
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.BatchID != "3954555" {
		t.Errorf("BatchID = %q, want %q", cfg.BatchID, "3954555")
	}
	if cfg.MaxAssignments != 25 {
		t.Errorf("MaxAssignments = %d, want 25", cfg.MaxAssignments)
	}
	if cfg.PollInterval.Duration() != 45*time.Second {
		t.Errorf("PollInterval = %v, want 45s", cfg.PollInterval.Duration())
	}
	if cfg.Region != "us-west-2" {
		t.Errorf("Region = %q, want us-west-2", cfg.Region)
	}
	if cfg.DisqualifyValue != 7 {
		t.Errorf("DisqualifyValue = %d, want 7", cfg.DisqualifyValue)
	}
	if cfg.StatusPort != 9090 {
		t.Errorf("StatusPort = %d, want 9090", cfg.StatusPort)
	}
	if !cfg.DryRun {
		t.Error("DryRun = false, want true")
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_ACCESS_KEY", "AKIAFROMENV")
	t.Setenv("TEST_SECRET_KEY", "secretfromenv")

	yaml := `
batch_id: "3954555"
max_assignments: 10
qualification_type_id: QUAL1
endpoint_url: ${TEST_ENDPOINT:-https://mturk-requester-sandbox.us-east-1.amazonaws.com}
access_key_id: ${TEST_ACCESS_KEY}
secret_access_key: ${TEST_SECRET_KEY}
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.AccessKeyID != "AKIAFROMENV" {
		t.Errorf("AccessKeyID = %q, want %q", cfg.AccessKeyID, "AKIAFROMENV")
	}
	if cfg.SecretAccessKey != "secretfromenv" {
		t.Errorf("SecretAccessKey = %q, want %q", cfg.SecretAccessKey, "secretfromenv")
	}
	if !strings.Contains(cfg.EndpointURL, "sandbox") {
		t.Errorf("EndpointURL = %q, want the default sandbox URL", cfg.EndpointURL)
	}
}

func TestParse_MissingEnvVar(t *testing.T) {
	yaml := `
batch_id: "3954555"
max_assignments: 10
qualification_type_id: QUAL1
endpoint_url: https://mturk-requester-sandbox.us-east-1.amazonaws.com
access_key_id: ${TURKGATE_TEST_UNSET_VAR}
secret_access_key: secretexample
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Parse() error = nil, want error for unset env var")
	}
	if !strings.Contains(err.Error(), "TURKGATE_TEST_UNSET_VAR") {
		t.Errorf("Parse() error = %q, want mention of the variable name", err.Error())
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing batch_id",
			yaml: `
max_assignments: 10
qualification_type_id: QUAL1
endpoint_url: https://example.com
access_key_id: k
secret_access_key: s
`,
			wantErr: "batch_id",
		},
		{
			name: "missing max_assignments",
			yaml: `
batch_id: "1"
qualification_type_id: QUAL1
endpoint_url: https://example.com
access_key_id: k
secret_access_key: s
`,
			wantErr: "max_assignments",
		},
		{
			name: "negative max_assignments",
			yaml: `
batch_id: "1"
max_assignments: -3
qualification_type_id: QUAL1
endpoint_url: https://example.com
access_key_id: k
secret_access_key: s
`,
			wantErr: "max_assignments",
		},
		{
			name: "missing qualification_type_id",
			yaml: `
batch_id: "1"
max_assignments: 10
endpoint_url: https://example.com
access_key_id: k
secret_access_key: s
`,
			wantErr: "qualification_type_id",
		},
		{
			name: "missing endpoint_url",
			yaml: `
batch_id: "1"
max_assignments: 10
qualification_type_id: QUAL1
access_key_id: k
secret_access_key: s
`,
			wantErr: "endpoint_url",
		},
		{
			name: "bad endpoint scheme",
			yaml: `
batch_id: "1"
max_assignments: 10
qualification_type_id: QUAL1
endpoint_url: ftp://example.com
access_key_id: k
secret_access_key: s
`,
			wantErr: "scheme",
		},
		{
			name: "missing credentials",
			yaml: `
batch_id: "1"
max_assignments: 10
qualification_type_id: QUAL1
endpoint_url: https://example.com
`,
			wantErr: "access_key_id",
		},
		{
			name: "poll interval too short",
			yaml: `
batch_id: "1"
max_assignments: 10
qualification_type_id: QUAL1
poll_interval: 100ms
endpoint_url: https://example.com
access_key_id: k
secret_access_key: s
`,
			wantErr: "poll_interval",
		},
		{
			name: "status port out of range",
			yaml: `
batch_id: "1"
max_assignments: 10
qualification_type_id: QUAL1
endpoint_url: https://example.com
access_key_id: k
secret_access_key: s
status_port: 70000
`,
			wantErr: "status_port",
		},
		{
			name:    "invalid duration string",
			yaml:    `poll_interval: soon`,
			wantErr: "invalid duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/turkgate.yaml")
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Load() error = %q, want read failure", err.Error())
	}
}
