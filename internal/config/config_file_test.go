package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true

	tests := []struct {
		name        string
		fileConfig  fileConfig
		changed     map[string]bool
		initial     Config
		expected    Config
		expectError bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: fileConfig{
				ServiceURL:     "https://gateway.example.com",
				AuthKey:        "secret",
				Account:        "0xabc",
				LogsDir:        "/var/log/ledgerflow",
				MaxConcurrent:  3,
				BatchSize:      50,
				ConfirmTimeout: "2m",
				RangePolicy:    "clamp",
				DryRun:         &trueVal,
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				ServiceURL:     "https://gateway.example.com",
				AuthKey:        "secret",
				Account:        "0xabc",
				LogsDir:        "/var/log/ledgerflow",
				MaxConcurrent:  3,
				BatchSize:      50,
				ConfirmTimeout: 2 * time.Minute,
				RangePolicy:    "clamp",
				DryRun:         true,
			},
		},
		{
			name: "respects changed flags",
			fileConfig: fileConfig{
				ServiceURL: "https://file.example.com",
				LogsDir:    "/file/logs",
			},
			changed: map[string]bool{"service-url": true},
			initial: Config{
				ServiceURL: "https://flag.example.com",
			},
			expected: Config{
				ServiceURL: "https://flag.example.com", // unchanged because flag was set
				LogsDir:    "/file/logs",
			},
		},
		{
			name: "ignores zero and empty values",
			fileConfig: fileConfig{
				MaxConcurrent: 0,
				BatchSize:     -5,
				ServiceURL:    "",
			},
			changed: map[string]bool{},
			initial: Config{
				ServiceURL:    "https://keep.example.com",
				MaxConcurrent: 5,
				BatchSize:     100,
			},
			expected: Config{
				ServiceURL:    "https://keep.example.com",
				MaxConcurrent: 5,
				BatchSize:     100,
			},
		},
		{
			name: "invalid duration returns error",
			fileConfig: fileConfig{
				ConfirmTimeout: "not-a-duration",
			},
			changed:     map[string]bool{},
			initial:     Config{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Fatalf("expected %+v, got %+v", tt.expected, cfg)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
service_url = "https://gateway.example.com"
api_key = "secret"
max_concurrent = 3
batch_size = 25
confirm_timeout = "90s"
range_policy = "drop"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig returned error: %v", err)
	}
	if fc.ServiceURL != "https://gateway.example.com" {
		t.Errorf("unexpected service url %q", fc.ServiceURL)
	}
	if fc.AuthKey != "secret" {
		t.Errorf("unexpected auth key %q", fc.AuthKey)
	}
	if fc.MaxConcurrent != 3 || fc.BatchSize != 25 {
		t.Errorf("unexpected limits %d/%d", fc.MaxConcurrent, fc.BatchSize)
	}
	if fc.ConfirmTimeout != "90s" {
		t.Errorf("unexpected timeout %q", fc.ConfirmTimeout)
	}
}

func TestLoadFileConfigMissingFile(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("LEDGERFLOW_SERVICE_URL", "https://env.example.com")
	t.Setenv("LEDGERFLOW_MAX_CONCURRENT", "7")
	t.Setenv("LEDGERFLOW_CONFIRM_TIMEOUT", "45s")
	t.Setenv("LEDGERFLOW_DRY_RUN", "true")

	cfg := Config{}
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig returned error: %v", err)
	}
	if cfg.ServiceURL != "https://env.example.com" {
		t.Errorf("unexpected service url %q", cfg.ServiceURL)
	}
	if cfg.MaxConcurrent != 7 {
		t.Errorf("unexpected max concurrent %d", cfg.MaxConcurrent)
	}
	if cfg.ConfirmTimeout != 45*time.Second {
		t.Errorf("unexpected confirm timeout %s", cfg.ConfirmTimeout)
	}
	if !cfg.DryRun {
		t.Error("expected dry run enabled")
	}

	// Flag precedence wins over environment.
	cfg = Config{MaxConcurrent: 2}
	if err := ApplyEnvConfig(&cfg, map[string]bool{"max-concurrent": true}); err != nil {
		t.Fatalf("ApplyEnvConfig returned error: %v", err)
	}
	if cfg.MaxConcurrent != 2 {
		t.Errorf("expected flag value preserved, got %d", cfg.MaxConcurrent)
	}
}
