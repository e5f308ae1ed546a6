package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ArthurBonsu/ledgerflow/internal/pipeline"
)

// DefaultServiceURL points at a local ledger gateway out of the box.
const DefaultServiceURL = "http://127.0.0.1:8545"

// Config holds the runtime configuration for ledgerflow.
type Config struct {
	// ServiceURL is the base URL of the ledger gateway.
	ServiceURL string

	// AuthKey authenticates against the gateway.
	AuthKey string

	// Account is the ledger account submissions are charged to.
	Account string

	// LogsDir is where per-domain audit logs are written.
	LogsDir string

	// LogFile, when set, mirrors diagnostic log output to a JSON file
	// in addition to the console.
	LogFile string

	// StateDir holds watch-mode run state. Defaults to LogsDir.
	StateDir string

	// MaxConcurrent caps simultaneous in-flight submissions.
	MaxConcurrent int

	// BatchSize bounds each submission batch.
	BatchSize int

	// ConfirmTimeout bounds each record's await-confirmation step.
	ConfirmTimeout time.Duration

	// ReceiptPoll is the delay between receipt polls.
	ReceiptPoll time.Duration

	// HTTPTimeout bounds each individual gateway request.
	HTTPTimeout time.Duration

	// RangePolicy overrides domain range handling: "drop" or "clamp".
	// Empty keeps each domain's default.
	RangePolicy string

	// DryRun submits against an in-memory ledger instead of the
	// gateway.
	DryRun bool

	// Debounce is the watch-mode delay after a file event before the
	// file is processed, letting writers finish.
	Debounce time.Duration
}

// DefaultConfig returns a Config with default values: five concurrent
// submissions, batches of one hundred records.
func DefaultConfig() Config {
	return Config{
		ServiceURL:     DefaultServiceURL,
		AuthKey:        os.Getenv("LEDGERFLOW_AUTH_KEY"),
		LogsDir:        "logs",
		MaxConcurrent:  5,
		BatchSize:      100,
		ConfirmTimeout: 60 * time.Second,
		ReceiptPoll:    500 * time.Millisecond,
		HTTPTimeout:    30 * time.Second,
		Debounce:       200 * time.Millisecond,
	}
}

// Validate checks the configuration for errors and sets derived
// defaults.
func (c *Config) Validate() error {
	if c.ServiceURL == "" {
		c.ServiceURL = DefaultServiceURL
	}
	// Ensure no trailing slash
	if len(c.ServiceURL) > 0 && c.ServiceURL[len(c.ServiceURL)-1] == '/' {
		c.ServiceURL = c.ServiceURL[:len(c.ServiceURL)-1]
	}

	if c.LogsDir == "" {
		return fmt.Errorf("logs-dir is required")
	}
	if c.StateDir == "" {
		c.StateDir = c.LogsDir
	}

	if c.MaxConcurrent <= 0 {
		return fmt.Errorf("max-concurrent must be positive")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be positive")
	}
	if c.ConfirmTimeout <= 0 {
		return fmt.Errorf("confirm-timeout must be positive")
	}

	switch pipeline.RangePolicy(c.RangePolicy) {
	case "", pipeline.RangeDrop, pipeline.RangeClamp:
	default:
		return fmt.Errorf("range-policy must be %q or %q", pipeline.RangeDrop, pipeline.RangeClamp)
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't
// been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not
// changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag
// not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if
// valid. Used for environment variables.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
