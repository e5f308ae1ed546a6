package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config but uses strings for durations to make TOML
// friendly.
type fileConfig struct {
	ServiceURL     string `toml:"service_url"`
	AuthKey        string `toml:"api_key"`
	Account        string `toml:"account"`
	LogsDir        string `toml:"logs_dir"`
	LogFile        string `toml:"log_file"`
	StateDir       string `toml:"state_dir"`
	MaxConcurrent  int    `toml:"max_concurrent"`
	BatchSize      int    `toml:"batch_size"`
	ConfirmTimeout string `toml:"confirm_timeout"`
	ReceiptPoll    string `toml:"receipt_poll"`
	HTTPTimeout    string `toml:"http_timeout"`
	RangePolicy    string `toml:"range_policy"`
	DryRun         *bool  `toml:"dry_run"`
	Debounce       string `toml:"debounce"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path,
// ~/.ledgerflow/config.toml, if the home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".ledgerflow", "config.toml")
	}
	return ""
}

// FileExists reports whether path names an existing file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ApplyFileConfig applies configuration from a file to the Config
// struct. It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc fileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("service-url", fc.ServiceURL, &cfg.ServiceURL)
	s.setString("auth-key", fc.AuthKey, &cfg.AuthKey)
	s.setString("account", fc.Account, &cfg.Account)
	s.setString("logs-dir", fc.LogsDir, &cfg.LogsDir)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("range-policy", fc.RangePolicy, &cfg.RangePolicy)

	s.setInt("max-concurrent", fc.MaxConcurrent, &cfg.MaxConcurrent)
	s.setInt("batch-size", fc.BatchSize, &cfg.BatchSize)

	if err := s.setDuration("confirm-timeout", fc.ConfirmTimeout, &cfg.ConfirmTimeout); err != nil {
		return err
	}
	if err := s.setDuration("receipt-poll", fc.ReceiptPoll, &cfg.ReceiptPoll); err != nil {
		return err
	}
	if err := s.setDuration("http-timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setBool("dry-run", fc.DryRun, &cfg.DryRun)

	return nil
}
