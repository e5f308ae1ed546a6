package config

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (LEDGERFLOW_*). It respects flags that have been explicitly set
// (changed map). Returns an error if any variable has an invalid
// format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("service-url", os.Getenv("LEDGERFLOW_SERVICE_URL"), &cfg.ServiceURL)
	s.setString("auth-key", os.Getenv("LEDGERFLOW_AUTH_KEY"), &cfg.AuthKey)
	s.setString("account", os.Getenv("LEDGERFLOW_ACCOUNT"), &cfg.Account)
	s.setString("logs-dir", os.Getenv("LEDGERFLOW_LOGS_DIR"), &cfg.LogsDir)
	s.setString("log-file", os.Getenv("LEDGERFLOW_LOG_FILE"), &cfg.LogFile)
	s.setString("state-dir", os.Getenv("LEDGERFLOW_STATE_DIR"), &cfg.StateDir)
	s.setString("range-policy", os.Getenv("LEDGERFLOW_RANGE_POLICY"), &cfg.RangePolicy)

	if err := s.setIntFromString("max-concurrent", os.Getenv("LEDGERFLOW_MAX_CONCURRENT"), &cfg.MaxConcurrent); err != nil {
		return err
	}
	if err := s.setIntFromString("batch-size", os.Getenv("LEDGERFLOW_BATCH_SIZE"), &cfg.BatchSize); err != nil {
		return err
	}

	if err := s.setDuration("confirm-timeout", os.Getenv("LEDGERFLOW_CONFIRM_TIMEOUT"), &cfg.ConfirmTimeout); err != nil {
		return err
	}
	if err := s.setDuration("receipt-poll", os.Getenv("LEDGERFLOW_RECEIPT_POLL"), &cfg.ReceiptPoll); err != nil {
		return err
	}
	if err := s.setDuration("http-timeout", os.Getenv("LEDGERFLOW_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("LEDGERFLOW_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("dry-run", os.Getenv("LEDGERFLOW_DRY_RUN"), &cfg.DryRun)

	return nil
}
