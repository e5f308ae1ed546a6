// Package ledgerflow provides a validated batch submission engine for
// tabular domain records.
//
// Datasets are validated against per-domain schema rules, aggregated by
// a grouping key, partitioned into batches, and submitted record by
// record to an external transactional ledger under a global concurrency
// bound, with every attempt recorded in an append-only audit log.
//
// Example usage:
//
//	cfg := ledgerflow.DefaultConfig()
//	cfg.ServiceURL = "https://gateway.example.com"
//	cfg.AuthKey = "your-api-key"
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	summary, err := ledgerflow.Run(ctx, cfg, "emissions", "melbourne.csv", logger)
package ledgerflow

import (
	"context"
	"net/http"

	"github.com/ArthurBonsu/ledgerflow/internal/adapters/fs"
	ledgeradapter "github.com/ArthurBonsu/ledgerflow/internal/adapters/ledger"
	"github.com/ArthurBonsu/ledgerflow/internal/config"
	"github.com/ArthurBonsu/ledgerflow/internal/pipeline"
	"github.com/ArthurBonsu/ledgerflow/internal/ports"
	"github.com/ArthurBonsu/ledgerflow/internal/registry"
	"github.com/ArthurBonsu/ledgerflow/internal/watch"
	"github.com/ArthurBonsu/ledgerflow/internal/workflow"
	"github.com/ArthurBonsu/ledgerflow/pkg/log"
)

// Config holds the runtime configuration for ledgerflow.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = config.Config

// Summary is the per-run result of a workflow.
type Summary = workflow.Summary

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return config.DefaultConfig()
}

// Domains returns the names of the registered data domains.
func Domains() []string {
	return registry.Names()
}

// Run executes the full workflow for one domain and one dataset file.
func Run(ctx context.Context, cfg Config, domainName, source string, logger log.Logger) (Summary, error) {
	coord, audit, err := buildCoordinator(cfg, logger)
	if err != nil {
		return Summary{}, err
	}
	defer audit.Close()

	return coord.Run(ctx, domainName, source)
}

// Watch processes every CSV in ingestDir for the domain, then tails the
// directory for new files until ctx is canceled.
func Watch(ctx context.Context, cfg Config, domainName, ingestDir string, logger log.Logger) error {
	coord, audit, err := buildCoordinator(cfg, logger)
	if err != nil {
		return err
	}
	defer audit.Close()

	states := fs.NewRunStateRepository(cfg.StateDir)
	watcher := watch.New(ingestDir, cfg.Debounce, states, logger, func(ctx context.Context, path string) error {
		_, err := coord.Run(ctx, domainName, path)
		return err
	})
	return watcher.Run(ctx)
}

// buildCoordinator assembles the adapters behind a coordinator.
func buildCoordinator(cfg Config, logger log.Logger) (*workflow.Coordinator, ports.AuditSink, error) {
	audit, err := fs.NewAuditLog(cfg.LogsDir, auditFileNames(), logger)
	if err != nil {
		return nil, nil, err
	}

	var client ports.LedgerClient
	if cfg.DryRun {
		client = ledgeradapter.NewMemoryLedger()
	} else {
		client = ledgeradapter.NewHTTPLedger(ledgeradapter.Options{
			ServiceURL:   cfg.ServiceURL,
			AuthKey:      cfg.AuthKey,
			Account:      cfg.Account,
			PollInterval: cfg.ReceiptPoll,
		}, &http.Client{Timeout: cfg.HTTPTimeout}, logger)
	}

	coord := workflow.NewCoordinator(fs.NewCSVLoader(), client, audit, logger, workflow.Options{
		MaxConcurrent:  int64(cfg.MaxConcurrent),
		BatchSize:      cfg.BatchSize,
		ConfirmTimeout: cfg.ConfirmTimeout,
		RangePolicy:    pipeline.RangePolicy(cfg.RangePolicy),
	})
	return coord, audit, nil
}

// auditFileNames maps each domain to its audit log filename.
func auditFileNames() map[string]string {
	names := make(map[string]string)
	for _, name := range registry.Names() {
		if def, err := registry.Lookup(name); err == nil {
			names[name] = def.LogFile
		}
	}
	return names
}
