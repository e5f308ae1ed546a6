package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ArthurBonsu/ledgerflow/internal/domain"
	"github.com/ArthurBonsu/ledgerflow/internal/engine"
	"github.com/ArthurBonsu/ledgerflow/internal/pipeline"
	"github.com/ArthurBonsu/ledgerflow/internal/ports"
	"github.com/ArthurBonsu/ledgerflow/internal/registry"
	"github.com/ArthurBonsu/ledgerflow/pkg/log"
)

// Options configures a coordinator run.
type Options struct {
	// MaxConcurrent caps simultaneous in-flight ledger submissions.
	MaxConcurrent int64

	// BatchSize bounds each submission batch.
	BatchSize int

	// ConfirmTimeout bounds each record's await-confirmation step.
	ConfirmTimeout time.Duration

	// RangePolicy overrides the domain's out-of-range handling when
	// non-empty.
	RangePolicy pipeline.RangePolicy
}

// Coordinator wires the pipeline stages together for a domain and a
// dataset.
type Coordinator struct {
	loader ports.DatasetLoader
	ledger ports.LedgerClient
	audit  ports.AuditSink
	logger log.Logger
	opts   Options
}

// NewCoordinator creates a coordinator over the given collaborators.
func NewCoordinator(loader ports.DatasetLoader, ledger ports.LedgerClient, audit ports.AuditSink, logger log.Logger, opts Options) *Coordinator {
	return &Coordinator{
		loader: loader,
		ledger: ledger,
		audit:  audit,
		logger: logger,
		opts:   opts,
	}
}

// Run executes the full pipeline for one domain and one dataset source.
//
// Fatal errors (unknown domain, schema mismatch, bad aggregation config,
// bad batch size, dataset unreadable, or a ledger that was unavailable
// before anything was confirmed) are returned alongside the partial
// summary. Per-record failures and partially aborted batches do not
// fail the run; they are reported in the summary.
func (c *Coordinator) Run(ctx context.Context, domainName, source string) (Summary, error) {
	summary := Summary{
		RunID:  uuid.NewString(),
		Domain: domainName,
		Source: source,
	}

	def, err := registry.Lookup(domainName)
	if err != nil {
		return summary, err
	}

	table, err := c.loader.Load(ctx, source)
	if err != nil {
		return summary, fmt.Errorf("load dataset: %w", err)
	}

	rules := def.Rules
	if c.opts.RangePolicy != "" {
		rules.OnOutOfRange = c.opts.RangePolicy
	}
	dataset, report, err := pipeline.NewValidator(rules).Validate(table)
	summary.Validation = report
	if err != nil {
		return summary, err
	}
	for _, msg := range report.Messages {
		c.logger.Warn("validation", log.String("domain", domainName), log.String("detail", msg))
	}

	agg, err := pipeline.NewAggregator(def.GroupBy, def.Method)
	if err != nil {
		return summary, err
	}
	aggregated := agg.Aggregate(dataset)

	batches, err := domain.Partition(aggregated, c.opts.BatchSize)
	if err != nil {
		return summary, err
	}

	c.logger.Info("starting submission",
		log.String("domain", domainName),
		log.String("run_id", summary.RunID),
		log.Int("records", len(aggregated)),
		log.Int("batches", len(batches)),
		log.Int64("max_concurrent", c.opts.MaxConcurrent),
	)

	executor := engine.NewExecutor(c.ledger, c.audit, c.logger, c.opts.MaxConcurrent, c.opts.ConfirmTimeout)
	results := executor.Execute(ctx, domainName, def.Operation, batches, def.Args)

	summarize(&summary, results)

	c.logger.Info("run complete",
		log.String("domain", domainName),
		log.String("run_id", summary.RunID),
		log.Int("attempted", summary.Attempted),
		log.Int("succeeded", summary.Succeeded),
		log.Int("failed", summary.Failed),
		log.Float64("total_value", summary.TotalValue),
	)

	if err := ledgerDown(summary, results); err != nil {
		return summary, err
	}
	return summary, nil
}

// ledgerDown reports the ledger as a fatal failure when nothing was
// confirmed and every batch aborted for unavailability, i.e. the client
// was down for the whole domain rather than flaky per record.
func ledgerDown(summary Summary, results []engine.BatchResult) error {
	if summary.Succeeded > 0 || len(results) == 0 {
		return nil
	}
	for _, res := range results {
		if res.Err == nil || !errors.Is(res.Err, domain.ErrLedgerUnavailable) {
			return nil
		}
	}
	return fmt.Errorf("%w: all %d batches aborted", domain.ErrLedgerUnavailable, len(results))
}
