package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/ArthurBonsu/ledgerflow/internal/domain"
	"github.com/ArthurBonsu/ledgerflow/internal/ports"
	"github.com/ArthurBonsu/ledgerflow/pkg/log"
)

// DefaultConfirmTimeout bounds the await-confirmation step when the
// caller does not configure one.
const DefaultConfirmTimeout = 60 * time.Second

// ArgsFunc maps an aggregated record to the argument list of the
// domain's ledger write operation.
type ArgsFunc func(domain.AggregatedRecord) []string

// BatchResult holds the outcomes of one batch. Err is set only when the
// batch itself was aborted (ledger unavailable); per-record failures
// appear as failed outcomes, not as Err.
type BatchResult struct {
	Batch    domain.Batch
	Outcomes []domain.SubmissionOutcome
	Err      error
}

// Executor submits batches of aggregated records to the ledger under a
// process-global concurrency bound.
type Executor struct {
	ledger         ports.LedgerClient
	audit          ports.AuditSink
	logger         log.Logger
	sem            *semaphore.Weighted
	confirmTimeout time.Duration
}

// NewExecutor creates an executor. maxInFlight caps simultaneous ledger
// calls across all batches; values below 1 are raised to 1.
func NewExecutor(ledger ports.LedgerClient, audit ports.AuditSink, logger log.Logger, maxInFlight int64, confirmTimeout time.Duration) *Executor {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	if confirmTimeout <= 0 {
		confirmTimeout = DefaultConfirmTimeout
	}
	return &Executor{
		ledger:         ledger,
		audit:          audit,
		logger:         logger,
		sem:            semaphore.NewWeighted(maxInFlight),
		confirmTimeout: confirmTimeout,
	}
}

// Execute submits every record of every batch and returns one result per
// batch, in batch order. Batches run concurrently; a failure in one
// record or one batch never cancels sibling submissions. No submission
// is retried.
func (e *Executor) Execute(ctx context.Context, domainName, operation string, batches []domain.Batch, args ArgsFunc) []BatchResult {
	results := make([]BatchResult, len(batches))

	// errgroup without WithContext: a batch error must not cancel
	// sibling batches.
	var g errgroup.Group
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			outcomes, err := e.executeBatch(ctx, domainName, operation, batch, args)
			results[i] = BatchResult{Batch: batch, Outcomes: outcomes, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// executeBatch submits the batch's records serially within the batch,
// each gated by the shared semaphore.
func (e *Executor) executeBatch(ctx context.Context, domainName, operation string, batch domain.Batch, args ArgsFunc) ([]domain.SubmissionOutcome, error) {
	outcomes := make([]domain.SubmissionOutcome, 0, batch.Size())

	for _, rec := range batch.Records {
		outcome := e.submitRecord(ctx, operation, rec, args(rec))
		outcomes = append(outcomes, outcome)
		e.audit.Append(ctx, domainName, domain.NewAuditEntry(domainName, outcome, time.Now().UTC()))

		if outcome.Err != nil && errors.Is(outcome.Err, domain.ErrLedgerUnavailable) {
			e.logger.Error("batch aborted",
				log.String("domain", domainName),
				log.Int("batch", batch.Number),
				log.Int("submitted", len(outcomes)),
				log.Err(outcome.Err),
			)
			return outcomes, fmt.Errorf("batch %d: %w", batch.Number, outcome.Err)
		}
	}
	return outcomes, nil
}

// submitRecord runs one record through Pending -> Submitted ->
// {Confirmed | Failed}. The semaphore is held from before Submit until
// the outcome is determined, bounding outstanding network operations.
func (e *Executor) submitRecord(ctx context.Context, operation string, rec domain.AggregatedRecord, args []string) domain.SubmissionOutcome {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return domain.FailedOutcome(rec, err)
	}
	defer e.sem.Release(1)

	handle, err := e.ledger.Submit(ctx, operation, args)
	if err != nil {
		e.logger.Error("submit failed",
			log.String("operation", operation),
			log.String("entity", rec.Entity),
			log.Err(err),
		)
		return domain.FailedOutcome(rec, err)
	}

	confirmCtx, cancel := context.WithTimeout(ctx, e.confirmTimeout)
	defer cancel()

	conf, err := e.ledger.AwaitConfirmation(confirmCtx, handle)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %s after %s", domain.ErrConfirmationTimeout, handle, e.confirmTimeout)
		}
		e.logger.Error("confirmation failed",
			log.String("operation", operation),
			log.String("entity", rec.Entity),
			log.Err(err),
		)
		return domain.FailedOutcome(rec, err)
	}

	e.logger.Debug("record confirmed",
		log.String("operation", operation),
		log.String("entity", rec.Entity),
		log.String("tx", conf.TxID),
		log.Uint64("gas", conf.ResourceCost),
	)
	return domain.ConfirmedOutcome(rec, conf)
}

// Flatten collects all per-record outcomes across batch results,
// preserving batch order.
func Flatten(results []BatchResult) []domain.SubmissionOutcome {
	var all []domain.SubmissionOutcome
	for _, r := range results {
		all = append(all, r.Outcomes...)
	}
	return all
}
