package domain

import "errors"

// Domain errors represent error conditions in the ledgerflow pipeline.
// They are returned by the public API and can be checked with errors.Is.
var (
	// ErrSchema is returned when a required field is absent from every
	// record of a dataset. Fatal: the workflow aborts before any
	// submission is attempted.
	ErrSchema = errors.New("ledgerflow: dataset does not match required schema")

	// ErrUnsupportedReduction is returned for an unknown aggregation
	// method. Fatal configuration error.
	ErrUnsupportedReduction = errors.New("ledgerflow: unsupported reduction method")

	// ErrInvalidBatchSize is returned for a non-positive batch size.
	ErrInvalidBatchSize = errors.New("ledgerflow: batch size must be positive")

	// ErrLedgerUnavailable is returned when the ledger client cannot be
	// reached at all. It aborts the batch it occurs in; sibling batches
	// are unaffected.
	ErrLedgerUnavailable = errors.New("ledgerflow: ledger unavailable")

	// ErrConfirmationTimeout is returned when a submitted operation is
	// not confirmed within the configured timeout. Recorded as a failed
	// outcome for that record only.
	ErrConfirmationTimeout = errors.New("ledgerflow: confirmation timed out")

	// ErrUnknownDomain is returned when a workflow is requested for a
	// domain the registry does not define.
	ErrUnknownDomain = errors.New("ledgerflow: unknown domain")
)
