package ports

import (
	"context"

	"github.com/ArthurBonsu/ledgerflow/internal/domain"
)

// LedgerClient is the capability handle for the external transactional
// ledger. It is shared, read-only configuration from the caller's
// perspective; the core never mutates it.
//
// Both methods may block on network round-trips and may fail at any
// call. A client that cannot reach the ledger at all reports
// domain.ErrLedgerUnavailable (wrapped), which aborts the batch it
// occurs in.
type LedgerClient interface {
	// Submit issues one write operation and returns an opaque handle
	// to the in-flight transaction.
	Submit(ctx context.Context, operation string, args []string) (domain.TxHandle, error)

	// AwaitConfirmation blocks until the ledger durably accepts the
	// operation identified by handle, or ctx expires.
	AwaitConfirmation(ctx context.Context, handle domain.TxHandle) (domain.Confirmation, error)
}
