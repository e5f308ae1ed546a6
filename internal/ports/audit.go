package ports

import (
	"context"

	"github.com/ArthurBonsu/ledgerflow/internal/domain"
)

// AuditSink appends submission audit entries to a durable, append-only
// per-domain log.
//
// Append must be safe under concurrent invocation from multiple in-flight
// submissions and must never lose entries. Implementations must not
// surface append failures to the submitter; failures go to their own
// diagnostic channel instead.
type AuditSink interface {
	// Append durably records one entry in the given domain's log.
	Append(ctx context.Context, domainName string, entry domain.AuditEntry)

	// Entries reads back all entries recorded for the domain. An
	// absent or corrupt log reads as empty.
	Entries(domainName string) ([]domain.AuditEntry, error)

	// Close flushes pending appends and releases resources.
	Close() error
}
