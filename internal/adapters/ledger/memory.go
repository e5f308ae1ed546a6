package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ArthurBonsu/ledgerflow/internal/domain"
)

// MemoryLedger is an in-process LedgerClient that confirms every
// submission unless told otherwise. It backs --dry-run and tests.
type MemoryLedger struct {
	// FailSubmit, when set, is consulted per submission; a non-nil
	// return fails that record's Submit call.
	FailSubmit func(operation string, args []string) error

	// ConfirmLatency delays each confirmation, simulating the
	// ledger's round-trip.
	ConfirmLatency time.Duration

	// Unavailable makes every Submit fail with
	// domain.ErrLedgerUnavailable.
	Unavailable bool

	mu      sync.Mutex
	pending map[domain.TxHandle]domain.Confirmation
	block   uint64
	ops     []SubmittedOp
}

// SubmittedOp records one accepted submission for inspection.
type SubmittedOp struct {
	Operation string
	Args      []string
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{pending: make(map[domain.TxHandle]domain.Confirmation)}
}

// Submit accepts the operation and returns a handle for later
// confirmation.
func (m *MemoryLedger) Submit(ctx context.Context, operation string, args []string) (domain.TxHandle, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Unavailable {
		return "", fmt.Errorf("%w: memory ledger marked unavailable", domain.ErrLedgerUnavailable)
	}
	if m.FailSubmit != nil {
		if err := m.FailSubmit(operation, args); err != nil {
			return "", err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.block++
	handle := domain.TxHandle(uuid.NewString())
	m.pending[handle] = domain.Confirmation{
		TxID:         "0x" + uuid.NewString(),
		ResourceCost: 21000 + uint64(len(args))*1000,
		BlockMarker:  m.block,
	}
	m.ops = append(m.ops, SubmittedOp{Operation: operation, Args: args})
	return handle, nil
}

// AwaitConfirmation redeems a handle issued by Submit.
func (m *MemoryLedger) AwaitConfirmation(ctx context.Context, handle domain.TxHandle) (domain.Confirmation, error) {
	if m.ConfirmLatency > 0 {
		select {
		case <-ctx.Done():
			return domain.Confirmation{}, ctx.Err()
		case <-time.After(m.ConfirmLatency):
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	conf, ok := m.pending[handle]
	if !ok {
		return domain.Confirmation{}, fmt.Errorf("unknown transaction handle %q", handle)
	}
	delete(m.pending, handle)
	return conf, nil
}

// Operations returns every accepted submission in order.
func (m *MemoryLedger) Operations() []SubmittedOp {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SubmittedOp, len(m.ops))
	copy(out, m.ops)
	return out
}
