package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArthurBonsu/ledgerflow/internal/domain"
)

func TestMemoryLedgerConfirmsSubmissions(t *testing.T) {
	m := NewMemoryLedger()
	ctx := context.Background()

	handle, err := m.Submit(ctx, "registerCity", []string{"Melbourne", "01/01/2023"})
	require.NoError(t, err)
	require.NotEmpty(t, handle)

	conf, err := m.AwaitConfirmation(ctx, handle)
	require.NoError(t, err)
	assert.NotEmpty(t, conf.TxID)
	assert.NotZero(t, conf.ResourceCost)
	assert.Equal(t, uint64(1), conf.BlockMarker)

	ops := m.Operations()
	require.Len(t, ops, 1)
	assert.Equal(t, "registerCity", ops[0].Operation)
}

func TestMemoryLedgerHandleIsSingleUse(t *testing.T) {
	m := NewMemoryLedger()
	ctx := context.Background()

	handle, err := m.Submit(ctx, "registerCity", nil)
	require.NoError(t, err)

	_, err = m.AwaitConfirmation(ctx, handle)
	require.NoError(t, err)

	_, err = m.AwaitConfirmation(ctx, handle)
	assert.Error(t, err)
}

func TestMemoryLedgerFailures(t *testing.T) {
	m := NewMemoryLedger()
	m.FailSubmit = func(op string, args []string) error {
		if len(args) > 0 && args[0] == "bad" {
			return errors.New("contract reverted")
		}
		return nil
	}

	_, err := m.Submit(context.Background(), "registerCity", []string{"bad"})
	assert.Error(t, err)

	_, err = m.Submit(context.Background(), "registerCity", []string{"good"})
	assert.NoError(t, err)
}

func TestMemoryLedgerUnavailable(t *testing.T) {
	m := NewMemoryLedger()
	m.Unavailable = true

	_, err := m.Submit(context.Background(), "registerCity", nil)
	assert.True(t, errors.Is(err, domain.ErrLedgerUnavailable))
}
