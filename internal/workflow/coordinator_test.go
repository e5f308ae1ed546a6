package workflow

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArthurBonsu/ledgerflow/internal/adapters/fs"
	ledgeradapter "github.com/ArthurBonsu/ledgerflow/internal/adapters/ledger"
	"github.com/ArthurBonsu/ledgerflow/internal/domain"
	"github.com/ArthurBonsu/ledgerflow/internal/registry"
	"github.com/ArthurBonsu/ledgerflow/pkg/log"
)

// tableLoader serves fixed tables keyed by source name.
type tableLoader map[string]domain.Table

func (l tableLoader) Load(ctx context.Context, source string) (domain.Table, error) {
	table, ok := l[source]
	if !ok {
		return domain.Table{}, fmt.Errorf("no such dataset %q", source)
	}
	return table, nil
}

func defaultOptions() Options {
	return Options{
		MaxConcurrent:  5,
		BatchSize:      100,
		ConfirmTimeout: time.Second,
	}
}

func newTestAudit(t *testing.T) *fs.AuditLog {
	t.Helper()
	audit, err := fs.NewAuditLog(t.TempDir(), nil, log.NewNoopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { audit.Close() })
	return audit
}

func TestCoordinatorMelbourneScenario(t *testing.T) {
	loader := tableLoader{
		"melbourne.csv": {
			Columns: []string{"city", "date", "sector", "value"},
			Rows: []domain.Row{
				{"city": "Melbourne", "date": "01/01/2023", "sector": "Aviation", "value": "10"},
				{"city": "Melbourne", "date": "01/01/2023", "sector": "Aviation", "value": "5"},
			},
		},
	}
	ledger := ledgeradapter.NewMemoryLedger()
	audit := newTestAudit(t)

	coord := NewCoordinator(loader, ledger, audit, log.NewNoopLogger(), defaultOptions())
	summary, err := coord.Run(context.Background(), registry.DomainEmissions, "melbourne.csv")
	require.NoError(t, err)

	// Two rows aggregate to one record for (Melbourne, 01/01/2023).
	assert.Equal(t, 1, summary.Attempted)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, float64(15), summary.TotalValue)
	assert.Equal(t, float64(15), summary.ValueByEntity["Melbourne"])
	assert.Equal(t, 1, summary.Batches)
	assert.NotEmpty(t, summary.RunID)

	ops := ledger.Operations()
	require.Len(t, ops, 1)
	assert.Equal(t, "processEmissions", ops[0].Operation)
	assert.Equal(t, []string{"Melbourne", "01/01/2023", "15000"}, ops[0].Args)

	require.NoError(t, audit.Close())
	entries, err := audit.Entries(registry.DomainEmissions)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Success)
	assert.Equal(t, "Melbourne", entries[0].Data.Entity)
	assert.Equal(t, float64(15), entries[0].Data.Value)
}

func TestCoordinatorFailsFastOnSchemaError(t *testing.T) {
	loader := tableLoader{
		"bad.csv": {
			Columns: []string{"city", "value"},
			Rows:    []domain.Row{{"city": "Melbourne", "value": "10"}},
		},
	}
	ledger := ledgeradapter.NewMemoryLedger()

	coord := NewCoordinator(loader, ledger, newTestAudit(t), log.NewNoopLogger(), defaultOptions())
	_, err := coord.Run(context.Background(), registry.DomainCity, "bad.csv")

	assert.True(t, errors.Is(err, domain.ErrSchema))
	assert.Empty(t, ledger.Operations(), "no submission may happen after a schema failure")
}

func TestCoordinatorUnknownDomain(t *testing.T) {
	coord := NewCoordinator(tableLoader{}, ledgeradapter.NewMemoryLedger(), newTestAudit(t), log.NewNoopLogger(), defaultOptions())
	_, err := coord.Run(context.Background(), "orbital", "data.csv")
	assert.True(t, errors.Is(err, domain.ErrUnknownDomain))
}

func TestCoordinatorReportsPartialFailure(t *testing.T) {
	rows := make([]domain.Row, 0, 10)
	for i := 0; i < 10; i++ {
		rows = append(rows, domain.Row{
			"city":   fmt.Sprintf("City-%d", i),
			"date":   "01/01/2023",
			"sector": "Aviation",
			"value":  "10",
		})
	}
	loader := tableLoader{"cities.csv": {Columns: []string{"city", "date", "sector", "value"}, Rows: rows}}

	ledger := ledgeradapter.NewMemoryLedger()
	ledger.FailSubmit = func(op string, args []string) error {
		if args[0] == "City-3" || args[0] == "City-7" {
			return errors.New("contract reverted")
		}
		return nil
	}

	coord := NewCoordinator(loader, ledger, newTestAudit(t), log.NewNoopLogger(), defaultOptions())
	summary, err := coord.Run(context.Background(), registry.DomainHealth, "cities.csv")
	require.NoError(t, err, "partial failures must not fail the run")

	assert.Equal(t, 10, summary.Attempted)
	assert.Equal(t, 8, summary.Succeeded)
	assert.Equal(t, 2, summary.Failed)
}

func TestCoordinatorLedgerUnavailableIsFatal(t *testing.T) {
	loader := tableLoader{
		"data.csv": {
			Columns: []string{"city", "date", "sector", "value"},
			Rows: []domain.Row{
				{"city": "Melbourne", "date": "01/01/2023", "sector": "Aviation", "value": "10"},
			},
		},
	}
	ledger := ledgeradapter.NewMemoryLedger()
	ledger.Unavailable = true

	coord := NewCoordinator(loader, ledger, newTestAudit(t), log.NewNoopLogger(), defaultOptions())
	summary, err := coord.Run(context.Background(), registry.DomainCity, "data.csv")

	assert.True(t, errors.Is(err, domain.ErrLedgerUnavailable))
	assert.Equal(t, 0, summary.Succeeded)
}
