package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArthurBonsu/ledgerflow/internal/domain"
	"github.com/ArthurBonsu/ledgerflow/pkg/log"
)

func testEntry(entity string) domain.AuditEntry {
	return domain.AuditEntry{
		Timestamp: time.Now().UTC(),
		Domain:    "city",
		Data:      domain.AuditRecord{Entity: entity, Date: "01/01/2023", Value: 10},
		Success:   true,
		TxID:      "0xabc",
	}
}

func TestAuditLogAppendAndReadBack(t *testing.T) {
	dir := t.TempDir()
	audit, err := NewAuditLog(dir, map[string]string{"city": "city_register_logs.json"}, log.NewNoopLogger())
	require.NoError(t, err)

	ctx := context.Background()
	audit.Append(ctx, "city", testEntry("Melbourne"))
	audit.Append(ctx, "city", testEntry("Sydney"))
	require.NoError(t, audit.Close())

	entries, err := audit.Entries("city")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Melbourne", entries[0].Data.Entity)
	assert.Equal(t, "Sydney", entries[1].Data.Entity)

	// The registry filename was used, not the default.
	_, err = os.Stat(filepath.Join(dir, "city_register_logs.json"))
	assert.NoError(t, err)
}

func TestAuditLogConcurrentAppendsLoseNothing(t *testing.T) {
	audit, err := NewAuditLog(t.TempDir(), nil, log.NewNoopLogger())
	require.NoError(t, err)

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				audit.Append(context.Background(), "emissions", testEntry(fmt.Sprintf("w%d-%d", w, i)))
			}
		}()
	}
	wg.Wait()
	require.NoError(t, audit.Close())

	entries, err := audit.Entries("emissions")
	require.NoError(t, err)
	require.Len(t, entries, writers*perWriter)

	seen := make(map[string]bool)
	for _, e := range entries {
		assert.False(t, seen[e.Data.Entity])
		seen[e.Data.Entity] = true
	}
}

func TestAuditLogAbsentAndCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	audit, err := NewAuditLog(dir, nil, log.NewNoopLogger())
	require.NoError(t, err)
	defer audit.Close()

	// Absent log reads as empty.
	entries, err := audit.Entries("renewal")
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Corrupt lines are skipped, valid lines survive.
	audit.Append(context.Background(), "health", testEntry("Melbourne"))
	require.NoError(t, audit.Close())

	path := filepath.Join(dir, "health_logs.json")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("{truncated\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	entries, err = audit.Entries("health")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Melbourne", entries[0].Data.Entity)
}

func TestAuditLogAppendAfterCloseIsDropped(t *testing.T) {
	audit, err := NewAuditLog(t.TempDir(), nil, log.NewNoopLogger())
	require.NoError(t, err)
	require.NoError(t, audit.Close())

	// Must not panic or block.
	audit.Append(context.Background(), "city", testEntry("Melbourne"))

	entries, err := audit.Entries("city")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
