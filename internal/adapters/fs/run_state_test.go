package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ArthurBonsu/ledgerflow/internal/ports"
)

func TestRunStateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo := NewRunStateRepository(dir)
	ctx := context.Background()

	// No file yet: empty state, no error.
	st, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(st.Processed) != 0 {
		t.Fatalf("expected empty state, got %v", st.Processed)
	}

	st.MarkProcessed("/data/jan.csv", "2023-01-02T00:00:00Z")
	if err := repo.Save(ctx, st); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if repo.Path() != filepath.Join(dir, "status.json") {
		t.Fatalf("expected state file %s/status.json, got %s", dir, repo.Path())
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !loaded.Seen("/data/jan.csv") {
		t.Fatalf("expected /data/jan.csv to be marked processed")
	}
	if loaded.Seen("/data/feb.csv") {
		t.Fatalf("unexpected file marked processed")
	}
}

func TestRunStateLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "status.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewRunStateRepository(dir).Load(context.Background()); err == nil {
		t.Fatal("expected error for corrupt state file")
	}
}

var _ ports.RunStateRepository = (*RunStateRepository)(nil)
