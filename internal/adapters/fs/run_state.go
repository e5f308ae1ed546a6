package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ArthurBonsu/ledgerflow/internal/ports"
)

const runStateFileName = "status.json"

// RunStateRepository implements ports.RunStateRepository using a JSON
// file.
type RunStateRepository struct {
	dir string
}

// NewRunStateRepository creates a repository rooted at dir.
func NewRunStateRepository(dir string) *RunStateRepository {
	return &RunStateRepository{dir: dir}
}

// Load retrieves the last saved state from disk.
// Returns an empty state and nil error if no state file exists.
func (r *RunStateRepository) Load(ctx context.Context) (ports.RunState, error) {
	path := filepath.Join(r.dir, runStateFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ports.RunState{}, nil
		}
		return ports.RunState{}, err
	}

	var state ports.RunState
	if err := json.Unmarshal(data, &state); err != nil {
		return ports.RunState{}, err
	}
	return state, nil
}

// Save persists the current state atomically.
// Uses atomic write (write to temp file, then rename) to prevent
// corruption.
func (r *RunStateRepository) Save(ctx context.Context, state ports.RunState) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	path := filepath.Join(r.dir, runStateFileName)
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Path returns the full path to the state file.
func (r *RunStateRepository) Path() string {
	return filepath.Join(r.dir, runStateFileName)
}
