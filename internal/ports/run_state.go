package ports

import "context"

// RunState remembers which dataset files have already been processed so
// that watch mode does not resubmit them after a restart.
type RunState struct {
	// Processed maps dataset file paths to the RFC 3339 time they
	// completed.
	Processed map[string]string `json:"processed"`
}

// Seen returns true if the file has already been processed.
func (s RunState) Seen(path string) bool {
	_, ok := s.Processed[path]
	return ok
}

// MarkProcessed records a completed file.
func (s *RunState) MarkProcessed(path, completedAt string) {
	if s.Processed == nil {
		s.Processed = make(map[string]string)
	}
	s.Processed[path] = completedAt
}

// RunStateRepository persists run state for crash recovery.
// Implementations persist atomically (write to temp file, then rename).
type RunStateRepository interface {
	// Load retrieves the last saved state. Returns an empty state and
	// nil error if no state exists.
	Load(ctx context.Context) (RunState, error)

	// Save persists the current state atomically.
	Save(ctx context.Context, state RunState) error
}
