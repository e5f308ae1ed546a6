// Package watch tails an ingest directory and runs the submission
// workflow for every new dataset file, remembering completed files
// across restarts.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ArthurBonsu/ledgerflow/internal/ports"
	"github.com/ArthurBonsu/ledgerflow/pkg/log"
)

// ProcessFunc runs the workflow for one dataset file.
type ProcessFunc func(ctx context.Context, path string) error

// Watcher monitors an ingest directory for new CSV datasets. Files are
// debounced after their last write event so half-written exports are
// not picked up, and completed files are recorded in the run state so a
// restart does not resubmit them.
type Watcher struct {
	dir      string
	debounce time.Duration
	states   ports.RunStateRepository
	logger   log.Logger
	process  ProcessFunc

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a watcher over dir. debounce is the quiet period after
// the last write before a file is processed.
func New(dir string, debounce time.Duration, states ports.RunStateRepository, logger log.Logger, process ProcessFunc) *Watcher {
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		states:   states,
		logger:   logger,
		process:  process,
		timers:   make(map[string]*time.Timer),
	}
}

// Run processes every dataset already present, then blocks tailing the
// directory until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	state, err := w.states.Load(ctx)
	if err != nil {
		w.logger.Error("failed to load run state", log.Err(err))
		// Continue with empty state
	}

	if err := w.processExisting(ctx, &state); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching ingest directory", log.String("dir", w.dir))

	ready := make(chan string)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isDataset(event.Name) {
				continue
			}
			w.schedule(event.Name, ready)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", log.Err(err))

		case path := <-ready:
			w.handle(ctx, path, &state)
		}
	}
}

// processExisting runs the workflow for files already in the directory
// that the run state has not seen.
func (w *Watcher) processExisting(ctx context.Context, state *ports.RunState) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read ingest dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isDataset(entry.Name()) {
			continue
		}
		w.handle(ctx, filepath.Join(w.dir, entry.Name()), state)
	}
	return nil
}

// schedule (re)arms the debounce timer for a file; the file is sent on
// ready when its timer fires without another event resetting it.
func (w *Watcher) schedule(path string, ready chan<- string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		ready <- path
	})
}

// handle runs one file through the workflow and records completion.
// Processing errors are logged, not fatal: the next file still runs.
func (w *Watcher) handle(ctx context.Context, path string, state *ports.RunState) {
	if state.Seen(path) {
		w.logger.Debug("skipping processed dataset", log.String("path", path))
		return
	}

	w.logger.Info("processing dataset", log.String("path", path))
	if err := w.process(ctx, path); err != nil {
		w.logger.Error("dataset failed", log.String("path", path), log.Err(err))
		return
	}

	state.MarkProcessed(path, time.Now().UTC().Format(time.RFC3339))
	if err := w.states.Save(ctx, *state); err != nil {
		w.logger.Error("failed to save run state", log.Err(err))
	}
}

func isDataset(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
