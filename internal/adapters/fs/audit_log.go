package fs

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ArthurBonsu/ledgerflow/internal/domain"
	"github.com/ArthurBonsu/ledgerflow/pkg/log"
)

// AuditLog implements ports.AuditSink with one JSON-lines file per
// domain under a logs directory.
//
// All appends are funneled through a single writer goroutine, so
// concurrent submissions cannot interleave or lose entries. Append
// failures never reach the caller; they are reported through the
// injected logger only.
type AuditLog struct {
	dir    string
	names  map[string]string
	logger log.Logger

	queue chan appendRequest
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

type appendRequest struct {
	domainName string
	entry      domain.AuditEntry
}

// NewAuditLog creates an audit log rooted at dir. names maps a domain to
// its log filename; domains not in the map use "<domain>_logs.json".
// The returned log owns a writer goroutine; call Close to flush it.
func NewAuditLog(dir string, names map[string]string, logger log.Logger) (*AuditLog, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("logs dir: %w", err)
	}
	a := &AuditLog{
		dir:    dir,
		names:  names,
		logger: logger,
		queue:  make(chan appendRequest, 256),
		done:   make(chan struct{}),
	}
	go a.writeLoop()
	return a, nil
}

// Append enqueues one entry for the domain's log. Safe for concurrent
// use. Entries enqueued before Close are written before Close returns.
func (a *AuditLog) Append(ctx context.Context, domainName string, entry domain.AuditEntry) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.logger.Error("audit append after close", log.String("domain", domainName))
		return
	}
	a.queue <- appendRequest{domainName: domainName, entry: entry}
	a.mu.Unlock()
}

// Entries reads back all entries recorded for the domain. An absent
// file reads as empty; corrupt lines are skipped.
func (a *AuditLog) Entries(domainName string) ([]domain.AuditEntry, error) {
	f, err := os.Open(a.path(domainName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []domain.AuditEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		var entry domain.AuditEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			a.logger.Warn("skipping corrupt audit line", log.String("domain", domainName), log.Err(err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

// Close stops accepting appends, drains the queue, and waits for the
// writer goroutine to finish.
func (a *AuditLog) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.queue)
	a.mu.Unlock()

	<-a.done
	return nil
}

// writeLoop is the single writer. It serializes every append across all
// domains.
func (a *AuditLog) writeLoop() {
	defer close(a.done)
	for req := range a.queue {
		if err := a.writeEntry(req.domainName, req.entry); err != nil {
			a.logger.Error("audit write failed",
				log.String("domain", req.domainName),
				log.Err(err),
			)
		}
	}
}

func (a *AuditLog) writeEntry(domainName string, entry domain.AuditEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(a.path(domainName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

func (a *AuditLog) path(domainName string) string {
	name, ok := a.names[domainName]
	if !ok {
		name = domainName + "_logs.json"
	}
	return filepath.Join(a.dir, name)
}
