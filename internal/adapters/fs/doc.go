// Package fs provides file-system adapters: the per-domain JSONL audit
// log, the CSV dataset loader, and the watch-mode run state repository.
package fs
