// Package ports defines the interfaces that connect the pipeline core to
// infrastructure adapters.
//
// The application packages (pipeline, engine, workflow) depend only on
// these interfaces. Infrastructure adapters (internal/adapters) provide
// the concrete implementations (HTTP ledger client, JSONL audit file,
// CSV loader).
//
// # Port Interfaces
//
//   - [LedgerClient]: Submits write operations to the external ledger
//     and awaits their confirmation
//   - [AuditSink]: Appends durable audit entries per domain
//   - [DatasetLoader]: Supplies an in-memory tabular dataset
//   - [RunStateRepository]: Persists watch-mode progress across restarts
//
// This separation keeps the core testable with in-memory fakes and keeps
// the dependency direction pointing inward.
package ports
