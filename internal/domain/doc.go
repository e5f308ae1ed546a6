// Package domain contains the core entities and value objects for ledgerflow.
//
// This package represents the innermost layer of the architecture. It has
// no dependencies on infrastructure concerns (HTTP, file system, logging)
// and contains only pure data and business rules.
//
// # Entities
//
//   - [Record]: One tabular data point (entity, date, category, value)
//   - [Batch]: A bounded partition of aggregated records
//   - [SubmissionOutcome]: The result of one record's ledger submission
//   - [AuditEntry]: A durable record of one submission attempt
//
// Domain entities are immutable after construction where practical and
// testable without mocks or external systems.
package domain
