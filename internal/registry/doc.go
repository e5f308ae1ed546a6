// Package registry defines the five data domains served by the
// submission engine.
//
// Each domain is one Definition: its ledger write operation, the schema
// rules for its datasets, its aggregation strategy, and its audit log
// name. The engine itself is domain-agnostic; everything
// domain-specific lives here.
package registry
