// Package ledger provides LedgerClient adapters: an HTTP client for a
// remote ledger gateway and an in-memory ledger for tests and dry runs.
package ledger
