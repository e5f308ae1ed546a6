// Package engine implements the submission executor, the only stage of
// the pipeline with I/O concurrency.
//
// Batches fan out one goroutine each, and every individual record
// submission is gated by a single weighted semaphore shared across the
// executor, so in-flight ledger calls never exceed the configured limit
// no matter how many batches are scheduled.
//
// Failure handling follows two isolation levels: an error submitting one
// record is recorded as a failed outcome and the batch continues, while
// an unavailable ledger aborts only the batch it occurs in.
package engine
