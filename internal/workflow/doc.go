// Package workflow sequences the pipeline stages for one domain and one
// dataset: validate, aggregate, partition, execute, summarize.
//
// Fatal configuration and schema errors abort the run before any
// submission is attempted. Per-record and per-batch failures are
// contained and reported through the returned summary.
package workflow
