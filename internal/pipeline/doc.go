// Package pipeline implements the synchronous transform stages of the
// submission pipeline: schema validation and aggregation.
//
// Both stages are pure, CPU-bound transforms with no I/O. Data flows
// strictly downstream: raw tables are validated into typed records,
// records are reduced into aggregated records, and only aggregated
// records reach the submission engine.
package pipeline
