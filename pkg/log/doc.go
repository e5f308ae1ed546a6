// Package log provides the logging abstraction for ledgerflow
// components.
//
// This package defines a Logger interface that can be implemented by
// any logging library. Default implementations are provided for zerolog
// (console and file output) and a no-op logger for testing.
//
// Loggers are injected explicitly into each component; nothing in
// ledgerflow mutates process-wide logging state.
//
// # Usage
//
//	logger := log.NewZerologAdapter()
//	logger.Info("batch sent", log.Int("records", n))
//
// Or use the no-op logger for testing:
//
//	logger := log.NewNoopLogger()
package log
