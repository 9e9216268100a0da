// Package log provides structured logging for fnc.
//
// Package: log
// Title: fnc Structured Logging
// Description: Leveled, field-based logging with JSON, text and console
//              formatters, request-scoped loggers and operation timers.
//              The lexer/parser engine, the parse-job store and the gRPC
//              service all log through this package.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-18 v0.2.0: Removed async buffering, audit level and logfmt output
//
// Usage:
//
//	import mdwlog "github.com/msto63/fnc/foundation/core/log"
//
//	logger := mdwlog.New().
//		WithLevel(mdwlog.LevelDebug).
//		WithFormat(mdwlog.FormatText).
//		WithField("component", "fnc-parser")
//
//	logger.Debug("Starting parse", mdwlog.Fields{"tokens": len(toks)})
//
//	timer := logger.StartTimer("parse")
//	// ... parse
//	timer.Stop()
package log
