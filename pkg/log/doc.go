// Package log records a machine-readable trace of DRF parses.
//
// This package defines the Logger interface and the Event type for capturing
// every parse a tool performs: the input text, where it came from, and either
// the canonical result or the error with its position. It is separate from
// operational logging (slog); the trace is meant for later analysis with the
// drf-log tool.
//
// # Basic Usage
//
// Wrap parsing in a Tracer and hand it a Logger:
//
//	// For development: log to console via slog
//	tracer := log.NewTracer(log.NewSlogAdapter(slog.Default()), log.SourceArgs)
//
//	// For analysis: write to a binary file
//	fl, _ := log.NewFileLogger("parses.dlog")
//	tracer := log.NewTracer(fl, log.SourceCatalog)
//
//	// Both: use MultiLogger
//	tracer := log.NewTracer(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fl,
//	), log.SourceREPL)
//
//	req, err := tracer.Parse("M|OUTTMP.On@e,02")
//
// All events written by one Tracer share a session id.
//
// # File Format
//
// Trace files are a plain concatenation of CBOR-encoded events with integer
// keys, conventionally named with a .dlog extension. Files are append-only;
// reopening a file adds events after the existing ones.
package log
