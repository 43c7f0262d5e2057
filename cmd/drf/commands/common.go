// Package commands implements the drf CLI commands.
package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	drflog "github.com/drf-protocol/drf-go/pkg/log"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

// CommonOptions are the flags every command accepts.
type CommonOptions struct {
	ConfigFile string
	LogLevel   string
	TraceFile  string
}

func addCommonFlags(fs *flag.FlagSet, opts *CommonOptions) {
	fs.StringVar(&opts.ConfigFile, "config", "", "YAML configuration file")
	fs.StringVar(&opts.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	fs.StringVar(&opts.TraceFile, "trace", "", "Append a CBOR parse trace to this file")
}

// isHelp reports whether err means -h or -help was given.
func isHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// flagGiven reports whether the named flag appeared on the command line.
func flagGiven(fs *flag.FlagSet, name string) bool {
	given := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			given = true
		}
	})
	return given
}

// newLogger creates the operational logger. Output goes to w as slog text.
func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// environment holds what a command needs after flags and config are resolved.
type environment struct {
	config Config
	logger *slog.Logger
	tracer *drflog.Tracer
	trace  *drflog.FileLogger
}

// setup resolves configuration, creates the logger, and opens the trace
// file. The caller must call close.
func setup(fs *flag.FlagSet, opts *CommonOptions, source drflog.Source, stderr io.Writer) (*environment, error) {
	cfg, err := loadSettings(fs, opts)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		return nil, err
	}

	env := &environment{config: cfg, logger: logger}

	var loggers []drflog.Logger
	if cfg.TraceFile != "" {
		env.trace, err = drflog.NewFileLogger(cfg.TraceFile)
		if err != nil {
			return nil, fmt.Errorf("open trace file: %w", err)
		}
		loggers = append(loggers, env.trace)
	}
	if strings.EqualFold(cfg.LogLevel, "debug") {
		loggers = append(loggers, drflog.NewSlogAdapter(logger))
	}

	env.tracer = drflog.NewTracer(drflog.NewMultiLogger(loggers...), source)
	logger.Debug("session started", "session", env.tracer.SessionID(), "source", source.String())
	return env, nil
}

func (e *environment) close() {
	if e.trace == nil {
		return
	}
	if n := e.trace.Dropped(); n > 0 {
		e.logger.Warn("trace events dropped", "count", n)
	}
	if err := e.trace.Close(); err != nil {
		e.logger.Error("close trace file", "error", err)
	}
}
