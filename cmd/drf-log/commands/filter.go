package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/drf-protocol/drf-go/pkg/log"
)

// FilterOptions specifies filtering criteria for the filter command.
type FilterOptions struct {
	Output    string
	SessionID string
	Source    string
	Outcome   string
	Category  string
	ErrorKind string
	TimeStart string
	TimeEnd   string
}

// RunFilter filters the trace file and writes matching events to a new file.
// It returns the number of events written.
func RunFilter(path string, opts FilterOptions) (int, error) {
	filter := log.Filter{
		SessionID: opts.SessionID,
		Category:  opts.Category,
		ErrorKind: opts.ErrorKind,
	}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return 0, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return 0, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	if opts.Source != "" {
		s, err := ParseSourceFlag(opts.Source)
		if err != nil {
			return 0, err
		}
		filter.Source = &s
	}

	if opts.Outcome != "" {
		o, err := parseOutcome(opts.Outcome)
		if err != nil {
			return 0, err
		}
		filter.Outcome = &o
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	// Create file logger to write filtered events
	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Close()
			return count, fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}

	if dropped := logger.Dropped(); dropped > 0 {
		logger.Close()
		return count - dropped, fmt.Errorf("failed to write %d events", dropped)
	}
	return count, logger.Close()
}

func parseOutcome(s string) (log.Outcome, error) {
	switch s {
	case "accepted", "ACCEPTED":
		return log.OutcomeAccepted, nil
	case "rejected", "REJECTED":
		return log.OutcomeRejected, nil
	default:
		return 0, fmt.Errorf("invalid outcome: %s (must be accepted or rejected)", s)
	}
}
