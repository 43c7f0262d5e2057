// Package commands implements the drf-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/drf-protocol/drf-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	ErrorsOnly bool
	SessionID  string
	Source     *log.Source
}

// filter converts the view criteria into a reader filter.
func (f ViewFilter) filter() log.Filter {
	filter := log.Filter{SessionID: f.SessionID, Source: f.Source}
	if f.ErrorsOnly {
		rejected := log.OutcomeRejected
		filter.Outcome = &rejected
	}
	return filter
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session:id] SOURCE OUTCOME origin
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	session := shortenSessionID(event.SessionID)

	fmt.Fprintf(w, "%s [session:%s] %-11s %s", ts, session, event.Source, event.Outcome)
	if event.Origin != "" {
		fmt.Fprintf(w, " %s", event.Origin)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Input: %s\n", event.Input)
	switch {
	case event.Result != nil:
		formatResultDetails(w, event.Result)
	case event.Error != nil:
		formatErrorDetails(w, event.Input, event.Error)
	}
	if event.Duration > 0 {
		fmt.Fprintf(w, "  Took: %s\n", formatDuration(event.Duration))
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatResultDetails(w io.Writer, r *log.ResultData) {
	fmt.Fprintf(w, "  Canonical: %s\n", r.Canonical)
	property := r.Category
	if r.Field != "" {
		property += "." + r.Field
	}
	fmt.Fprintf(w, "  Device: %s  Property: %s  Range: %s  Event: %s\n", r.Device, property, r.RangeKind, r.EventKind)
}

func formatErrorDetails(w io.Writer, input string, e *log.ErrorData) {
	if e.Kind != "" {
		fmt.Fprintf(w, "  Error: %s at %d\n", e.Kind, e.Pos)
		if e.Pos <= len(input) {
			fmt.Fprintf(w, "         %s\n         %s^\n", input, strings.Repeat(" ", e.Pos))
		}
	}
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
}

// formatDuration renders parse times, which are usually well under a
// millisecond.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
	default:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	}
}

// ParseSourceFlag parses a source name from a command-line flag (case-insensitive).
func ParseSourceFlag(s string) (log.Source, error) {
	src, ok := log.ParseSource(s)
	if !ok {
		return 0, fmt.Errorf("invalid source: %s (must be args, stdin, catalog, repl, conformance, or wire)", s)
	}
	return src, nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.filter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		formatEvent(output, event)
	}

	return nil
}
