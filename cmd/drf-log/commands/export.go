package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/drf-protocol/drf-go/pkg/log"
)

// RunExport exports the trace file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

// jsonEvent is the JSON form of a trace event.
type jsonEvent struct {
	Timestamp  string `json:"timestamp"`
	SessionID  string `json:"session_id"`
	Source     string `json:"source"`
	Origin     string `json:"origin,omitempty"`
	Input      string `json:"input"`
	Outcome    string `json:"outcome"`
	DurationNS int64  `json:"duration_ns,omitempty"`

	Result *log.ResultData `json:"result,omitempty"`
	Error  *log.ErrorData  `json:"error,omitempty"`
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		out := jsonEvent{
			Timestamp:  event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			SessionID:  event.SessionID,
			Source:     event.Source.String(),
			Origin:     event.Origin,
			Input:      event.Input,
			Outcome:    event.Outcome.String(),
			DurationNS: event.Duration.Nanoseconds(),
			Result:     event.Result,
			Error:      event.Error,
		}
		if err := encoder.Encode(out); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	// Write header
	header := []string{"timestamp", "session_id", "source", "origin", "outcome", "input", "canonical", "error_kind", "error_pos", "duration_ns"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		var canonical, errKind, errPos string
		switch {
		case event.Result != nil:
			canonical = event.Result.Canonical
		case event.Error != nil:
			errKind = event.Error.Kind
			errPos = strconv.Itoa(event.Error.Pos)
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.SessionID,
			event.Source.String(),
			event.Origin,
			event.Outcome.String(),
			event.Input,
			canonical,
			errKind,
			errPos,
			strconv.FormatInt(event.Duration.Nanoseconds(), 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
