package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/drf-protocol/drf-go/pkg/log"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.dlog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

// sampleEvents returns two sessions: one accepted and one rejected parse
// from the command line, then a catalog entry.
func sampleEvents() []log.Event {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	return []log.Event{
		{
			Timestamp: ts,
			SessionID: "abc12345-0000-4000-8000-000000000001",
			Source:    log.SourceArgs,
			Origin:    "arg 1",
			Input:     "M|OUTTMP.On@e,02",
			Outcome:   log.OutcomeAccepted,
			Duration:  1500 * time.Nanosecond,
			Result: &log.ResultData{
				Canonical: "M:OUTTMP.STATUS.ON@E,2,E,0",
				Device:    "M:OUTTMP",
				Category:  "STATUS",
				Field:     "ON",
				RangeKind: "None",
				EventKind: "Clock",
			},
		},
		{
			Timestamp: ts.Add(time.Millisecond),
			SessionID: "abc12345-0000-4000-8000-000000000001",
			Source:    log.SourceArgs,
			Origin:    "arg 2",
			Input:     "M:OUTTMP.ON",
			Outcome:   log.OutcomeRejected,
			Duration:  900 * time.Nanosecond,
			Error: &log.ErrorData{
				Kind:    "trailing_input",
				Pos:     8,
				Message: `drf: trailing input at offset 8: unparsed ".ON"`,
			},
		},
		{
			Timestamp: ts.Add(2 * time.Second),
			SessionID: "def67890-0000-4000-8000-000000000002",
			Source:    log.SourceCatalog,
			Origin:    "linac.drf:5",
			Input:     "M:OUTTMP@p,1s",
			Outcome:   log.OutcomeAccepted,
			Duration:  2 * time.Microsecond,
			Result: &log.ResultData{
				Canonical: "M:OUTTMP.READING.SCALED@P,1S,TRUE",
				Device:    "M:OUTTMP",
				Category:  "READING",
				Field:     "SCALED",
				RangeKind: "None",
				EventKind: "Periodic",
			},
		},
	}
}
