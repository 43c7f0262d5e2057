package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.dlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var read []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}
	return read
}

func sampleEvents(base time.Time) []Event {
	return []Event{
		{
			Timestamp: base,
			SessionID: "s1",
			Source:    SourceArgs,
			Input:     "M:OUTTMP",
			Outcome:   OutcomeAccepted,
			Result:    &ResultData{Canonical: "M:OUTTMP.READING.SCALED", Category: "READING"},
		},
		{
			Timestamp: base.Add(time.Second),
			SessionID: "s1",
			Source:    SourceArgs,
			Input:     "M:OUTTMP.ON[0]",
			Outcome:   OutcomeRejected,
			Error:     &ErrorData{Kind: "trailing_input", Pos: 8},
		},
		{
			Timestamp: base.Add(2 * time.Second),
			SessionID: "s2",
			Source:    SourceCatalog,
			Origin:    "beams.drf:1",
			Input:     "M|OUTTMP",
			Outcome:   OutcomeAccepted,
			Result:    &ResultData{Canonical: "M:OUTTMP.STATUS.ALL", Category: "STATUS"},
		},
		{
			Timestamp: base.Add(3 * time.Second),
			SessionID: "s2",
			Source:    SourceCatalog,
			Origin:    "beams.drf:2",
			Input:     "M:OUTTMP[1",
			Outcome:   OutcomeRejected,
			Error:     &ErrorData{Kind: "unterminated_bracket", Pos: 8},
		},
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	events := sampleEvents(time.Now())
	path := createTestLogFile(t, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)
	if len(read) != len(events) {
		t.Fatalf("got %d events, want %d", len(read), len(events))
	}
	for i := range events {
		if read[i].Input != events[i].Input {
			t.Errorf("event %d: Input = %q, want %q", i, read[i].Input, events[i].Input)
		}
	}
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	path := createTestLogFile(t, sampleEvents(base))

	catalog := SourceCatalog
	rejected := OutcomeRejected
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"M:OUTTMP", "M:OUTTMP.ON[0]", "M|OUTTMP", "M:OUTTMP[1"}},
		{"session", Filter{SessionID: "s2"}, []string{"M|OUTTMP", "M:OUTTMP[1"}},
		{"source", Filter{Source: &catalog}, []string{"M|OUTTMP", "M:OUTTMP[1"}},
		{"outcome", Filter{Outcome: &rejected}, []string{"M:OUTTMP.ON[0]", "M:OUTTMP[1"}},
		{"category", Filter{Category: "STATUS"}, []string{"M|OUTTMP"}},
		{"error kind", Filter{ErrorKind: "trailing_input"}, []string{"M:OUTTMP.ON[0]"}},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, []string{"M:OUTTMP.ON[0]", "M|OUTTMP"}},
		{"combined", Filter{SessionID: "s1", Outcome: &rejected}, []string{"M:OUTTMP.ON[0]"}},
		{"no match", Filter{SessionID: "s9"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()

			read := readAll(t, reader)
			if len(read) != len(tt.want) {
				t.Fatalf("got %d events, want %d", len(read), len(tt.want))
			}
			for i, want := range tt.want {
				if read[i].Input != want {
					t.Errorf("event %d: Input = %q, want %q", i, read[i].Input, want)
				}
			}
		})
	}
}

func TestReaderEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("Next on empty file: got %v, want io.EOF", err)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope.dlog")); err == nil {
		t.Error("expected error for missing file")
	}
}
