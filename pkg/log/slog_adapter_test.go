package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func logToJSON(t *testing.T, adapter func(*slog.Logger) *SlogAdapter, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	adapter(slog.New(handler)).Log(event)

	if buf.Len() == 0 {
		t.Fatal("no output produced")
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return entry
}

func TestSlogAdapterLogsAcceptedParse(t *testing.T) {
	entry := logToJSON(t, NewSlogAdapter, Event{
		Timestamp: time.Now(),
		SessionID: "session-123",
		Source:    SourceArgs,
		Input:     "M|OUTTMP.On",
		Outcome:   OutcomeAccepted,
		Duration:  2 * time.Microsecond,
		Result: &ResultData{
			Canonical: "M:OUTTMP.STATUS.ON",
			Category:  "STATUS",
			Field:     "ON",
		},
	})

	checks := map[string]any{
		"msg":       "drf parse",
		"level":     "DEBUG",
		"session":   "session-123",
		"source":    "ARGS",
		"input":     "M|OUTTMP.On",
		"outcome":   "ACCEPTED",
		"canonical": "M:OUTTMP.STATUS.ON",
		"category":  "STATUS",
		"field":     "ON",
	}
	for key, want := range checks {
		if entry[key] != want {
			t.Errorf("%s: got %v, want %v", key, entry[key], want)
		}
	}
	if _, ok := entry["error_msg"]; ok {
		t.Error("accepted parse should not log error_msg")
	}
}

func TestSlogAdapterLogsRejectedParse(t *testing.T) {
	entry := logToJSON(t, NewSlogAdapter, Event{
		Timestamp: time.Now(),
		SessionID: "session-456",
		Source:    SourceCatalog,
		Origin:    "beams.drf:7",
		Input:     "M:OUTTMP.ON[0]",
		Outcome:   OutcomeRejected,
		Error:     &ErrorData{Kind: "trailing_input", Pos: 8, Message: "boom"},
	})

	if entry["outcome"] != "REJECTED" {
		t.Errorf("outcome: got %v", entry["outcome"])
	}
	if entry["origin"] != "beams.drf:7" {
		t.Errorf("origin: got %v", entry["origin"])
	}
	if entry["error_kind"] != "trailing_input" {
		t.Errorf("error_kind: got %v", entry["error_kind"])
	}
	if entry["error_pos"] != float64(8) {
		t.Errorf("error_pos: got %v", entry["error_pos"])
	}
	if entry["error_msg"] != "boom" {
		t.Errorf("error_msg: got %v", entry["error_msg"])
	}
	if _, ok := entry["canonical"]; ok {
		t.Error("rejected parse should not log canonical")
	}
}

func TestSlogAdapterWithLevel(t *testing.T) {
	entry := logToJSON(t, func(l *slog.Logger) *SlogAdapter {
		return NewSlogAdapter(l).WithLevel(slog.LevelInfo)
	}, Event{Input: "M:OUTTMP"})

	if entry["level"] != "INFO" {
		t.Errorf("level: got %v, want INFO", entry["level"])
	}
}

func TestSlogAdapterRespectsHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	NewSlogAdapter(slog.New(handler)).Log(Event{Input: "M:OUTTMP"})

	if buf.Len() != 0 {
		t.Errorf("debug event should be filtered, got %q", buf.String())
	}
}
