package log

import (
	"testing"
	"time"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	event := Event{
		Timestamp: time.Now(),
		SessionID: "session-1",
		Source:    SourceArgs,
		Input:     "M:OUTTMP",
	}

	// Without payload
	logger.Log(event)

	// With result payload
	event.Result = &ResultData{Canonical: "M:OUTTMP.READING.SCALED"}
	logger.Log(event)

	// With error payload
	event.Result = nil
	event.Outcome = OutcomeRejected
	event.Error = &ErrorData{Kind: "trailing_input", Pos: 8, Message: "test error"}
	logger.Log(event)
}

func TestLoggerInterfaceSatisfaction(t *testing.T) {
	var _ Logger = NoopLogger{}
	var _ Logger = &NoopLogger{}
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
}
