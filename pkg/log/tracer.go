package log

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/drf-protocol/drf-go/pkg/drf"
)

// Tracer parses DRF text and records one Event per parse.
// It is safe for concurrent use if its Logger is.
type Tracer struct {
	logger  Logger
	session string
	source  Source
	now     func() time.Time
}

// NewTracer creates a Tracer with a fresh session id. A nil logger
// disables recording.
func NewTracer(logger Logger, source Source) *Tracer {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &Tracer{
		logger:  logger,
		session: uuid.NewString(),
		source:  source,
		now:     time.Now,
	}
}

// SessionID returns the id shared by every event of this tracer.
func (t *Tracer) SessionID() string {
	return t.session
}

// WithSource returns a tracer in the same session that tags events with a
// different source.
func (t *Tracer) WithSource(source Source) *Tracer {
	c := *t
	c.source = source
	return &c
}

// Parse parses text with drf.Parse and records the outcome.
func (t *Tracer) Parse(text string) (drf.Request, error) {
	return t.ParseFrom("", text)
}

// ParseFrom is like Parse and records origin as the event location.
func (t *Tracer) ParseFrom(origin, text string) (drf.Request, error) {
	start := t.now()
	req, err := drf.Parse(text)

	event := Event{
		Timestamp: start,
		SessionID: t.session,
		Source:    t.source,
		Origin:    origin,
		Input:     text,
		Duration:  t.now().Sub(start),
	}
	if err != nil {
		event.Outcome = OutcomeRejected
		event.Error = errorData(err)
	} else {
		event.Outcome = OutcomeAccepted
		event.Result = resultData(req)
	}
	t.logger.Log(event)

	return req, err
}

func resultData(req drf.Request) *ResultData {
	return &ResultData{
		Canonical: req.Canonical(),
		Device:    req.Device.String(),
		Category:  req.Property.Category().Token(),
		Field:     req.Property.Field().Token(),
		RangeKind: rangeKindName(req.Range),
		EventKind: req.Event.Kind().String(),
	}
}

func rangeKindName(r drf.Range) string {
	if r.IsImplicit() {
		return "None"
	}
	return r.Kind().String()
}

func errorData(err error) *ErrorData {
	data := &ErrorData{Message: err.Error()}
	var pe *drf.ParseError
	if errors.As(err, &pe) {
		data.Kind = pe.Kind.String()
		data.Pos = pe.Pos
	}
	return data
}
