package log

import (
	"strings"
	"time"
)

// Event records one parse. CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the parse started (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID groups the events of one tool invocation (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Source is where the DRF text came from.
	Source Source `cbor:"3,keyasint"`

	// Origin locates the text within its source, e.g. "beams.drf:12" or a
	// conformance case id.
	Origin string `cbor:"4,keyasint,omitempty"`

	// Input is the text handed to the parser.
	Input string `cbor:"5,keyasint"`

	// Outcome tells accepted parses from rejected ones.
	Outcome Outcome `cbor:"6,keyasint"`

	// Duration of the parse.
	Duration time.Duration `cbor:"7,keyasint,omitempty"`

	// Outcome-specific payload (exactly one of these is set).
	Result *ResultData `cbor:"8,keyasint,omitempty"`
	Error  *ErrorData  `cbor:"9,keyasint,omitempty"`
}

// Source identifies the kind of input a parse came from.
type Source uint8

const (
	// SourceArgs is text passed on the command line.
	SourceArgs Source = 0
	// SourceStdin is text read line by line from standard input.
	SourceStdin Source = 1
	// SourceCatalog is an entry of a request catalog file.
	SourceCatalog Source = 2
	// SourceREPL is a line typed at the interactive prompt.
	SourceREPL Source = 3
	// SourceConformance is an input of a conformance vector.
	SourceConformance Source = 4
	// SourceWire is the canonical text carried by a decoded wire message.
	SourceWire Source = 5
)

var sourceNames = map[Source]string{
	SourceArgs:        "ARGS",
	SourceStdin:       "STDIN",
	SourceCatalog:     "CATALOG",
	SourceREPL:        "REPL",
	SourceConformance: "CONFORMANCE",
	SourceWire:        "WIRE",
}

// String returns the source name.
func (s Source) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseSource resolves a source from its name, ignoring case.
func ParseSource(name string) (Source, bool) {
	for s, n := range sourceNames {
		if strings.EqualFold(n, name) {
			return s, true
		}
	}
	return 0, false
}

// Outcome tells whether the parser accepted the input.
type Outcome uint8

const (
	// OutcomeAccepted indicates the input parsed.
	OutcomeAccepted Outcome = 0
	// OutcomeRejected indicates the input was rejected with an error.
	OutcomeRejected Outcome = 1
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "ACCEPTED"
	case OutcomeRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// ResultData describes an accepted parse.
type ResultData struct {
	// Canonical is the canonical form of the request.
	Canonical string `cbor:"1,keyasint" json:"canonical"`

	// Device is the canonical device name.
	Device string `cbor:"2,keyasint" json:"device"`

	// Category is the canonical category token, e.g. "STATUS".
	Category string `cbor:"3,keyasint" json:"category"`

	// Field is the canonical field token, empty for field-less categories.
	Field string `cbor:"4,keyasint,omitempty" json:"field,omitempty"`

	// RangeKind and EventKind name the forms of the range and event.
	RangeKind string `cbor:"5,keyasint" json:"range_kind"`
	EventKind string `cbor:"6,keyasint" json:"event_kind"`
}

// ErrorData describes a rejected parse.
type ErrorData struct {
	// Kind is the snake_case error kind, e.g. "trailing_input". Empty when
	// the error did not come from the grammar.
	Kind string `cbor:"1,keyasint,omitempty" json:"kind,omitempty"`

	// Pos is the byte offset where the failure was detected.
	Pos int `cbor:"2,keyasint" json:"pos"`

	// Message is the full error text.
	Message string `cbor:"3,keyasint" json:"message"`
}

// Failed reports whether the event is a rejected parse.
func (e Event) Failed() bool {
	return e.Outcome == OutcomeRejected
}
