package drf

import (
	"errors"
	"fmt"
)

// Parse errors. Every *ParseError unwraps to exactly one of these.
var (
	ErrExpectedSeparator   = errors.New("expected ':' or '|' after device prefix")
	ErrExpectedName        = errors.New("expected device name")
	ErrUnknownToken        = errors.New("unknown token")
	ErrMalformedNumber     = errors.New("malformed number")
	ErrUnterminatedBracket = errors.New("unterminated bracket")
	ErrMissingArgument     = errors.New("missing argument")
	ErrTrailingInput       = errors.New("trailing input")
)

// ErrIllegalField is returned when a property is built from a field the
// category does not define.
var ErrIllegalField = errors.New("field not legal for category")

// ErrorKind classifies a parse failure.
type ErrorKind uint8

const (
	KindExpectedSeparator ErrorKind = iota + 1
	KindExpectedName
	KindUnknownToken
	KindMalformedNumber
	KindUnterminatedBracket
	KindMissingArgument
	KindTrailingInput
)

var kindErrors = map[ErrorKind]error{
	KindExpectedSeparator:   ErrExpectedSeparator,
	KindExpectedName:        ErrExpectedName,
	KindUnknownToken:        ErrUnknownToken,
	KindMalformedNumber:     ErrMalformedNumber,
	KindUnterminatedBracket: ErrUnterminatedBracket,
	KindMissingArgument:     ErrMissingArgument,
	KindTrailingInput:       ErrTrailingInput,
}

var kindNames = map[ErrorKind]string{
	KindExpectedSeparator:   "expected_separator",
	KindExpectedName:        "expected_name",
	KindUnknownToken:        "unknown_token",
	KindMalformedNumber:     "malformed_number",
	KindUnterminatedBracket: "unterminated_bracket",
	KindMissingArgument:     "missing_argument",
	KindTrailingInput:       "trailing_input",
}

// String returns the snake_case name of the kind.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// IsTrailing reports whether the kind means a valid prefix was followed by
// unparsed characters, as opposed to a grammar mismatch.
func (k ErrorKind) IsTrailing() bool {
	return k == KindTrailingInput
}

// ParseErrorKind resolves a kind from its snake_case name.
func ParseErrorKind(name string) (ErrorKind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// ParseError describes where and why a DRF string was rejected.
type ParseError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Pos is the byte offset in Input where the failure was detected.
	Pos int

	// Input is the complete text handed to Parse.
	Input string

	// Detail is an optional human-readable elaboration.
	Detail string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("drf: %v at offset %d", e.Unwrap(), e.Pos)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the sentinel error for the kind.
func (e *ParseError) Unwrap() error {
	if err, ok := kindErrors[e.Kind]; ok {
		return err
	}
	return ErrUnknownToken
}

// Remaining returns the unparsed input from the failure position onward.
func (e *ParseError) Remaining() string {
	if e.Pos < 0 || e.Pos > len(e.Input) {
		return ""
	}
	return e.Input[e.Pos:]
}

// KindOf returns the kind of a parse error, or 0 if err is not one.
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
