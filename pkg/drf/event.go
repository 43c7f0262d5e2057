package drf

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// EventKind distinguishes the forms of Event.
type EventKind uint8

const (
	// EventDefault leaves the delivery condition unspecified. It is the
	// zero value and renders as an empty string.
	EventDefault EventKind = iota
	EventNever
	EventImmediate
	EventPeriodic
	EventClock
	EventState
)

// String returns the kind name.
func (k EventKind) String() string {
	switch k {
	case EventDefault:
		return "Default"
	case EventNever:
		return "Never"
	case EventImmediate:
		return "Immediate"
	case EventPeriodic:
		return "Periodic"
	case EventClock:
		return "Clock"
	case EventState:
		return "State"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// ClockType selects which clock system a clock event listens to.
type ClockType uint8

const (
	ClockHardware ClockType = iota
	ClockSoftware
	ClockEither
)

// String returns the single-letter canonical form: H, S or E.
func (c ClockType) String() string {
	switch c {
	case ClockHardware:
		return "H"
	case ClockSoftware:
		return "S"
	case ClockEither:
		return "E"
	default:
		return fmt.Sprintf("ClockType(%d)", uint8(c))
	}
}

// StateOp is the comparison a state event applies to the device value.
type StateOp uint8

const (
	OpEq StateOp = iota
	OpNEq
	OpGT
	OpLT
	OpLEq
	OpGEq
	// OpAll fires on every state transition regardless of value.
	OpAll
)

var stateOpSymbols = [...]string{
	OpEq:  "=",
	OpNEq: "!=",
	OpGT:  ">",
	OpLT:  "<",
	OpLEq: "<=",
	OpGEq: ">=",
	OpAll: "*",
}

// String returns the comparison symbol.
func (op StateOp) String() string {
	if int(op) < len(stateOpSymbols) {
		return stateOpSymbols[op]
	}
	return fmt.Sprintf("StateOp(%d)", uint8(op))
}

// Event is the delivery or trigger condition of a request. Delays and
// periods are in microseconds.
type Event struct {
	kind      EventKind
	delay     uint32 // period for Periodic, delay for Clock and State
	immediate bool
	skipDups  bool
	clock     uint16
	clockType ClockType
	device    uint32
	value     uint16
	op        StateOp
}

// DefaultEvent returns the unspecified event.
func DefaultEvent() Event {
	return Event{}
}

// Never returns the event that never fires.
func Never() Event {
	return Event{kind: EventNever}
}

// Immediate returns the event that fires once, right away.
func Immediate() Event {
	return Event{kind: EventImmediate}
}

// Periodic returns an event firing every period microseconds. immediate
// fires once at the start; skipDups suppresses repeated identical data.
func Periodic(period uint32, immediate, skipDups bool) Event {
	return Event{kind: EventPeriodic, delay: period, immediate: immediate, skipDups: skipDups}
}

// Clock returns an event firing delay microseconds after clock event code.
func Clock(code uint16, clockType ClockType, delay uint32) Event {
	return Event{kind: EventClock, clock: code, clockType: clockType, delay: delay}
}

// State returns an event firing delay microseconds after the state device
// reaches a value satisfying op.
func State(device uint32, value uint16, delay uint32, op StateOp) Event {
	return Event{kind: EventState, device: device, value: value, delay: delay, op: op}
}

// Kind returns the event form.
func (e Event) Kind() EventKind { return e.kind }

// Period returns the periodic interval in microseconds.
func (e Event) Period() uint32 { return e.delay }

// Delay returns the clock or state delay in microseconds.
func (e Event) Delay() uint32 { return e.delay }

// Duration returns the period or delay as a time.Duration.
func (e Event) Duration() time.Duration {
	return time.Duration(e.delay) * time.Microsecond
}

// FireImmediately reports whether a periodic event also fires at the start.
func (e Event) FireImmediately() bool { return e.immediate }

// SkipIfLate reports whether a periodic event skips duplicate data.
func (e Event) SkipIfLate() bool { return e.skipDups }

// ClockCode returns the clock event number.
func (e Event) ClockCode() uint16 { return e.clock }

// ClockType returns the clock system of a clock event.
func (e Event) ClockType() ClockType { return e.clockType }

// StateDevice returns the state device id.
func (e Event) StateDevice() uint32 { return e.device }

// StateValue returns the value a state event compares against.
func (e Event) StateValue() uint16 { return e.value }

// StateOp returns the comparison of a state event.
func (e Event) StateOp() StateOp { return e.op }

// Canonical returns the canonical event fragment, including the leading '@'.
func (e Event) Canonical() string {
	switch e.kind {
	case EventNever:
		return "@N"
	case EventImmediate:
		return "@I"
	case EventPeriodic:
		letter := 'P'
		if e.skipDups {
			letter = 'Q'
		}
		return fmt.Sprintf("@%c,%s,%s", letter, CanonicalDelay(e.delay), boolToken(e.immediate))
	case EventClock:
		return fmt.Sprintf("@E,%X,%s,%s", e.clock, e.clockType, CanonicalDelay(e.delay))
	case EventState:
		return fmt.Sprintf("@S,%d,%d,%s,%s", e.device, e.value, CanonicalDelay(e.delay), e.op)
	default:
		return ""
	}
}

// String returns the canonical event fragment.
func (e Event) String() string {
	return e.Canonical()
}

// CanonicalDelay renders a microsecond delay in its shortest exact unit:
// whole seconds get an "S" suffix, whole milliseconds have no suffix, and
// anything else is microseconds with a "U" suffix.
func CanonicalDelay(us uint32) string {
	switch {
	case us == 0:
		return "0"
	case us%1_000_000 == 0:
		return fmt.Sprintf("%dS", us/1_000_000)
	case us%1_000 == 0:
		return fmt.Sprintf("%d", us/1_000)
	default:
		return fmt.Sprintf("%dU", us)
	}
}

func boolToken(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// scanEvent consumes an optional '@' event. Without '@' nothing is consumed
// and the default event is returned.
func scanEvent(s *scanner) (Event, error) {
	if !s.accept('@') {
		return DefaultEvent(), nil
	}

	pos := s.pos
	letter := s.peek()
	if letter == eof {
		return Event{}, s.errorf(KindMissingArgument, pos, "expected event letter after '@'")
	}
	s.pos++

	switch upper(letter) {
	case 'N':
		return Never(), nil
	case 'I':
		return Immediate(), nil
	case 'P', 'Q':
		return scanPeriodic(s, upper(letter) == 'Q')
	case 'E':
		return scanClock(s)
	case 'S':
		return scanState(s)
	default:
		return Event{}, s.errorf(KindUnknownToken, pos, "unknown event letter %q", byte(letter))
	}
}

// scanPeriodic parses ",<delay>[,<bool>]".
func scanPeriodic(s *scanner, skipDups bool) (Event, error) {
	if err := s.expectComma("period"); err != nil {
		return Event{}, err
	}
	period, err := scanDelay(s)
	if err != nil {
		return Event{}, err
	}

	immediate := true
	if s.accept(',') {
		if immediate, err = scanBool(s); err != nil {
			return Event{}, err
		}
	}
	return Periodic(period, immediate, skipDups), nil
}

// scanClock parses ",<hex code>[,<clock letter>][,<delay>]". A field starting
// with a digit is the delay, so the clock letter may be left out.
func scanClock(s *scanner) (Event, error) {
	if err := s.expectComma("clock event"); err != nil {
		return Event{}, err
	}
	code, err := s.hex(16, "clock event")
	if err != nil {
		return Event{}, err
	}

	clockType := ClockEither
	var delay uint32

	if s.peek() == ',' && isLetter(s.peekAt(1)) {
		s.pos++
		if clockType, err = scanClockType(s); err != nil {
			return Event{}, err
		}
	}
	if s.accept(',') {
		if delay, err = scanDelay(s); err != nil {
			return Event{}, err
		}
	}
	return Clock(uint16(code), clockType, delay), nil
}

// scanState parses ",<device>,<value>,<delay>,<comparison>".
func scanState(s *scanner) (Event, error) {
	if err := s.expectComma("state device"); err != nil {
		return Event{}, err
	}
	device, err := s.decimal(32, "state device")
	if err != nil {
		return Event{}, err
	}

	if err := s.expectComma("state value"); err != nil {
		return Event{}, err
	}
	value, err := s.decimal(16, "state value")
	if err != nil {
		return Event{}, err
	}

	if err := s.expectComma("delay"); err != nil {
		return Event{}, err
	}
	delay, err := scanDelay(s)
	if err != nil {
		return Event{}, err
	}

	if err := s.expectComma("comparison"); err != nil {
		return Event{}, err
	}
	op, err := scanStateOp(s)
	if err != nil {
		return Event{}, err
	}

	return State(uint32(device), uint16(value), delay, op), nil
}

func scanClockType(s *scanner) (ClockType, error) {
	pos := s.pos
	switch w := strings.ToUpper(s.run(isLetter)); w {
	case "H":
		return ClockHardware, nil
	case "S":
		return ClockSoftware, nil
	case "E":
		return ClockEither, nil
	default:
		return 0, s.errorf(KindUnknownToken, pos, "unknown clock type %q", w)
	}
}

func scanBool(s *scanner) (bool, error) {
	pos := s.pos
	w := s.run(isLetter)
	switch strings.ToUpper(w) {
	case "TRUE", "T":
		return true, nil
	case "FALSE", "F":
		return false, nil
	case "":
		return false, s.errorf(KindMissingArgument, pos, "expected TRUE or FALSE")
	default:
		return false, s.errorf(KindUnknownToken, pos, "unknown boolean %q", w)
	}
}

func scanStateOp(s *scanner) (StateOp, error) {
	pos := s.pos
	// two-byte symbols first so "<=" is not read as "<"
	for _, op := range []StateOp{OpNEq, OpLEq, OpGEq, OpEq, OpGT, OpLT, OpAll} {
		sym := stateOpSymbols[op]
		if strings.HasPrefix(s.input[s.pos:], sym) {
			s.pos += len(sym)
			return op, nil
		}
	}
	if s.done() {
		return 0, s.errorf(KindMissingArgument, pos, "expected comparison")
	}
	return 0, s.errorf(KindUnknownToken, pos, "unknown comparison %q", s.input[s.pos])
}

// Delay unit multipliers in microseconds.
const (
	usPerSecond      = 1_000_000
	usPerMillisecond = 1_000
	usPerTick        = 10
)

// scanDelay parses an unsigned numeral with an optional unit letter and
// returns microseconds. Units: S seconds, M milliseconds, U microseconds,
// K 10µs clock ticks, H hertz (the period of the frequency, at least 1µs).
// Without a unit the numeral is milliseconds.
func scanDelay(s *scanner) (uint32, error) {
	start := s.pos
	n, err := s.decimal(32, "delay")
	if err != nil {
		return 0, err
	}

	unitPos := s.pos
	unit := 'M'
	if isLetter(s.peek()) {
		unit = rune(upper(s.peek()))
		s.pos++
	}

	var us uint64
	switch unit {
	case 'S':
		us = n * usPerSecond
	case 'M':
		us = n * usPerMillisecond
	case 'U':
		us = n
	case 'K':
		us = n * usPerTick
	case 'H':
		if n == 0 {
			return 0, s.errorf(KindMalformedNumber, start, "frequency must be non-zero")
		}
		us = usPerSecond / n
		if us == 0 {
			return 0, s.errorf(KindMalformedNumber, start, "frequency %s is above 1MHz", s.input[start:s.pos])
		}
	default:
		return 0, s.errorf(KindUnknownToken, unitPos, "unknown delay unit %q", unit)
	}

	if us > math.MaxUint32 {
		return 0, s.errorf(KindMalformedNumber, start, "delay %s overflows", s.input[start:s.pos])
	}
	return uint32(us), nil
}
