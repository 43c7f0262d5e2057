package wire

import (
	"errors"
	"fmt"

	"github.com/drf-protocol/drf-go/pkg/drf"
)

// CBOR map keys for request encoding.
const (
	KeyDevice    = 1
	KeyCategory  = 2
	KeyField     = 3
	KeyRange     = 4
	KeyEvent     = 5
	KeyCanonical = 6
)

// ErrCanonicalMismatch is returned when the canonical text carried in a
// message disagrees with the decoded request.
var ErrCanonicalMismatch = errors.New("canonical text does not match request")

// Request is the wire form of a drf.Request.
type Request struct {
	Device    string `cbor:"1,keyasint"`
	Category  uint8  `cbor:"2,keyasint"`
	Field     uint8  `cbor:"3,keyasint,omitempty"`
	Range     *Range `cbor:"4,keyasint,omitempty"`
	Event     *Event `cbor:"5,keyasint,omitempty"`
	Canonical string `cbor:"6,keyasint,omitempty"`
}

// Range is the wire form of a drf.Range.
//
//	{1: kind, 2: start, 3: end, 4: open}
type Range struct {
	Kind  uint8  `cbor:"1,keyasint"`
	Start uint32 `cbor:"2,keyasint,omitempty"`
	End   uint32 `cbor:"3,keyasint,omitempty"`
	Open  bool   `cbor:"4,keyasint,omitempty"`
}

// Event is the wire form of a drf.Event. Only the keys used by the kind are
// present.
//
//	{1: kind, 2: delay, 3: immediate, 4: skipDups, 5: clock, 6: clockType,
//	 7: device, 8: value, 9: op}
type Event struct {
	Kind      uint8  `cbor:"1,keyasint"`
	Delay     uint32 `cbor:"2,keyasint,omitempty"`
	Immediate bool   `cbor:"3,keyasint,omitempty"`
	SkipDups  bool   `cbor:"4,keyasint,omitempty"`
	Clock     uint16 `cbor:"5,keyasint,omitempty"`
	ClockType uint8  `cbor:"6,keyasint,omitempty"`
	Device    uint32 `cbor:"7,keyasint,omitempty"`
	Value     uint16 `cbor:"8,keyasint,omitempty"`
	Op        uint8  `cbor:"9,keyasint,omitempty"`
}

// FromRequest converts a parsed request to its wire form. The canonical text
// is included only when withCanonical is set.
func FromRequest(req drf.Request, withCanonical bool) *Request {
	w := &Request{
		Device:   req.Device.String(),
		Category: uint8(req.Property.Category()),
		Field:    uint8(req.Property.Field()),
		Range:    fromRange(req.Range),
		Event:    fromEvent(req.Event),
	}
	if withCanonical {
		w.Canonical = req.Canonical()
	}
	return w
}

func fromRange(r drf.Range) *Range {
	if r.IsImplicit() {
		return nil
	}
	end, _ := r.End()
	return &Range{
		Kind:  uint8(r.Kind()),
		Start: r.Start(),
		End:   end,
		Open:  r.IsOpen(),
	}
}

func fromEvent(e drf.Event) *Event {
	w := &Event{Kind: uint8(e.Kind())}
	switch e.Kind() {
	case drf.EventDefault:
		return nil
	case drf.EventPeriodic:
		w.Delay = e.Period()
		w.Immediate = e.FireImmediately()
		w.SkipDups = e.SkipIfLate()
	case drf.EventClock:
		w.Delay = e.Delay()
		w.Clock = e.ClockCode()
		w.ClockType = uint8(e.ClockType())
	case drf.EventState:
		w.Delay = e.Delay()
		w.Device = e.StateDevice()
		w.Value = e.StateValue()
		w.Op = uint8(e.StateOp())
	}
	return w
}

// Validate checks that the message describes a well-formed request.
func (r *Request) Validate() error {
	_, err := r.ToRequest()
	return err
}

// ToRequest rebuilds the drf.Request described by the message.
func (r *Request) ToRequest() (drf.Request, error) {
	dev, err := decodeDevice(r.Device)
	if err != nil {
		return drf.Request{}, err
	}
	prop, err := drf.NewProperty(drf.Category(r.Category), drf.Field(r.Field))
	if err != nil {
		return drf.Request{}, err
	}
	rng, err := r.Range.toRange()
	if err != nil {
		return drf.Request{}, err
	}
	event, err := r.Event.toEvent()
	if err != nil {
		return drf.Request{}, err
	}

	req := drf.Request{Device: dev, Property: prop, Range: rng, Event: event}
	if r.Canonical != "" && r.Canonical != req.Canonical() {
		return drf.Request{}, fmt.Errorf("%w: carried %q, decoded %q", ErrCanonicalMismatch, r.Canonical, req.Canonical())
	}
	return req, nil
}

// decodeDevice accepts only a bare canonical device name.
func decodeDevice(name string) (drf.Device, error) {
	if name == "" {
		return "", fmt.Errorf("missing device")
	}
	req, err := drf.Parse(name)
	if err != nil {
		return "", fmt.Errorf("invalid device %q: %w", name, err)
	}
	if req.Device.String() != name {
		return "", fmt.Errorf("invalid device %q: not in canonical form", name)
	}
	return req.Device, nil
}

func (r *Range) toRange() (drf.Range, error) {
	if r == nil {
		return drf.NoRange(), nil
	}

	switch drf.RangeKind(r.Kind) {
	case drf.RangeFull:
		return drf.FullRange(), nil
	case drf.RangeArray:
		if r.Start > 0xFFFF || r.End > 0xFFFF {
			return drf.Range{}, fmt.Errorf("array index out of range: [%d:%d]", r.Start, r.End)
		}
		if r.Open {
			return drf.OpenArrayRange(uint16(r.Start)), nil
		}
		return drf.ArrayRange(uint16(r.Start), uint16(r.End)), nil
	case drf.RangeRaw:
		if r.Open {
			return drf.OpenRawRange(r.Start), nil
		}
		return drf.RawRange(r.Start, r.End), nil
	default:
		return drf.Range{}, fmt.Errorf("invalid range kind: %d", r.Kind)
	}
}

func (e *Event) toEvent() (drf.Event, error) {
	if e == nil {
		return drf.DefaultEvent(), nil
	}

	switch drf.EventKind(e.Kind) {
	case drf.EventDefault:
		return drf.DefaultEvent(), nil
	case drf.EventNever:
		return drf.Never(), nil
	case drf.EventImmediate:
		return drf.Immediate(), nil
	case drf.EventPeriodic:
		return drf.Periodic(e.Delay, e.Immediate, e.SkipDups), nil
	case drf.EventClock:
		if ct := drf.ClockType(e.ClockType); ct > drf.ClockEither {
			return drf.Event{}, fmt.Errorf("invalid clock type: %d", e.ClockType)
		}
		return drf.Clock(e.Clock, drf.ClockType(e.ClockType), e.Delay), nil
	case drf.EventState:
		if op := drf.StateOp(e.Op); op > drf.OpAll {
			return drf.Event{}, fmt.Errorf("invalid state comparison: %d", e.Op)
		}
		return drf.State(e.Device, e.Value, e.Delay, drf.StateOp(e.Op)), nil
	default:
		return drf.Event{}, fmt.Errorf("invalid event kind: %d", e.Kind)
	}
}

// Batch is an ordered list of requests.
//
//	{1: [request, ...]}
type Batch struct {
	Requests []Request `cbor:"1,keyasint"`
}
