package drf

import (
	"fmt"
	"strings"
)

// Request is a fully resolved DRF request.
type Request struct {
	Device   Device
	Property Property
	Range    Range
	Event    Event
}

// Canonical renders the unique canonical form: device, category token,
// range, field token, event.
func (r Request) Canonical() string {
	category, field := r.Property.Canonical()

	var sb strings.Builder
	sb.WriteString(r.Device.String())
	sb.WriteString(category)
	sb.WriteString(r.Range.Canonical())
	sb.WriteString(field)
	sb.WriteString(r.Event.Canonical())
	return sb.String()
}

// String returns the canonical form.
func (r Request) String() string {
	return r.Canonical()
}

// Canonicalize parses text and returns its canonical form.
func Canonicalize(text string) (string, error) {
	req, err := Parse(text)
	if err != nil {
		return "", err
	}
	return req.Canonical(), nil
}

// MustParse is like Parse but panics on error. It is intended for
// initializing package-level request values.
func MustParse(text string) Request {
	req, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("drf.MustParse(%q): %v", text, err))
	}
	return req
}

// parseState is a step of the request grammar. The steps run in a fixed
// order because the category must resolve before the range and the field
// is only legal after it.
type parseState uint8

const (
	awaitDevice parseState = iota
	awaitCategory
	awaitRange
	awaitField
	awaitEvent
	awaitEnd
	parseDone
)

// parser carries the partial request between states.
type parser struct {
	s        *scanner
	state    parseState
	device   Device
	category Category
	field    Field
	rng      Range
	event    Event
}

// Parse parses a DRF string. The whole input must be consumed; a valid
// prefix followed by anything else fails with ErrTrailingInput.
func Parse(text string) (Request, error) {
	p := &parser{s: newScanner(text)}
	for p.state != parseDone {
		if err := p.step(); err != nil {
			return Request{}, err
		}
	}
	return Request{
		Device:   p.device,
		Property: Property{category: p.category, field: p.field},
		Range:    p.rng,
		Event:    p.event,
	}, nil
}

func (p *parser) step() error {
	switch p.state {
	case awaitDevice:
		dev, hint, err := scanDevice(p.s)
		if err != nil {
			return err
		}
		p.device, p.category = dev, hint
		p.state = awaitCategory

	case awaitCategory:
		if c, ok := scanCategory(p.s); ok {
			p.category = c
		}
		p.field = p.category.DefaultField()
		p.state = awaitRange

	case awaitRange:
		rng, err := scanRange(p.s)
		if err != nil {
			return err
		}
		p.rng = rng
		p.state = awaitField

	case awaitField:
		if f, ok := scanField(p.s, p.category); ok {
			p.field = f
		}
		p.state = awaitEvent

	case awaitEvent:
		event, err := scanEvent(p.s)
		if err != nil {
			return err
		}
		p.event = event
		p.state = awaitEnd

	case awaitEnd:
		if !p.s.done() {
			return p.s.errorf(KindTrailingInput, p.s.pos, "unparsed %q", p.s.input[p.s.pos:])
		}
		p.state = parseDone
	}
	return nil
}
