package drf

import (
	"fmt"
	"strings"
)

// RangeKind distinguishes the forms of Range.
type RangeKind uint8

const (
	// RangeArray selects array elements by index.
	RangeArray RangeKind = iota
	// RangeFull is the explicit empty bracket, "[]" or "{}".
	RangeFull
	// RangeRaw selects bytes by offset and length.
	RangeRaw
)

// String returns the kind name.
func (k RangeKind) String() string {
	switch k {
	case RangeArray:
		return "Array"
	case RangeFull:
		return "Full"
	case RangeRaw:
		return "Raw"
	default:
		return fmt.Sprintf("RangeKind(%d)", uint8(k))
	}
}

// Range restricts a request to part of the device data.
//
// The zero value is ArrayRange(0, 0), the implicit "no restriction" marker
// produced when no bracket is present. It is distinct from FullRange, which
// is produced only by an explicit empty bracket; the two render differently.
type Range struct {
	kind  RangeKind
	start uint32 // array start index or raw byte offset
	end   uint32 // array end index or raw byte length
	open  bool   // end omitted: through the last element or byte
}

// NoRange returns the implicit range used when no bracket is present.
func NoRange() Range {
	return Range{}
}

// FullRange returns the explicit empty-bracket range.
func FullRange() Range {
	return Range{kind: RangeFull}
}

// ArrayRange selects array elements start through end inclusive.
func ArrayRange(start, end uint16) Range {
	return Range{kind: RangeArray, start: uint32(start), end: uint32(end)}
}

// OpenArrayRange selects array elements from start through the last one.
// Starting at 0 selects everything and yields FullRange.
func OpenArrayRange(start uint16) Range {
	if start == 0 {
		return FullRange()
	}
	return Range{kind: RangeArray, start: uint32(start), open: true}
}

// RawRange selects length bytes starting at offset.
func RawRange(offset, length uint32) Range {
	return Range{kind: RangeRaw, start: offset, end: length}
}

// OpenRawRange selects every byte from offset onward. Starting at 0 selects
// everything and yields FullRange.
func OpenRawRange(offset uint32) Range {
	if offset == 0 {
		return FullRange()
	}
	return Range{kind: RangeRaw, start: offset, open: true}
}

// Kind returns the range form.
func (r Range) Kind() RangeKind {
	return r.kind
}

// Start returns the array start index or raw byte offset.
func (r Range) Start() uint32 {
	return r.start
}

// End returns the array end index or raw byte length, and false when the
// range is open-ended.
func (r Range) End() (uint32, bool) {
	return r.end, !r.open
}

// IsOpen reports whether the end was omitted.
func (r Range) IsOpen() bool {
	return r.open
}

// IsImplicit reports whether r is the "no restriction" marker, which
// renders as an empty string.
func (r Range) IsImplicit() bool {
	return r == NoRange()
}

// Canonical returns the canonical range fragment.
func (r Range) Canonical() string {
	switch r.kind {
	case RangeFull:
		return "[]"
	case RangeRaw:
		switch {
		case r.open:
			return fmt.Sprintf("{%d:}", r.start)
		case r.end == 1:
			return fmt.Sprintf("{%d}", r.start)
		default:
			return fmt.Sprintf("{%d:%d}", r.start, r.end)
		}
	default:
		switch {
		case r.IsImplicit():
			return ""
		case r.open:
			return fmt.Sprintf("[%d:]", r.start)
		case r.start == r.end:
			return fmt.Sprintf("[%d]", r.start)
		default:
			return fmt.Sprintf("[%d:%d]", r.start, r.end)
		}
	}
}

// String returns the canonical range fragment.
func (r Range) String() string {
	return r.Canonical()
}

// scanRange consumes an optional bracketed range. Without a bracket nothing
// is consumed and the implicit range is returned.
func scanRange(s *scanner) (Range, error) {
	switch s.peek() {
	case '[':
		return scanBracket(s, ']', 16, RangeArray)
	case '{':
		return scanBracket(s, '}', 32, RangeRaw)
	default:
		return NoRange(), nil
	}
}

// scanBracket parses "<open>[start][:[end]]<close>". A missing start means
// 0. An empty bracket, or one that starts at 0 and has no end, is the
// explicit full range.
func scanBracket(s *scanner, closer byte, bits int, kind RangeKind) (Range, error) {
	openPos := s.pos
	s.pos++

	var (
		start, end   uint64
		hasStart     bool
		hasColon     bool
		hasEnd       bool
		err          error
		startNumeral = s.pos
	)

	if isDigit(s.peek()) {
		if start, err = s.decimal(bits, "range start"); err != nil {
			return Range{}, err
		}
		hasStart = true
	}

	if s.accept(':') {
		hasColon = true
		if isDigit(s.peek()) {
			if end, err = s.decimal(bits, "range end"); err != nil {
				return Range{}, err
			}
			hasEnd = true
		}
	}

	if !s.accept(closer) {
		switch c := s.peek(); {
		case c == eof:
			return Range{}, s.errorf(KindUnterminatedBracket, openPos, "missing %q", closer)
		case strings.IndexByte("]}", byte(c)) >= 0:
			return Range{}, s.errorf(KindUnterminatedBracket, s.pos, "expected %q, found %q", closer, byte(c))
		case isWordChar(c):
			return Range{}, s.errorf(KindMalformedNumber, startNumeral, "bad range numeral")
		default:
			return Range{}, s.errorf(KindMalformedNumber, s.pos, "unexpected %q in range", byte(c))
		}
	}

	switch {
	case !hasStart && !hasColon:
		return FullRange(), nil
	case hasColon && !hasEnd:
		if kind == RangeRaw {
			return OpenRawRange(uint32(start)), nil
		}
		return OpenArrayRange(uint16(start)), nil
	}

	if kind == RangeRaw {
		length := uint32(1)
		if hasColon {
			length = uint32(end)
		}
		return RawRange(uint32(start), length), nil
	}

	if !hasColon {
		end = start
	}
	return ArrayRange(uint16(start), uint16(end)), nil
}
