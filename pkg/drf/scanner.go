package drf

import (
	"fmt"
	"strconv"
)

// eof is returned by peek at the end of input.
const eof = -1

// scanner is a byte cursor over a single DRF string. Every optional token is
// tried from a saved position and the position is restored on mismatch.
type scanner struct {
	input string
	pos   int
}

func newScanner(input string) *scanner {
	return &scanner{input: input}
}

func (s *scanner) peek() int {
	if s.pos >= len(s.input) {
		return eof
	}
	return int(s.input[s.pos])
}

func (s *scanner) peekAt(n int) int {
	if s.pos+n >= len(s.input) {
		return eof
	}
	return int(s.input[s.pos+n])
}

func (s *scanner) done() bool {
	return s.pos >= len(s.input)
}

// accept consumes c if it is the next byte.
func (s *scanner) accept(c byte) bool {
	if s.peek() == int(c) {
		s.pos++
		return true
	}
	return false
}

// run consumes the longest prefix whose bytes satisfy ok.
func (s *scanner) run(ok func(int) bool) string {
	start := s.pos
	for ok(s.peek()) {
		s.pos++
	}
	return s.input[start:s.pos]
}

// word consumes a token word: letters, digits and underscores.
func (s *scanner) word() string {
	return s.run(isWordChar)
}

// expectComma consumes the ',' that introduces a required event argument.
func (s *scanner) expectComma(what string) error {
	if !s.accept(',') {
		return s.errorf(KindMissingArgument, s.pos, "expected ',%s'", what)
	}
	return nil
}

// decimal consumes an unsigned decimal literal that fits in bits.
func (s *scanner) decimal(bits int, what string) (uint64, error) {
	return s.number(10, bits, what)
}

// hex consumes an unsigned hexadecimal literal that fits in bits.
func (s *scanner) hex(bits int, what string) (uint64, error) {
	return s.number(16, bits, what)
}

func (s *scanner) number(base, bits int, what string) (uint64, error) {
	start := s.pos
	digits := s.run(func(c int) bool { return isDigitIn(c, base) })
	if digits == "" {
		if s.done() {
			return 0, s.errorf(KindMissingArgument, start, "expected %s", what)
		}
		return 0, s.errorf(KindMalformedNumber, start, "expected %s", what)
	}
	v, err := strconv.ParseUint(digits, base, bits)
	if err != nil {
		return 0, s.errorf(KindMalformedNumber, start, "%s %q out of range", what, digits)
	}
	return v, nil
}

func (s *scanner) errorf(kind ErrorKind, pos int, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:   kind,
		Pos:    pos,
		Input:  s.input,
		Detail: fmt.Sprintf(format, args...),
	}
}

func isDigit(c int) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c int) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordChar(c int) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func isDigitIn(c, base int) bool {
	if isDigit(c) {
		return true
	}
	if base != 16 {
		return false
	}
	return (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// upper folds an ASCII letter to upper case.
func upper(c int) int {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
