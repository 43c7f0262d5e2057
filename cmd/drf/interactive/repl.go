// Package interactive provides the interactive DRF prompt.
package interactive

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/drf-protocol/drf-go/pkg/drf"
	drflog "github.com/drf-protocol/drf-go/pkg/log"
	"github.com/drf-protocol/drf-go/pkg/wire"
)

// Session parses lines typed at the prompt. Lines that are not commands
// are parsed as DRF strings.
type Session struct {
	tracer  *drflog.Tracer
	out     io.Writer
	rl      *readline.Instance
	history []drf.Request
	lines   int
}

// New creates a session reading from the terminal.
func New(tracer *drflog.Tracer) (*Session, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "drf> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := NewWithWriter(tracer, rl.Stdout())
	s.rl = rl
	return s, nil
}

// NewWithWriter creates a session without a terminal. Input is given to
// Handle and output goes to w.
func NewWithWriter(tracer *drflog.Tracer, w io.Writer) *Session {
	return &Session{tracer: tracer, out: w}
}

// History returns the requests accepted so far, oldest first.
func (s *Session) History() []drf.Request {
	return s.history
}

// Run reads lines until quit, EOF, or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	if s.rl == nil {
		return errors.New("interactive: session has no terminal")
	}
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}

		if !s.Handle(line) {
			return nil
		}
	}
}

// Handle processes one input line. It returns false when the session
// should end.
func (s *Session) Handle(line string) bool {
	s.lines++
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	rest := strings.TrimSpace(input[len(parts[0]):])

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "show", "s":
		s.cmdShow(rest)

	case "encode", "e":
		s.cmdEncode(rest)

	case "history", "h":
		s.cmdHistory()

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return false

	default:
		if req, ok := s.parse(input); ok {
			fmt.Fprintln(s.out, req.Canonical())
		}
	}
	return true
}

// parse parses text, records it, and reports errors to the output.
func (s *Session) parse(text string) (drf.Request, bool) {
	req, err := s.tracer.ParseFrom(fmt.Sprintf("line %d", s.lines), text)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		var pe *drf.ParseError
		if errors.As(err, &pe) {
			fmt.Fprintf(s.out, "  %s\n  %s^\n", pe.Input, strings.Repeat(" ", pe.Pos))
		}
		return drf.Request{}, false
	}
	s.history = append(s.history, req)
	return req, true
}

// target returns the request named by an argument: a DRF string, or the
// last accepted request when the argument is empty.
func (s *Session) target(arg string) (drf.Request, bool) {
	if arg != "" {
		return s.parse(arg)
	}
	if len(s.history) == 0 {
		fmt.Fprintln(s.out, "Nothing parsed yet")
		return drf.Request{}, false
	}
	return s.history[len(s.history)-1], true
}

func (s *Session) cmdShow(arg string) {
	req, ok := s.target(arg)
	if !ok {
		return
	}

	category, field := req.Property.Canonical()
	fmt.Fprintf(s.out, "  canonical  %s\n", req.Canonical())
	fmt.Fprintf(s.out, "  device     %s\n", req.Device)
	fmt.Fprintf(s.out, "  property   %s%s\n", strings.TrimPrefix(category, "."), field)

	rng := "none"
	if !req.Range.IsImplicit() {
		rng = fmt.Sprintf("%s %s", req.Range.Kind(), req.Range)
	}
	fmt.Fprintf(s.out, "  range      %s\n", rng)

	event := "default"
	if req.Event.Kind() != drf.EventDefault {
		event = fmt.Sprintf("%s %s", req.Event.Kind(), strings.TrimPrefix(req.Event.String(), "@"))
	}
	fmt.Fprintf(s.out, "  event      %s\n", event)
}

func (s *Session) cmdEncode(arg string) {
	req, ok := s.target(arg)
	if !ok {
		return
	}

	data, err := wire.EncodeRequest(req)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%s (%d bytes)\n", hex.EncodeToString(data), len(data))
}

func (s *Session) cmdHistory() {
	if len(s.history) == 0 {
		fmt.Fprintln(s.out, "Nothing parsed yet")
		return
	}
	for i, req := range s.history {
		fmt.Fprintf(s.out, "%3d  %s\n", i+1, req.Canonical())
	}
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, `
DRF Commands:
  <drf>              - Parse and print the canonical form
  show [drf]         - Show the parts of a request (default: last one)
  encode [drf]       - Print the CBOR wire encoding as hex
  history            - List accepted requests
  help               - Show this help
  quit               - Exit`)
}
