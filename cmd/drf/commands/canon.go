package commands

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/drf-protocol/drf-go/pkg/drf"
	drflog "github.com/drf-protocol/drf-go/pkg/log"
)

// CanonOptions configures the canon command.
type CanonOptions struct {
	CommonOptions
	Inputs []string
}

// RunCanon prints the canonical form of each argument, or of each line of
// stdin when there are no arguments.
func RunCanon(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("canon", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := CanonOptions{}
	addCommonFlags(fs, &opts.CommonOptions)

	if err := fs.Parse(args); err != nil {
		if isHelp(err) {
			printCanonUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	opts.Inputs = fs.Args()

	source := drflog.SourceArgs
	if len(opts.Inputs) == 0 {
		source = drflog.SourceStdin
	}

	env, err := setup(fs, &opts.CommonOptions, source, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer env.close()

	failed := 0
	canon := func(origin, text string) {
		req, err := env.tracer.ParseFrom(origin, text)
		if err != nil {
			failed++
			printParseError(stderr, err)
			return
		}
		fmt.Fprintln(stdout, req.Canonical())
	}

	if len(opts.Inputs) > 0 {
		for i, text := range opts.Inputs {
			canon(fmt.Sprintf("arg %d", i+1), text)
		}
	} else {
		scanner := bufio.NewScanner(stdin)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			text := strings.TrimSpace(scanner.Text())
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}
			canon(fmt.Sprintf("line %d", lineNum), text)
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(stderr, "Error reading input: %v\n", err)
			return exitCommandError
		}
	}

	if failed > 0 {
		env.logger.Info("rejected inputs", "count", failed)
		return exitValidation
	}
	return exitSuccess
}

// printParseError writes the error with a caret under the failure offset.
func printParseError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	var pe *drf.ParseError
	if errors.As(err, &pe) {
		fmt.Fprintf(w, "  %s\n  %s^\n", pe.Input, strings.Repeat(" ", pe.Pos))
	}
}

func printCanonUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: drf canon [options] [drf...]

Prints the canonical form of each DRF string. Without arguments, reads one
DRF string per line from stdin; blank lines and # comments are skipped.

Options:
  -trace file      Append a CBOR parse trace to file
  -log-level lvl   debug, info, warn, error [default: warn]
  -config file     YAML configuration file

Examples:
  drf canon 'M|OUTTMP.On@e,02'
  drf canon -trace session.dlog < requests.txt`)
}
