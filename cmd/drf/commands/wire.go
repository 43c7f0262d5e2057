package commands

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/drf-protocol/drf-go/pkg/drf"
	drflog "github.com/drf-protocol/drf-go/pkg/log"
	"github.com/drf-protocol/drf-go/pkg/wire"
)

// EncodeOptions configures the encode command.
type EncodeOptions struct {
	CommonOptions
	Canonical bool
	Batch     bool
	Inputs    []string
}

// RunEncode prints the CBOR wire encoding of each argument as hex.
func RunEncode(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := EncodeOptions{}
	addCommonFlags(fs, &opts.CommonOptions)
	fs.BoolVar(&opts.Canonical, "canonical", false, "Include the canonical text in each message")
	fs.BoolVar(&opts.Batch, "batch", false, "Encode all arguments as one batch")

	if err := fs.Parse(args); err != nil {
		if isHelp(err) {
			printEncodeUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	opts.Inputs = fs.Args()

	if len(opts.Inputs) == 0 {
		fmt.Fprintln(stderr, "Error: no DRF string specified")
		printEncodeUsage(stderr)
		return exitCommandError
	}

	env, err := setup(fs, &opts.CommonOptions, drflog.SourceArgs, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer env.close()

	reqs := make([]drf.Request, 0, len(opts.Inputs))
	for i, text := range opts.Inputs {
		req, err := env.tracer.ParseFrom(fmt.Sprintf("arg %d", i+1), text)
		if err != nil {
			printParseError(stderr, err)
			return exitValidation
		}
		reqs = append(reqs, req)
	}

	if opts.Batch {
		data, err := wire.EncodeBatch(reqs)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		fmt.Fprintln(stdout, hex.EncodeToString(data))
		return exitSuccess
	}

	for _, req := range reqs {
		encode := wire.EncodeRequest
		if opts.Canonical {
			encode = wire.EncodeRequestWithCanonical
		}
		data, err := encode(req)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		fmt.Fprintln(stdout, hex.EncodeToString(data))
	}
	return exitSuccess
}

// DecodeOptions configures the decode command.
type DecodeOptions struct {
	CommonOptions
	Batch  bool
	Inputs []string
}

// RunDecode prints the canonical form of each hex-encoded wire message.
func RunDecode(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := DecodeOptions{}
	addCommonFlags(fs, &opts.CommonOptions)
	fs.BoolVar(&opts.Batch, "batch", false, "Each argument is a batch")

	if err := fs.Parse(args); err != nil {
		if isHelp(err) {
			printDecodeUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	opts.Inputs = fs.Args()

	if len(opts.Inputs) == 0 {
		fmt.Fprintln(stderr, "Error: no message specified")
		printDecodeUsage(stderr)
		return exitCommandError
	}

	env, err := setup(fs, &opts.CommonOptions, drflog.SourceWire, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer env.close()

	failed := false
	for i, input := range opts.Inputs {
		data, err := hex.DecodeString(strings.TrimSpace(input))
		if err != nil {
			fmt.Fprintf(stderr, "Error: argument %d: invalid hex: %v\n", i+1, err)
			failed = true
			continue
		}

		var reqs []drf.Request
		if opts.Batch {
			reqs, err = wire.DecodeBatch(data)
		} else {
			var req drf.Request
			req, err = wire.DecodeRequest(data)
			reqs = []drf.Request{req}
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: argument %d: %v\n", i+1, err)
			failed = true
			continue
		}

		for _, req := range reqs {
			// Re-parse the rendered text so the trace records what was received.
			if _, err := env.tracer.ParseFrom(fmt.Sprintf("arg %d", i+1), req.Canonical()); err != nil {
				env.logger.Error("decoded request does not re-parse", "canonical", req.Canonical(), "error", err)
			}
			fmt.Fprintln(stdout, req.Canonical())
		}
	}

	if failed {
		return exitValidation
	}
	return exitSuccess
}

func printEncodeUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: drf encode [options] <drf...>

Options:
  -canonical       Include the canonical text in each message
  -batch           Encode all arguments as one batch message

Examples:
  drf encode 'M|OUTTMP.On@e,02'
  drf encode -batch M:OUTTMP M|OUTTMP`)
}

func printDecodeUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: drf decode [options] <hex...>

Options:
  -batch           Each argument is a batch message

Examples:
  drf decode a301684d3a4f5554544d5002000303`)
}
