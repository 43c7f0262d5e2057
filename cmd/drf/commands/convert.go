package commands

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/drf-protocol/drf-go/pkg/catalog"
	drflog "github.com/drf-protocol/drf-go/pkg/log"
)

// ConvertOptions configures the convert command.
type ConvertOptions struct {
	CommonOptions
	To     string // kv, yaml, or empty to keep the input format
	Output string // Empty means stdout
	Input  string
}

// RunConvert rewrites a catalog with canonical DRF strings, optionally in
// the other format.
func RunConvert(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := ConvertOptions{}
	addCommonFlags(fs, &opts.CommonOptions)
	fs.StringVar(&opts.To, "to", "", "Output format: kv, yaml (default: input format)")
	fs.StringVar(&opts.Output, "o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		if isHelp(err) {
			printConvertUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		opts.Input = remaining[0]
	}

	if opts.Input == "" {
		fmt.Fprintln(stderr, "Error: no input file specified")
		printConvertUsage(stderr)
		return exitCommandError
	}

	format, ok := catalog.ParseFormat(opts.To)
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown format %q\n", opts.To)
		return exitCommandError
	}

	env, err := setup(fs, &opts.CommonOptions, drflog.SourceCatalog, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer env.close()

	parser := &catalog.Parser{ParseFn: env.tracer.ParseFrom}
	c, err := parser.ParseFile(opts.Input)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing input: %v\n", err)
		return exitValidation
	}

	var buf bytes.Buffer
	if err := catalog.Write(&buf, c, format); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	if opts.Output == "" || opts.Output == "-" {
		stdout.Write(buf.Bytes())
		return exitSuccess
	}

	if err := os.WriteFile(opts.Output, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return exitCommandError
	}
	fmt.Fprintf(stdout, "Converted %s -> %s\n", opts.Input, opts.Output)
	return exitSuccess
}

func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: drf convert [options] <catalog>

Options:
  -to fmt          kv or yaml (default: input format)
  -o file          Output file (default: stdout)

Examples:
  drf convert -to yaml linac.drf -o linac.yaml
  drf convert linac.drf > linac.canonical.drf`)
}
