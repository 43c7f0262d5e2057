// Command drf-log is a tool for viewing and analyzing DRF parse traces.
//
// Trace files are written by the drf tool when it runs with the -trace flag
// (or trace_file in its configuration). Each record is one parse attempt.
//
// Usage:
//
//	drf-log <command> [flags] <file.dlog>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSON or CSV format
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View all parses
//	drf-log view session.dlog
//
//	# View only rejected parses
//	drf-log view -errors session.dlog
//
//	# Export to CSV
//	drf-log export -format csv -o session.csv session.dlog
//
//	# Keep only trailing-input failures
//	drf-log filter -error-kind trailing_input -o trailing.dlog session.dlog
//
//	# Show statistics
//	drf-log stats session.dlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/drf-protocol/drf-go/cmd/drf-log/commands"
)

const usage = `drf-log - DRF Parse Trace Analyzer

Usage:
  drf-log <command> [flags] <file.dlog>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSON or CSV format
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "drf-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `drf-log view - View trace file in human-readable format

Usage:
  drf-log view [flags] <file.dlog>

Flags:
`)
		fs.PrintDefaults()
	}

	errorsOnly := fs.Bool("errors", false, "Show only rejected parses")
	session := fs.String("session", "", "Filter by session ID")
	source := fs.String("source", "", "Filter by source (args, stdin, catalog, repl, conformance, wire)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	filter := commands.ViewFilter{
		ErrorsOnly: *errorsOnly,
		SessionID:  *session,
	}

	if *source != "" {
		s, err := commands.ParseSourceFlag(*source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Source = &s
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `drf-log export - Export trace file to JSON or CSV format

Usage:
  drf-log export [flags] <file.dlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunExport(fs.Arg(0), *format, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `drf-log filter - Filter trace file and write to new file

Usage:
  drf-log filter [flags] <file.dlog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	session := fs.String("session", "", "Filter by session ID")
	source := fs.String("source", "", "Filter by source (args, stdin, catalog, repl, conformance, wire)")
	outcome := fs.String("outcome", "", "Filter by outcome (accepted, rejected)")
	category := fs.String("category", "", "Filter accepted parses by category token (e.g. STATUS)")
	errorKind := fs.String("error-kind", "", "Filter rejected parses by error kind (e.g. trailing_input)")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.FilterOptions{
		Output:    *output,
		SessionID: *session,
		Source:    *source,
		Outcome:   *outcome,
		Category:  *category,
		ErrorKind: *errorKind,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
	}

	count, err := commands.RunFilter(fs.Arg(0), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Filtered %d events to %s\n", count, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `drf-log stats - Show statistics about the trace file

Usage:
  drf-log stats <file.dlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunStats(fs.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
