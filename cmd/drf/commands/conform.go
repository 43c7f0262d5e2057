package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/drf-protocol/drf-go/internal/conformance"
	drflog "github.com/drf-protocol/drf-go/pkg/log"
)

// ConformOptions configures the conform command.
type ConformOptions struct {
	CommonOptions
	JSON    bool
	Verbose bool
	Paths   []string
}

// RunConform runs conformance vector suites. A path may be a suite file or
// a directory of suites.
func RunConform(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("conform", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := ConformOptions{}
	addCommonFlags(fs, &opts.CommonOptions)
	fs.BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	fs.BoolVar(&opts.Verbose, "v", false, "List passing cases too")

	if err := fs.Parse(args); err != nil {
		if isHelp(err) {
			printConformUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	opts.Paths = fs.Args()

	if len(opts.Paths) == 0 {
		fmt.Fprintln(stderr, "Error: no vector files specified")
		printConformUsage(stderr)
		return exitCommandError
	}

	env, err := setup(fs, &opts.CommonOptions, drflog.SourceConformance, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer env.close()

	suites, err := loadSuites(opts.Paths)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	var reporter conformance.Reporter = conformance.NewTextReporter(stdout, opts.Verbose)
	if opts.JSON {
		reporter = conformance.NewJSONReporter(stdout, true)
	}

	runner := conformance.NewRunner(env.tracer.ParseFrom)
	failed := false
	for _, suite := range suites {
		result := runner.Run(suite)
		env.logger.Debug("suite finished", "suite", suite.Name, "passed", result.PassCount, "failed", result.FailCount)
		reporter.ReportSuite(result)
		if !result.Passed() {
			failed = true
		}
	}

	if failed {
		return exitValidation
	}
	return exitSuccess
}

func loadSuites(paths []string) ([]*conformance.Suite, error) {
	var suites []*conformance.Suite
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if info.IsDir() {
			dir, err := conformance.LoadDirectory(path)
			if err != nil {
				return nil, err
			}
			suites = append(suites, dir...)
			continue
		}

		suite, err := conformance.LoadSuite(path)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	return suites, nil
}

func printConformUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: drf conform [options] <vectors.yaml|dir...>

Options:
  -json            Output results as JSON
  -v               List passing cases too
  -trace file      Append a CBOR parse trace to file

Examples:
  drf conform testdata/vectors.yaml
  drf conform -json -v testdata/`)
}
