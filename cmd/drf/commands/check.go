package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/drf-protocol/drf-go/pkg/catalog"
	drflog "github.com/drf-protocol/drf-go/pkg/log"
)

// CheckOptions configures the check command.
type CheckOptions struct {
	CommonOptions
	Strict  bool
	JSON    bool
	Verbose bool
	Files   []string
}

// CheckOutput is the check result for one catalog file.
type CheckOutput struct {
	Valid    bool          `json:"valid"`
	Format   string        `json:"format,omitempty"`
	Entries  int           `json:"entries"`
	Errors   []IssueOutput `json:"errors,omitempty"`
	Warnings []IssueOutput `json:"warnings,omitempty"`
}

// IssueOutput is one catalog finding.
type IssueOutput struct {
	Entry   string `json:"entry,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// RunCheck parses and validates catalog files.
func RunCheck(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := CheckOptions{}
	addCommonFlags(fs, &opts.CommonOptions)
	fs.BoolVar(&opts.Strict, "strict", false, "Reject duplicates, non-canonical and unnamed entries")
	fs.BoolVar(&opts.JSON, "json", false, "Output results as JSON")
	fs.BoolVar(&opts.Verbose, "v", false, "Show warnings")

	if err := fs.Parse(args); err != nil {
		if isHelp(err) {
			printCheckUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	opts.Files = fs.Args()

	if len(opts.Files) == 0 {
		fmt.Fprintln(stderr, "Error: no files specified")
		printCheckUsage(stderr)
		return exitCommandError
	}

	env, err := setup(fs, &opts.CommonOptions, drflog.SourceCatalog, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer env.close()
	overrideBool(fs, "strict", &opts.Strict, env.config.Strict)

	parser := &catalog.Parser{Strict: opts.Strict, ParseFn: env.tracer.ParseFrom}
	validator := &catalog.Validator{Strict: opts.Strict}

	hasErrors := false
	results := make(map[string]*CheckOutput)

	for _, file := range opts.Files {
		result := checkFile(file, parser, validator)
		results[file] = result
		env.logger.Debug("checked catalog", "file", file, "valid", result.Valid, "entries", result.Entries)

		if !result.Valid {
			hasErrors = true
		}
		if !opts.JSON {
			printCheckResult(stdout, file, result, opts.Verbose)
		}
	}

	if opts.JSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(stdout, string(output))
	}

	if hasErrors {
		return exitValidation
	}
	return exitSuccess
}

func checkFile(path string, parser *catalog.Parser, validator *catalog.Validator) *CheckOutput {
	output := &CheckOutput{Valid: true}

	c, err := parser.ParseFile(path)
	if err != nil {
		output.Valid = false
		output.Errors = append(output.Errors, IssueOutput{Message: err.Error()})
		return output
	}

	output.Format = c.Format.String()
	output.Entries = len(c.Entries)

	result := validator.Validate(c)
	output.Valid = result.Valid
	for _, e := range result.Errors {
		output.Errors = append(output.Errors, IssueOutput{Entry: e.Entry, Message: e.Message, Line: e.Line})
	}
	for _, w := range result.Warnings {
		output.Warnings = append(output.Warnings, IssueOutput{Entry: w.Entry, Message: w.Message, Line: w.Line})
	}
	return output
}

func printCheckResult(w io.Writer, file string, result *CheckOutput, verbose bool) {
	switch {
	case result.Valid && len(result.Warnings) == 0:
		fmt.Fprintf(w, "%s: OK (%d entries)\n", file, result.Entries)
		return
	case result.Valid:
		fmt.Fprintf(w, "%s: OK (%d entries, %d warnings)\n", file, result.Entries, len(result.Warnings))
	default:
		fmt.Fprintf(w, "%s: FAILED (%d errors, %d warnings)\n", file, len(result.Errors), len(result.Warnings))
	}

	for _, e := range result.Errors {
		printIssue(w, "ERROR", e)
	}
	if verbose {
		for _, warn := range result.Warnings {
			printIssue(w, "WARNING", warn)
		}
	}
}

func printIssue(w io.Writer, level string, issue IssueOutput) {
	switch {
	case issue.Line > 0:
		fmt.Fprintf(w, "  %s [line %d] %s: %s\n", level, issue.Line, issue.Entry, issue.Message)
	case issue.Entry != "":
		fmt.Fprintf(w, "  %s %s: %s\n", level, issue.Entry, issue.Message)
	default:
		fmt.Fprintf(w, "  %s %s\n", level, issue.Message)
	}
}

func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: drf check [options] <catalog...>

Options:
  -strict          Reject duplicate names, non-canonical and unnamed entries
  -json            Output results as JSON
  -v               Show warnings
  -trace file      Append a CBOR parse trace to file
  -log-level lvl   debug, info, warn, error [default: warn]
  -config file     YAML configuration file

Examples:
  drf check linac.drf
  drf check -strict -json catalogs/*.yaml`)
}
