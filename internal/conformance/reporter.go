package conformance

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Reporter formats and outputs suite results.
type Reporter interface {
	// ReportSuite reports results for a suite.
	ReportSuite(result *SuiteResult)

	// ReportCase reports results for a single case.
	ReportCase(result *CaseResult)
}

// TextReporter outputs human-readable text reports.
type TextReporter struct {
	writer  io.Writer
	verbose bool
}

// NewTextReporter creates a new text reporter. Passing cases are listed
// only when verbose is set.
func NewTextReporter(w io.Writer, verbose bool) *TextReporter {
	return &TextReporter{
		writer:  w,
		verbose: verbose,
	}
}

// ReportSuite reports suite results in text format.
func (r *TextReporter) ReportSuite(result *SuiteResult) {
	fmt.Fprintf(r.writer, "=== Suite: %s ===\n", result.SuiteName)

	for _, cr := range result.Results {
		if cr.Passed && !r.verbose {
			continue
		}
		r.ReportCase(cr)
	}

	total := result.PassCount + result.FailCount
	fmt.Fprintf(r.writer, "--- %d/%d passed", result.PassCount, total)
	if total > 0 {
		rate := float64(result.PassCount) / float64(total) * 100
		fmt.Fprintf(r.writer, " (%.1f%%)", rate)
	}
	fmt.Fprintf(r.writer, " in %s\n", result.Duration.Round(time.Microsecond))
}

// ReportCase reports a single case result in text format.
func (r *TextReporter) ReportCase(result *CaseResult) {
	c := result.Case

	status := "PASS"
	if !result.Passed {
		status = "FAIL"
	}

	fmt.Fprintf(r.writer, "[%s] %s %q\n", status, c.ID, c.Input)
	if r.verbose && c.Description != "" {
		fmt.Fprintf(r.writer, "       %s\n", c.Description)
	}
	for _, f := range result.Failures {
		fmt.Fprintf(r.writer, "       %s\n", f)
	}
}

// JSONReporter outputs JSON-formatted reports.
type JSONReporter struct {
	writer io.Writer
	pretty bool
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(w io.Writer, pretty bool) *JSONReporter {
	return &JSONReporter{
		writer: w,
		pretty: pretty,
	}
}

// JSONSuiteResult is the JSON representation of suite results.
type JSONSuiteResult struct {
	SuiteName string           `json:"suite_name"`
	Duration  string           `json:"duration"`
	Total     int              `json:"total"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	PassRate  float64          `json:"pass_rate"`
	Cases     []JSONCaseResult `json:"cases"`
}

// JSONCaseResult is the JSON representation of a case result.
type JSONCaseResult struct {
	ID       string   `json:"id"`
	Input    string   `json:"input"`
	Status   string   `json:"status"`
	Expected string   `json:"expected"`
	Got      string   `json:"got,omitempty"`
	Error    string   `json:"error,omitempty"`
	Failures []string `json:"failures,omitempty"`
}

// ReportSuite reports suite results in JSON format.
func (r *JSONReporter) ReportSuite(result *SuiteResult) {
	total := result.PassCount + result.FailCount
	var passRate float64
	if total > 0 {
		passRate = float64(result.PassCount) / float64(total) * 100
	}

	jr := JSONSuiteResult{
		SuiteName: result.SuiteName,
		Duration:  result.Duration.Round(time.Microsecond).String(),
		Total:     total,
		Passed:    result.PassCount,
		Failed:    result.FailCount,
		PassRate:  passRate,
		Cases:     make([]JSONCaseResult, 0, len(result.Results)),
	}
	for _, cr := range result.Results {
		jr.Cases = append(jr.Cases, caseToJSON(cr))
	}

	r.writeJSON(jr)
}

// ReportCase reports a single case result in JSON format.
func (r *JSONReporter) ReportCase(result *CaseResult) {
	r.writeJSON(caseToJSON(result))
}

func caseToJSON(result *CaseResult) JSONCaseResult {
	c := result.Case

	status := "passed"
	if !result.Passed {
		status = "failed"
	}
	expected := c.Canonical
	if c.ExpectsError() {
		expected = c.Error
	}

	jr := JSONCaseResult{
		ID:       c.ID,
		Input:    c.Input,
		Status:   status,
		Expected: expected,
		Got:      result.Got,
		Failures: result.Failures,
	}
	if result.GotError != nil {
		jr.Error = result.GotError.Error()
	}
	return jr
}

func (r *JSONReporter) writeJSON(v any) {
	var data []byte
	var err error

	if r.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		fmt.Fprintf(r.writer, `{"error": "failed to marshal: %s"}`, err)
		return
	}

	fmt.Fprintln(r.writer, string(data))
}
