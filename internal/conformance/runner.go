package conformance

import (
	"errors"
	"fmt"
	"time"

	"github.com/drf-protocol/drf-go/pkg/drf"
)

// ParseFunc parses one DRF string. origin names the case, for example
// "vectors.yaml:12". *log.Tracer's ParseFrom satisfies it.
type ParseFunc func(origin, text string) (drf.Request, error)

// Runner executes conformance suites.
type Runner struct {
	// Parse replaces drf.Parse when set.
	Parse ParseFunc

	now func() time.Time
}

// NewRunner creates a runner that uses parse, or drf.Parse when parse is nil.
func NewRunner(parse ParseFunc) *Runner {
	return &Runner{Parse: parse}
}

// WithClock sets the time source used for case and suite durations.
// A nil now restores time.Now.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// Run executes a suite with drf.Parse.
func Run(suite *Suite) *SuiteResult {
	return NewRunner(nil).Run(suite)
}

// Run executes every case of the suite in order.
func (r *Runner) Run(suite *Suite) *SuiteResult {
	now := r.clock()
	start := now()

	result := &SuiteResult{
		SuiteName: suite.Name,
		Results:   make([]*CaseResult, 0, len(suite.Cases)),
	}
	for _, c := range suite.Cases {
		cr := r.RunCase(suite, c)
		if cr.Passed {
			result.PassCount++
		} else {
			result.FailCount++
		}
		result.Results = append(result.Results, cr)
	}

	result.Duration = now().Sub(start)
	return result
}

// RunCase executes a single case.
func (r *Runner) RunCase(suite *Suite, c *Case) *CaseResult {
	parse := r.Parse
	if parse == nil {
		parse = func(_, text string) (drf.Request, error) { return drf.Parse(text) }
	}
	now := r.clock()

	start := now()
	req, err := parse(origin(suite, c), c.Input)
	cr := &CaseResult{Case: c, Duration: now().Sub(start), GotError: err}
	if err == nil {
		cr.Got = req.Canonical()
	}

	if c.ExpectsError() {
		checkError(cr, err)
	} else {
		checkCanonical(cr, req, err)
	}

	cr.Passed = len(cr.Failures) == 0
	return cr
}

func (r *Runner) clock() func() time.Time {
	if r.now != nil {
		return r.now
	}
	return time.Now
}

func (cr *CaseResult) failf(format string, args ...any) {
	cr.Failures = append(cr.Failures, fmt.Sprintf(format, args...))
}

func checkCanonical(cr *CaseResult, req drf.Request, err error) {
	c := cr.Case
	if err != nil {
		cr.failf("expected %q, got error: %v", c.Canonical, err)
		return
	}
	if cr.Got != c.Canonical {
		cr.failf("canonical = %q, want %q", cr.Got, c.Canonical)
	}

	again, err := drf.Parse(cr.Got)
	if err != nil {
		cr.failf("canonical form %q does not parse: %v", cr.Got, err)
		return
	}
	if again != req {
		cr.failf("canonical form %q parses to a different request", cr.Got)
	}
	if got := again.Canonical(); got != cr.Got {
		cr.failf("canonical form is not stable: %q renders as %q", cr.Got, got)
	}
}

func checkError(cr *CaseResult, err error) {
	c := cr.Case
	if err == nil {
		cr.failf("expected %s error, parsed as %q", c.Error, cr.Got)
		return
	}

	var pe *drf.ParseError
	if !errors.As(err, &pe) {
		cr.failf("expected %s error, got %v", c.Error, err)
		return
	}
	if got := pe.Kind.String(); got != c.Error {
		cr.failf("error kind = %s, want %s", got, c.Error)
	}
	if c.Pos != nil && pe.Pos != *c.Pos {
		cr.failf("error offset = %d, want %d", pe.Pos, *c.Pos)
	}
}

func origin(suite *Suite, c *Case) string {
	switch {
	case suite.File != "" && c.Line > 0:
		return fmt.Sprintf("%s:%d", suite.File, c.Line)
	case suite.Name != "":
		return suite.Name + "/" + c.ID
	default:
		return c.ID
	}
}
