// Package conformance loads and runs YAML conformance vectors for the DRF
// grammar.
package conformance

import (
	"strconv"
	"time"
)

// Case is a single conformance vector.
type Case struct {
	// ID is the unique case identifier (e.g., "RANGE-003").
	ID string `yaml:"id"`

	// Input is the DRF text handed to the parser.
	Input string `yaml:"input"`

	// Canonical is the expected canonical form. Exactly one of Canonical
	// and Error is set.
	Canonical string `yaml:"canonical,omitempty"`

	// Error is the expected error kind name (e.g., "trailing_input").
	Error string `yaml:"error,omitempty"`

	// Pos is the expected error offset, checked only when set.
	Pos *int `yaml:"pos,omitempty"`

	// Description explains what the case covers.
	Description string `yaml:"description,omitempty"`

	// Line is the source line of the case (0 if unknown).
	Line int `yaml:"-"`
}

// ExpectsError reports whether the case expects the input to be rejected.
func (c *Case) ExpectsError() bool {
	return c.Error != ""
}

// Suite is a named collection of cases.
type Suite struct {
	// Name of the suite.
	Name string `yaml:"name"`

	// Description of what this suite covers.
	Description string `yaml:"description,omitempty"`

	// Cases in file order.
	Cases []*Case `yaml:"cases"`

	// File is the path the suite was loaded from, if any.
	File string `yaml:"-"`
}

// LoadError provides details about a suite loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Line is the line number where the error occurred (0 if unknown).
	Line int

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	loc := e.File
	if e.Line > 0 {
		loc += ":" + strconv.Itoa(e.Line)
	}
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if loc == "" {
		return msg
	}
	return loc + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// CaseResult is the outcome of running one case.
type CaseResult struct {
	Case *Case

	// Passed is true when every check held.
	Passed bool

	// Got is the canonical output, empty when parsing failed.
	Got string

	// GotError is the parse error, nil when parsing succeeded.
	GotError error

	// Failures lists every check that did not hold.
	Failures []string

	Duration time.Duration
}

// SuiteResult is the outcome of running a suite.
type SuiteResult struct {
	SuiteName string
	Results   []*CaseResult
	PassCount int
	FailCount int
	Duration  time.Duration
}

// Passed reports whether every case passed.
func (r *SuiteResult) Passed() bool {
	return r.FailCount == 0
}
