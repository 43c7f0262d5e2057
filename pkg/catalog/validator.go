package catalog

import (
	"fmt"
)

// ValidationError represents a catalog validation finding.
type ValidationError struct {
	Entry   string
	Message string
	Line    int
}

func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Entry, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Entry, e.Message)
}

// ValidationResult contains the results of catalog validation.
type ValidationResult struct {
	// Valid is true if the catalog passed all validation checks.
	Valid bool

	// Errors contains all validation errors.
	Errors []ValidationError

	// Warnings contains non-fatal issues.
	Warnings []ValidationError
}

// AddError adds a validation error.
func (r *ValidationResult) AddError(entry, message string, line int) {
	r.Errors = append(r.Errors, ValidationError{Entry: entry, Message: message, Line: line})
	r.Valid = false
}

// AddWarning adds a validation warning.
func (r *ValidationResult) AddWarning(entry, message string, line int) {
	r.Warnings = append(r.Warnings, ValidationError{Entry: entry, Message: message, Line: line})
}

// Validator checks catalogs for problems the parser accepts.
type Validator struct {
	// Strict turns non-canonical spellings and unnamed entries into errors.
	Strict bool
}

// NewValidator creates a new catalog validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates a catalog.
func (v *Validator) Validate(c *Catalog) *ValidationResult {
	result := &ValidationResult{Valid: true}

	v.checkDuplicateNames(c, result)
	v.checkDuplicateRequests(c, result)
	v.checkCanonical(c, result)
	v.checkUnnamed(c, result)

	return result
}

// report adds an error in strict mode and a warning otherwise.
func (v *Validator) report(result *ValidationResult, entry, message string, line int) {
	if v.Strict {
		result.AddError(entry, message, line)
		return
	}
	result.AddWarning(entry, message, line)
}

func (v *Validator) checkDuplicateNames(c *Catalog, result *ValidationResult) {
	first := make(map[string]int)
	for _, e := range c.Entries {
		if line, ok := first[e.Name]; ok {
			result.AddError(e.Name, fmt.Sprintf("name already defined on line %d", line), e.LineNumber)
			continue
		}
		first[e.Name] = e.LineNumber
	}
}

func (v *Validator) checkDuplicateRequests(c *Catalog, result *ValidationResult) {
	byCanonical := make(map[string]string)
	for _, e := range c.Entries {
		canon := e.Canonical()
		if other, ok := byCanonical[canon]; ok && other != e.Name {
			result.AddWarning(e.Name, fmt.Sprintf("same request as %s: %s", other, canon), e.LineNumber)
			continue
		}
		byCanonical[canon] = e.Name
	}
}

func (v *Validator) checkCanonical(c *Catalog, result *ValidationResult) {
	for _, e := range c.Entries {
		if !e.IsCanonical() {
			v.report(result, e.Name, fmt.Sprintf("not canonical: %q, canonical form is %q", e.Text, e.Canonical()), e.LineNumber)
		}
	}
}

func (v *Validator) checkUnnamed(c *Catalog, result *ValidationResult) {
	for _, e := range c.Entries {
		if e.Unnamed {
			v.report(result, e.Name, "entry has no name", e.LineNumber)
		}
	}
}
