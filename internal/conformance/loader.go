package conformance

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/drf-protocol/drf-go/pkg/drf"
)

// ParseSuite parses a suite from YAML bytes and validates every case.
func ParseSuite(data []byte) (*Suite, error) {
	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	lines := caseLines(data)
	for i, c := range suite.Cases {
		if i < len(lines) {
			c.Line = lines[i]
		}
	}

	if err := validateSuite(&suite); err != nil {
		return nil, err
	}
	return &suite, nil
}

// LoadSuite loads a suite from a file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	suite, err := ParseSuite(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{
			File:    path,
			Message: err.Error(),
		}
	}

	suite.File = path
	if suite.Name == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return suite, nil
}

// LoadDirectory loads every .yaml or .yml suite in dir.
func LoadDirectory(dir string) ([]*Suite, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{
			File:    dir,
			Message: "failed to read directory",
			Cause:   err,
		}
	}

	var suites []*Suite
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		suite, err := LoadSuite(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	return suites, nil
}

func validateSuite(suite *Suite) error {
	if len(suite.Cases) == 0 {
		return &LoadError{Message: "suite must have at least one case"}
	}

	seen := make(map[string]int)
	for _, c := range suite.Cases {
		fail := func(msg string) error {
			return &LoadError{Line: c.Line, Message: msg}
		}

		switch {
		case c.ID == "":
			return fail("case ID is required")
		case c.Canonical == "" && c.Error == "":
			return fail("case " + c.ID + " needs canonical or error")
		case c.Canonical != "" && c.Error != "":
			return fail("case " + c.ID + " has both canonical and error")
		case c.Pos != nil && c.Error == "":
			return fail("case " + c.ID + " sets pos without error")
		}

		if c.Error != "" {
			if _, ok := drf.ParseErrorKind(c.Error); !ok {
				return fail("case " + c.ID + " names unknown error kind " + c.Error)
			}
		}

		if line, dup := seen[c.ID]; dup {
			msg := "duplicate case ID " + c.ID
			if line > 0 {
				msg += " (first on line " + strconv.Itoa(line) + ")"
			}
			return fail(msg)
		}
		seen[c.ID] = c.Line
	}
	return nil
}

// caseLines returns the source line of every item of the cases sequence.
func caseLines(data []byte) []int {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		if key.Value != "cases" || value.Kind != yaml.SequenceNode {
			continue
		}
		lines := make([]int, len(value.Content))
		for j, item := range value.Content {
			lines[j] = item.Line
		}
		return lines
	}
	return nil
}
