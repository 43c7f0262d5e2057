package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlCatalog represents the YAML structure of a catalog file.
type yamlCatalog struct {
	Name        string        `yaml:"name,omitempty"`
	Description string        `yaml:"description,omitempty"`
	Requests    []yamlRequest `yaml:"requests"`
}

// yamlRequest represents one entry in YAML format.
type yamlRequest struct {
	Name        string `yaml:"name,omitempty"`
	DRF         string `yaml:"drf"`
	Description string `yaml:"description,omitempty"`
}

// parseYAML parses catalog data in YAML format.
func (b *builder) parseYAML(data []byte) error {
	var y yamlCatalog
	if err := yaml.Unmarshal(data, &y); err != nil {
		return fmt.Errorf("YAML parse error: %w", err)
	}
	b.catalog.Name = y.Name
	b.catalog.Description = y.Description

	lines, err := requestLines(data)
	if err != nil {
		return err
	}

	for i, r := range y.Requests {
		lineNum := 0
		if i < len(lines) {
			lineNum = lines[i]
		}
		text := strings.TrimSpace(r.DRF)
		if err := b.add(strings.TrimSpace(r.Name), text, strings.TrimSpace(r.Description), lineNum); err != nil {
			if lineNum > 0 {
				return fmt.Errorf("line %d: %w", lineNum, err)
			}
			return err
		}
	}
	return nil
}

// requestLines returns the source line of every item of the requests
// sequence, in order.
func requestLines(data []byte) ([]int, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("YAML node parse error: %w", err)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, nil
	}

	for i := 0; i < len(doc.Content)-1; i += 2 {
		keyNode := doc.Content[i]
		valueNode := doc.Content[i+1]
		if keyNode.Value != "requests" || valueNode.Kind != yaml.SequenceNode {
			continue
		}
		lines := make([]int, len(valueNode.Content))
		for j, item := range valueNode.Content {
			lines[j] = item.Line
		}
		return lines, nil
	}
	return nil, nil
}
