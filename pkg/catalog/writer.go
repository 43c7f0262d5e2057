package catalog

import (
	"bufio"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Write emits the catalog in the given format with canonical DRF strings.
// FormatAuto writes the format the catalog was read from.
func Write(w io.Writer, c *Catalog, format Format) error {
	if format == FormatAuto {
		format = c.Format
	}
	switch format {
	case FormatYAML:
		return WriteYAML(w, c)
	default:
		return WriteKeyValue(w, c)
	}
}

// WriteKeyValue emits the catalog in key=value format with names aligned.
func WriteKeyValue(w io.Writer, c *Catalog) error {
	bw := bufio.NewWriter(w)

	if c.Name != "" {
		fmt.Fprintf(bw, "# %s\n", c.Name)
	}
	if c.Description != "" {
		fmt.Fprintf(bw, "# %s\n", c.Description)
	}
	if c.Name != "" || c.Description != "" {
		fmt.Fprintln(bw)
	}

	width := 0
	for _, e := range c.Entries {
		width = max(width, len(e.Name))
	}

	for _, e := range c.Entries {
		line := fmt.Sprintf("%-*s = %s", width, e.Name, e.Canonical())
		if e.Description != "" {
			line += "  # " + e.Description
		}
		fmt.Fprintln(bw, line)
	}

	return bw.Flush()
}

// WriteYAML emits the catalog as a YAML document.
func WriteYAML(w io.Writer, c *Catalog) error {
	y := yamlCatalog{
		Name:        c.Name,
		Description: c.Description,
		Requests:    make([]yamlRequest, 0, len(c.Entries)),
	}
	for _, e := range c.Entries {
		y.Requests = append(y.Requests, yamlRequest{
			Name:        e.Name,
			DRF:         e.Canonical(),
			Description: e.Description,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(y); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
