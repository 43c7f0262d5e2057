package catalog

import (
	"sort"

	"github.com/drf-protocol/drf-go/pkg/drf"
)

// Format identifies a catalog file syntax.
type Format int

const (
	// FormatAuto detects the format from the content.
	FormatAuto Format = iota
	// FormatKeyValue is the NAME = DRF line format.
	FormatKeyValue
	// FormatYAML is the YAML document format.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatKeyValue:
		return "kv"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat resolves a format name as printed by String. "keyvalue" and
// "yml" are accepted as well.
func ParseFormat(name string) (Format, bool) {
	switch name {
	case "auto", "":
		return FormatAuto, true
	case "kv", "keyvalue":
		return FormatKeyValue, true
	case "yaml", "yml":
		return FormatYAML, true
	default:
		return FormatAuto, false
	}
}

// Entry is one named request of a catalog.
type Entry struct {
	// Name identifies the entry within the catalog.
	Name string

	// Text is the DRF string as written in the source.
	Text string

	// Request is the parsed request.
	Request drf.Request

	// Description is the optional free-text comment.
	Description string

	// LineNumber is the line number in the source file (1-based).
	LineNumber int

	// Unnamed is true when the name was generated from the line number.
	Unnamed bool
}

// Canonical returns the canonical DRF string of the entry.
func (e Entry) Canonical() string {
	return e.Request.Canonical()
}

// IsCanonical reports whether the entry was written in canonical form.
func (e Entry) IsCanonical() bool {
	return e.Text == e.Request.Canonical()
}

// Catalog is a parsed catalog file.
type Catalog struct {
	// Name and Description are optional catalog metadata (YAML only).
	Name        string
	Description string

	// Entries contains all parsed entries in source order.
	Entries []Entry

	// ByName provides fast lookup by entry name. When names repeat the
	// last entry wins.
	ByName map[string]Entry

	// Format is the syntax the catalog was read from.
	Format Format

	// SourceFile is the path the catalog was loaded from, if any.
	SourceFile string
}

// NewCatalog creates a new empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Entries: make([]Entry, 0),
		ByName:  make(map[string]Entry),
	}
}

// Add appends an entry.
func (c *Catalog) Add(e Entry) {
	c.Entries = append(c.Entries, e)
	c.ByName[e.Name] = e
}

// Get returns the entry with the given name.
func (c *Catalog) Get(name string) (Entry, bool) {
	e, ok := c.ByName[name]
	return e, ok
}

// Request returns the parsed request with the given name.
func (c *Catalog) Request(name string) (drf.Request, bool) {
	e, ok := c.ByName[name]
	return e.Request, ok
}

// Names returns the entry names in source order, without repeats.
func (c *Catalog) Names() []string {
	seen := make(map[string]bool, len(c.Entries))
	names := make([]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		if !seen[e.Name] {
			seen[e.Name] = true
			names = append(names, e.Name)
		}
	}
	return names
}

// Categories counts entries per property category.
func (c *Catalog) Categories() map[drf.Category]int {
	counts := make(map[drf.Category]int)
	for _, e := range c.Entries {
		counts[e.Request.Property.Category()]++
	}
	return counts
}

// Devices returns the distinct device names, sorted.
func (c *Catalog) Devices() []string {
	seen := make(map[string]bool)
	var devices []string
	for _, e := range c.Entries {
		d := e.Request.Device.String()
		if !seen[d] {
			seen[d] = true
			devices = append(devices, d)
		}
	}
	sort.Strings(devices)
	return devices
}

// Requests returns the parsed requests in source order.
func (c *Catalog) Requests() []drf.Request {
	reqs := make([]drf.Request, len(c.Entries))
	for i, e := range c.Entries {
		reqs[i] = e.Request
	}
	return reqs
}
