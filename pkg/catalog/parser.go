package catalog

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/drf-protocol/drf-go/pkg/drf"
)

// ErrDuplicateName is returned in strict mode when two entries share a name.
var ErrDuplicateName = errors.New("duplicate entry name")

// ErrMissingRequest is returned when an entry has a name but no DRF text.
var ErrMissingRequest = errors.New("missing request")

// ParseFunc parses one DRF string. origin locates the text, for example
// "file.drf:3". *log.Tracer's ParseFrom satisfies it.
type ParseFunc func(origin, text string) (drf.Request, error)

func defaultParse(_, text string) (drf.Request, error) {
	return drf.Parse(text)
}

// detectFormat examines the data to determine if it's key=value or YAML format.
func detectFormat(data []byte) Format {
	lines := bytes.Split(data, []byte("\n"))
	for _, line := range lines {
		trimmed := bytes.TrimSpace(line)

		// Skip empty lines and comments
		if len(trimmed) == 0 || trimmed[0] == '#' {
			continue
		}

		if bytes.HasPrefix(trimmed, []byte("requests:")) ||
			bytes.HasPrefix(trimmed, []byte("- ")) ||
			bytes.HasPrefix(line, []byte("  ")) {
			return FormatYAML
		}

		if nameLineRegex.Match(trimmed) {
			return FormatKeyValue
		}

		// DRF text never contains ": ", YAML mappings always do.
		if bytes.Contains(trimmed, []byte(": ")) || bytes.HasSuffix(trimmed, []byte(":")) {
			return FormatYAML
		}

		return FormatKeyValue
	}

	// Empty defaults to key=value
	return FormatKeyValue
}

// ParseOptions configures catalog parsing behavior.
type ParseOptions struct {
	// Format specifies the input format. Use FormatAuto to auto-detect.
	Format Format
	// Strict rejects duplicate entry names.
	Strict bool
	// Parse replaces drf.Parse, for example to trace every entry.
	Parse ParseFunc
}

// Parser parses catalog files.
type Parser struct {
	// Strict rejects duplicate entry names.
	Strict bool

	// ParseFn replaces drf.Parse when set.
	ParseFn ParseFunc
}

// NewParser creates a new catalog parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile parses a catalog file from the filesystem.
func (p *Parser) ParseFile(path string) (*Catalog, error) {
	return p.ParseFileWithOptions(path, p.options())
}

// ParseFileWithOptions parses a catalog file with explicit options.
func (p *Parser) ParseFileWithOptions(path string, opts ParseOptions) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	c, err := p.parse(data, opts, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.SourceFile = path
	return c, nil
}

// Parse parses a catalog from a reader with auto-detection.
func (p *Parser) Parse(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return p.ParseBytes(data)
}

// ParseBytes parses catalog data from a byte slice with auto-detection.
func (p *Parser) ParseBytes(data []byte) (*Catalog, error) {
	return p.ParseBytesWithOptions(data, p.options())
}

// ParseBytesWithOptions parses catalog data with explicit options.
func (p *Parser) ParseBytesWithOptions(data []byte, opts ParseOptions) (*Catalog, error) {
	return p.parse(data, opts, "")
}

// ParseString parses a catalog from a string with auto-detection.
func (p *Parser) ParseString(s string) (*Catalog, error) {
	return p.ParseBytes([]byte(s))
}

func (p *Parser) options() ParseOptions {
	return ParseOptions{Format: FormatAuto, Strict: p.Strict, Parse: p.ParseFn}
}

func (p *Parser) parse(data []byte, opts ParseOptions, source string) (*Catalog, error) {
	format := opts.Format
	if format == FormatAuto {
		format = detectFormat(data)
	}

	b := &builder{
		catalog: NewCatalog(),
		strict:  opts.Strict,
		parse:   opts.Parse,
		source:  source,
	}
	if b.parse == nil {
		b.parse = defaultParse
	}

	var err error
	switch format {
	case FormatYAML:
		err = b.parseYAML(data)
	default:
		err = b.parseKeyValue(data)
	}
	if err != nil {
		return nil, err
	}

	b.catalog.Format = format
	return b.catalog, nil
}

// builder accumulates entries for one parse.
type builder struct {
	catalog *Catalog
	strict  bool
	parse   ParseFunc
	source  string
}

func (b *builder) origin(line int) string {
	if b.source == "" {
		return fmt.Sprintf("line %d", line)
	}
	return fmt.Sprintf("%s:%d", b.source, line)
}

// add parses text and appends the entry. An empty name becomes line<N>.
func (b *builder) add(name, text, description string, line int) error {
	if text == "" {
		return fmt.Errorf("%w for %q", ErrMissingRequest, name)
	}

	req, err := b.parse(b.origin(line), text)
	if err != nil {
		return err
	}

	entry := Entry{
		Name:        name,
		Text:        text,
		Request:     req,
		Description: description,
		LineNumber:  line,
	}
	if entry.Name == "" {
		entry.Name = fmt.Sprintf("line%d", line)
		entry.Unnamed = true
	}

	if prev, dup := b.catalog.ByName[entry.Name]; dup && b.strict {
		return fmt.Errorf("%w %q (first defined on line %d)", ErrDuplicateName, entry.Name, prev.LineNumber)
	}
	b.catalog.Add(entry)
	return nil
}

// nameLineRegex matches the NAME = prefix of a named key=value line.
var nameLineRegex = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.\-]*)\s*=`)

// parseKeyValue parses catalog data in key=value format.
func (b *builder) parseKeyValue(data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, text, description := splitLine(line)
		if err := b.add(name, text, description, lineNum); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	return nil
}

// splitLine splits "NAME = DRF # comment" into its parts. '#' never occurs
// in DRF text, so the first one starts the comment.
func splitLine(line string) (name, text, description string) {
	if idx := strings.Index(line, "#"); idx != -1 {
		description = strings.TrimSpace(line[idx+1:])
		line = strings.TrimSpace(line[:idx])
	}

	if m := nameLineRegex.FindStringSubmatchIndex(line); m != nil {
		name = line[m[2]:m[3]]
		line = line[m[1]:]
	}
	return name, strings.TrimSpace(line), description
}
