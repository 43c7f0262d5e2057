package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RawVocab is the DRF vocabulary loaded from YAML.
type RawVocab struct {
	Fields     []RawFieldDef    `yaml:"fields"`
	Categories []RawCategoryDef `yaml:"categories"`
}

// RawFieldDef describes a single field selector.
type RawFieldDef struct {
	Name    string   `yaml:"name"`    // Go identifier suffix, e.g. "ExtendedText"
	Token   string   `yaml:"token"`   // canonical token, e.g. "EXTENDED_TEXT"
	Aliases []string `yaml:"aliases"` // input-only spellings
}

// RawCategoryDef describes a property category and the fields it accepts.
type RawCategoryDef struct {
	Name    string   `yaml:"name"`
	Token   string   `yaml:"token"`
	Aliases []string `yaml:"aliases"`
	Default string   `yaml:"default"` // empty for categories without fields
	Fields  []string `yaml:"fields"`
}

// ParseVocab parses a vocabulary definition from YAML bytes.
func ParseVocab(data []byte) (*RawVocab, error) {
	var v RawVocab
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing vocabulary: %w", err)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

// LoadVocab loads and parses a vocabulary definition from a file.
func LoadVocab(path string) (*RawVocab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseVocab(data)
}

// Validate checks that names are unique, every referenced field exists, and
// no two spellings collide within the same lookup table.
func (v *RawVocab) Validate() error {
	if len(v.Categories) == 0 {
		return fmt.Errorf("vocabulary has no categories")
	}
	if len(v.Categories) > 255 || len(v.Fields) > 254 {
		return fmt.Errorf("vocabulary too large for uint8 enums")
	}

	fields := make(map[string]RawFieldDef, len(v.Fields))
	for _, f := range v.Fields {
		if f.Name == "" || f.Token == "" {
			return fmt.Errorf("field definition missing name or token")
		}
		if f.Name == "None" {
			return fmt.Errorf("field name %q is reserved", f.Name)
		}
		if _, dup := fields[f.Name]; dup {
			return fmt.Errorf("duplicate field %s", f.Name)
		}
		fields[f.Name] = f
	}

	categoryTokens := make(map[string]string)
	seen := make(map[string]bool)
	for _, c := range v.Categories {
		if c.Name == "" || c.Token == "" {
			return fmt.Errorf("category definition missing name or token")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate category %s", c.Name)
		}
		seen[c.Name] = true

		for _, tok := range append([]string{c.Token}, c.Aliases...) {
			key := strings.ToUpper(tok)
			if owner, dup := categoryTokens[key]; dup {
				return fmt.Errorf("category token %s used by both %s and %s", key, owner, c.Name)
			}
			categoryTokens[key] = c.Name
		}

		if len(c.Fields) == 0 {
			if c.Default != "" {
				return fmt.Errorf("category %s has a default field but no fields", c.Name)
			}
			continue
		}

		fieldTokens := make(map[string]string)
		hasDefault := false
		for _, name := range c.Fields {
			f, ok := fields[name]
			if !ok {
				return fmt.Errorf("category %s references unknown field %s", c.Name, name)
			}
			if name == c.Default {
				hasDefault = true
			}
			for _, tok := range append([]string{f.Token}, f.Aliases...) {
				key := strings.ToUpper(tok)
				if owner, dup := fieldTokens[key]; dup {
					return fmt.Errorf("category %s: field token %s used by both %s and %s", c.Name, key, owner, name)
				}
				fieldTokens[key] = name
			}
		}
		if !hasDefault {
			return fmt.Errorf("category %s: default field %q is not one of its fields", c.Name, c.Default)
		}
	}

	return nil
}

// field returns the field definition with the given name.
func (v *RawVocab) field(name string) RawFieldDef {
	for _, f := range v.Fields {
		if f.Name == name {
			return f
		}
	}
	return RawFieldDef{}
}
