package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
)

var funcMap = template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}

var templates = template.Must(template.New("").Funcs(funcMap).Parse(vocabTmpl))

// vocabData holds pre-computed data for the vocabulary template.
type vocabData struct {
	Source     string
	Categories []categoryData
	Fields     []RawFieldDef
	Lookup     []lookupEntry
}

type categoryData struct {
	Name    string
	Token   string
	Default string
	Fields  []lookupEntry
}

// lookupEntry maps one accepted spelling to the constant it resolves to.
type lookupEntry struct {
	Token string
	Const string
}

// GenerateVocab renders the Go source for the vocabulary tables.
func GenerateVocab(v *RawVocab, source string) (string, error) {
	data := vocabData{
		Source: filepath.Base(source),
		Fields: v.Fields,
	}

	for _, c := range v.Categories {
		cd := categoryData{
			Name:    c.Name,
			Token:   c.Token,
			Default: "FieldNone",
		}
		if c.Default != "" {
			cd.Default = "Field" + c.Default
		}
		for _, tok := range append([]string{c.Token}, c.Aliases...) {
			data.Lookup = append(data.Lookup, lookupEntry{
				Token: strings.ToUpper(tok),
				Const: "Category" + c.Name,
			})
		}
		for _, name := range c.Fields {
			f := v.field(name)
			for _, tok := range append([]string{f.Token}, f.Aliases...) {
				cd.Fields = append(cd.Fields, lookupEntry{
					Token: strings.ToUpper(tok),
					Const: "Field" + f.Name,
				})
			}
		}
		data.Categories = append(data.Categories, cd)
	}

	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, "vocab", data); err != nil {
		return "", fmt.Errorf("template vocab: %w", err)
	}
	return b.String(), nil
}

const vocabTmpl = `{{define "vocab"}}// Code generated by drf-vocabgen from {{.Source}}. DO NOT EDIT.

package drf

// Category identifies the data facet of a device that a request addresses.
type Category uint8

// Category values.
const (
{{- range $i, $c := .Categories}}
	Category{{$c.Name}}{{if eq $i 0}} Category = iota{{end}}
{{- end}}
)

const numCategories = {{len .Categories}}

// Field selects a sub-element within a category. FieldNone is carried by
// categories that have no fields.
type Field uint8

// Field values.
const (
	FieldNone Field = iota
{{- range .Fields}}
	Field{{.Name}}
{{- end}}
)

var categoryNames = [...]string{
{{- range .Categories}}
	Category{{.Name}}: {{quote .Name}},
{{- end}}
}

var categoryTokens = [...]string{
{{- range .Categories}}
	Category{{.Name}}: {{quote .Token}},
{{- end}}
}

var categoryDefaults = [...]Field{
{{- range .Categories}}
	Category{{.Name}}: {{.Default}},
{{- end}}
}

// categoryLookup maps every accepted category spelling to its category.
var categoryLookup = map[string]Category{
{{- range .Lookup}}
	{{quote .Token}}: {{.Const}},
{{- end}}
}

var fieldNames = [...]string{
	FieldNone: "None",
{{- range .Fields}}
	Field{{.Name}}: {{quote .Name}},
{{- end}}
}

var fieldTokens = [...]string{
	FieldNone: "",
{{- range .Fields}}
	Field{{.Name}}: {{quote .Token}},
{{- end}}
}

// fieldLookup maps, per category, every accepted field spelling to its field.
// Categories without fields have no table.
var fieldLookup = [numCategories]map[string]Field{
{{- range .Categories}}
{{- if .Fields}}
	Category{{.Name}}: {
{{- range .Fields}}
		{{quote .Token}}: {{.Const}},
{{- end}}
	},
{{- end}}
{{- end}}
}
{{end}}`
