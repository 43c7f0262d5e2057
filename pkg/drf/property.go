package drf

import (
	"fmt"
	"strings"
)

//go:generate go run ../../cmd/drf-vocabgen -vocab ../../docs/vocab.yaml -output .

// Categories returns every category in declaration order.
func Categories() []Category {
	cats := make([]Category, numCategories)
	for i := range cats {
		cats[i] = Category(i)
	}
	return cats
}

// Valid reports whether c is a declared category.
func (c Category) Valid() bool {
	return int(c) < numCategories
}

// String returns the category name, e.g. "LongName".
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
	return categoryNames[c]
}

// Token returns the canonical category token without the leading dot.
func (c Category) Token() string {
	if !c.Valid() {
		return ""
	}
	return categoryTokens[c]
}

// DefaultField returns the field used when no field token is present.
func (c Category) DefaultField() Field {
	if !c.Valid() {
		return FieldNone
	}
	return categoryDefaults[c]
}

// HasFields reports whether the category carries a field.
func (c Category) HasFields() bool {
	return c.DefaultField() != FieldNone
}

// Fields returns the fields legal for the category in declaration order.
func (c Category) Fields() []Field {
	var fields []Field
	for f := FieldNone + 1; int(f) < len(fieldTokens); f++ {
		if c.Allows(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// Allows reports whether f is a legal field for the category. FieldNone is
// legal exactly for categories without fields.
func (c Category) Allows(f Field) bool {
	if !c.Valid() || !f.Valid() {
		return false
	}
	if f == FieldNone {
		return !c.HasFields()
	}
	got, ok := fieldLookup[c][fieldTokens[f]]
	return ok && got == f
}

// LookupCategory resolves a category token, canonical or alias, ignoring case.
func LookupCategory(token string) (Category, bool) {
	c, ok := categoryLookup[strings.ToUpper(token)]
	return c, ok
}

// Valid reports whether f is a declared field.
func (f Field) Valid() bool {
	return int(f) < len(fieldTokens)
}

// String returns the field name, e.g. "ExtendedText".
func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", uint8(f))
	}
	return fieldNames[f]
}

// Token returns the canonical field token without the leading dot.
func (f Field) Token() string {
	if !f.Valid() {
		return ""
	}
	return fieldTokens[f]
}

// LookupField resolves a field token legal for category c, ignoring case.
func LookupField(c Category, token string) (Field, bool) {
	if !c.Valid() {
		return FieldNone, false
	}
	f, ok := fieldLookup[c][strings.ToUpper(token)]
	return f, ok
}

// Property is a category together with the field selected within it.
type Property struct {
	category Category
	field    Field
}

// NewProperty builds a property, rejecting fields the category does not define.
func NewProperty(c Category, f Field) (Property, error) {
	if !c.Valid() {
		return Property{}, fmt.Errorf("%w: unknown category %d", ErrIllegalField, uint8(c))
	}
	if !c.Allows(f) {
		return Property{}, fmt.Errorf("%w: %s has no field %s", ErrIllegalField, c, f)
	}
	return Property{category: c, field: f}, nil
}

// DefaultProperty returns the category with its default field.
func DefaultProperty(c Category) Property {
	return Property{category: c, field: c.DefaultField()}
}

// Category returns the property category.
func (p Property) Category() Category {
	return p.category
}

// Field returns the selected field, FieldNone for categories without fields.
func (p Property) Field() Field {
	return p.field
}

// Canonical returns the category and field fragments of the canonical form,
// for example (".STATUS", ".ON"). The field fragment is empty for categories
// without fields.
func (p Property) Canonical() (category, field string) {
	category = "." + p.category.Token()
	if p.field != FieldNone {
		field = "." + p.field.Token()
	}
	return category, field
}

// String returns the category and field fragments joined.
func (p Property) String() string {
	c, f := p.Canonical()
	return c + f
}

// scanCategory tries to consume an explicit category token. On mismatch
// nothing is consumed.
func scanCategory(s *scanner) (Category, bool) {
	mark := s.pos
	if !s.accept('.') {
		return 0, false
	}
	if c, ok := LookupCategory(s.word()); ok {
		return c, true
	}
	s.pos = mark
	return 0, false
}

// scanField tries to consume a field token from the vocabulary of c. On
// mismatch nothing is consumed.
func scanField(s *scanner, c Category) (Field, bool) {
	mark := s.pos
	if !c.HasFields() || !s.accept('.') {
		return FieldNone, false
	}
	if f, ok := LookupField(c, s.word()); ok {
		return f, true
	}
	s.pos = mark
	return FieldNone, false
}
