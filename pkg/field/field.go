package field

import "github.com/google/uuid"

// Type enumerates the supported field kinds.
type Type string

const (
	TypeText     Type = "text"
	TypeNumber   Type = "number"
	TypeDate     Type = "date"
	TypeDropdown Type = "dropdown"
)

// Valid reports whether t names a known field kind.
func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeNumber, TypeDate, TypeDropdown:
		return true
	}
	return false
}

// Field models one input slot in a form. The Type tag selects exactly one of
// the constraint payloads; the payloads for the other kinds stay nil, so a
// date field can never carry a pattern and a text field can never carry a
// numeric bound.
type Field struct {
	ID          string `json:"id"`
	Type        Type   `json:"type"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required,omitempty"`

	Text     *TextConstraints     `json:"text,omitempty"`
	Number   *NumberConstraints   `json:"number,omitempty"`
	Date     *DateConstraints     `json:"date,omitempty"`
	Dropdown *DropdownConstraints `json:"dropdown,omitempty"`
}

// TextConstraints bound the character length and shape of a text value.
// Pointer bounds distinguish "unset" from an explicit zero.
type TextConstraints struct {
	MinLength      *int   `json:"minLength,omitempty"`
	MaxLength      *int   `json:"maxLength,omitempty"`
	Pattern        string `json:"pattern,omitempty"`
	PatternMessage string `json:"patternMessage,omitempty"`
}

// NumberConstraints bound a numeric value.
type NumberConstraints struct {
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	Step         *float64 `json:"step,omitempty"`
	IntegerOnly  bool     `json:"integerOnly,omitempty"`
	PositiveOnly bool     `json:"positiveOnly,omitempty"`
}

// DateConstraints bound a calendar date. MinDate and MaxDate hold ISO dates
// (yyyy-mm-dd). FutureOnly and PastOnly are mutually exclusive; the builder
// enforces that when applying updates. MinAge and MaxAge carry birthdate
// semantics measured in whole years.
type DateConstraints struct {
	MinDate    string `json:"minDate,omitempty"`
	MaxDate    string `json:"maxDate,omitempty"`
	FutureOnly bool   `json:"futureOnly,omitempty"`
	PastOnly   bool   `json:"pastOnly,omitempty"`
	MinAge     *int   `json:"minAge,omitempty"`
	MaxAge     *int   `json:"maxAge,omitempty"`
}

// DropdownConstraints hold the option list. Order is meaningful (display
// order and the value domain) and duplicates are preserved as-is.
type DropdownConstraints struct {
	Options []string `json:"options"`
}

// New creates a field of the given kind with a fresh id, empty label, and the
// matching constraint payload allocated but unset. Dropdown fields start with
// a single blank option so editing surfaces have a row to type into.
func New(t Type) Field {
	f := Field{
		ID:   uuid.NewString(),
		Type: t,
	}
	switch t {
	case TypeText:
		f.Text = &TextConstraints{}
	case TypeNumber:
		f.Number = &NumberConstraints{}
	case TypeDate:
		f.Date = &DateConstraints{}
	case TypeDropdown:
		f.Dropdown = &DropdownConstraints{Options: []string{""}}
	}
	return f
}

// NewText creates an unconstrained text field.
func NewText() Field { return New(TypeText) }

// NewNumber creates an unconstrained number field.
func NewNumber() Field { return New(TypeNumber) }

// NewDate creates an unconstrained date field.
func NewDate() Field { return New(TypeDate) }

// NewDropdown creates a dropdown field with a single blank option.
func NewDropdown() Field { return New(TypeDropdown) }

// Clone returns a deep copy of the field, including its constraint payload.
func (f Field) Clone() Field {
	out := f
	if f.Text != nil {
		c := *f.Text
		c.MinLength = cloneIntPtr(f.Text.MinLength)
		c.MaxLength = cloneIntPtr(f.Text.MaxLength)
		out.Text = &c
	}
	if f.Number != nil {
		c := *f.Number
		c.Min = cloneFloatPtr(f.Number.Min)
		c.Max = cloneFloatPtr(f.Number.Max)
		c.Step = cloneFloatPtr(f.Number.Step)
		out.Number = &c
	}
	if f.Date != nil {
		c := *f.Date
		c.MinAge = cloneIntPtr(f.Date.MinAge)
		c.MaxAge = cloneIntPtr(f.Date.MaxAge)
		out.Date = &c
	}
	if f.Dropdown != nil {
		c := DropdownConstraints{Options: append([]string(nil), f.Dropdown.Options...)}
		out.Dropdown = &c
	}
	return out
}

// CloneAll deep-copies a field list.
func CloneAll(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = f.Clone()
	}
	return out
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Int returns a pointer to v. Convenience for building constraints inline.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
