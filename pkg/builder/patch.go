package builder

import "github.com/goliatone/go-formbuilder/pkg/field"

// Patch is a partial field update. Base attributes use pointers so "not
// provided" and "set to the zero value" stay distinct. Constraint payloads
// are replaced wholesale when provided: the editing surface owns the full
// current constraint set, so a partial constraint merge buys nothing but
// ambiguity. A payload whose kind does not match the field's type is
// ignored, which is what makes the field type immutable: removing a field
// and adding a new one is the only way to change its kind.
type Patch struct {
	Label       *string
	Placeholder *string
	Required    *bool

	Text     *field.TextConstraints
	Number   *field.NumberConstraints
	Date     *field.DateConstraints
	Dropdown *field.DropdownConstraints
}

func (p Patch) apply(f field.Field) field.Field {
	next := f.Clone()
	if p.Label != nil {
		next.Label = *p.Label
	}
	if p.Placeholder != nil {
		next.Placeholder = *p.Placeholder
	}
	if p.Required != nil {
		next.Required = *p.Required
	}

	switch f.Type {
	case field.TypeText:
		if p.Text != nil {
			c := *p.Text
			c.MinLength = clonedInt(p.Text.MinLength)
			c.MaxLength = clonedInt(p.Text.MaxLength)
			next.Text = &c
		}
	case field.TypeNumber:
		if p.Number != nil {
			c := *p.Number
			c.Min = clonedFloat(p.Number.Min)
			c.Max = clonedFloat(p.Number.Max)
			c.Step = clonedFloat(p.Number.Step)
			next.Number = &c
		}
	case field.TypeDate:
		if p.Date != nil {
			next.Date = mergeDate(f.Date, p.Date)
		}
	case field.TypeDropdown:
		if p.Dropdown != nil {
			next.Dropdown = &field.DropdownConstraints{
				Options: append([]string(nil), p.Dropdown.Options...),
			}
		}
	}
	return next
}

// mergeDate keeps FutureOnly and PastOnly mutually exclusive. When an update
// turns both on, the flag that was newly set wins and the previously active
// one is cleared.
func mergeDate(old, update *field.DateConstraints) *field.DateConstraints {
	c := *update
	c.MinAge = clonedInt(update.MinAge)
	c.MaxAge = clonedInt(update.MaxAge)
	if c.FutureOnly && c.PastOnly {
		if old != nil && old.FutureOnly {
			c.FutureOnly = false
		} else {
			c.PastOnly = false
		}
	}
	return &c
}

func clonedInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func clonedFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// String returns a pointer to v. Convenience for building patches inline.
func String(v string) *string { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
