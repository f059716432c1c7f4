package validate

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

const (
	// MsgNameEmpty flags a blank form name.
	MsgNameEmpty = "Form name cannot be empty"
	// MsgLabelEmpty flags a field with a blank label.
	MsgLabelEmpty = "Label cannot be empty"
	// MsgOptionsEmpty flags a dropdown with no options at all.
	MsgOptionsEmpty = "Dropdown options cannot be empty"
	// MsgOptionsBlank flags a dropdown where some option is blank text.
	MsgOptionsBlank = "Dropdown options cannot be empty strings"
)

// FieldErrors carries the definition problems found on a single field.
type FieldErrors struct {
	Label   string `json:"label,omitempty"`
	Options string `json:"options,omitempty"`
}

// Empty reports whether the field has no definition errors.
func (e FieldErrors) Empty() bool {
	return e.Label == "" && e.Options == ""
}

// DefinitionErrors aggregates every definition problem in a draft, keyed by
// field id. It is transient, derived state: recomputed on each validation
// pass and discarded as fields are edited.
type DefinitionErrors struct {
	Name   string                 `json:"name,omitempty"`
	Fields map[string]FieldErrors `json:"fields"`
}

// NewDefinitionErrors returns an empty error set with the field map allocated.
func NewDefinitionErrors() DefinitionErrors {
	return DefinitionErrors{Fields: map[string]FieldErrors{}}
}

// OK reports whether the definition passed every check.
func (e DefinitionErrors) OK() bool {
	return e.Name == "" && len(e.Fields) == 0
}

// Clone deep-copies the error set so reducer transitions can prune entries
// without mutating the previous state.
func (e DefinitionErrors) Clone() DefinitionErrors {
	out := DefinitionErrors{Name: e.Name, Fields: make(map[string]FieldErrors, len(e.Fields))}
	for id, errs := range e.Fields {
		out.Fields[id] = errs
	}
	return out
}

// Definition checks the structural invariants of a form definition before it
// can be saved: a non-blank name, a non-blank label on every field, and a
// usable option list on every dropdown. Unlike value validation this pass
// accumulates across all fields so the caller can highlight every bad row at
// once. It is pure and cheap enough to run on every keystroke.
func Definition(name string, fields []field.Field) DefinitionErrors {
	errs := NewDefinitionErrors()
	if strings.TrimSpace(name) == "" {
		errs.Name = MsgNameEmpty
	}

	for _, f := range fields {
		var fe FieldErrors
		if strings.TrimSpace(f.Label) == "" {
			fe.Label = MsgLabelEmpty
		}
		if f.Type == field.TypeDropdown {
			fe.Options = dropdownOptionsError(f.Dropdown)
		}
		if !fe.Empty() {
			errs.Fields[f.ID] = fe
		}
	}
	return errs
}

// dropdownOptionsError applies the two mutually exclusive option checks:
// missing/empty list first, blank option text second.
func dropdownOptionsError(c *field.DropdownConstraints) string {
	if c == nil || len(c.Options) == 0 {
		return MsgOptionsEmpty
	}
	for _, option := range c.Options {
		if strings.TrimSpace(option) == "" {
			return MsgOptionsBlank
		}
	}
	return ""
}
