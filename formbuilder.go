// Package formbuilder assembles form definitions, validates them and the
// answers submitted against them, and renders them for data entry. The root
// package re-exports the main entry points so most callers need a single
// import; the pkg/ subpackages remain available for finer-grained use.
package formbuilder

import (
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/validate"
)

// Field is one input slot in a form definition.
type Field = field.Field

// FieldType tags the supported field kinds.
type FieldType = field.Type

// Field kind tags.
const (
	TypeText     = field.TypeText
	TypeNumber   = field.TypeNumber
	TypeDate     = field.TypeDate
	TypeDropdown = field.TypeDropdown
)

// State is a form-builder draft; Action is a reducer transition request.
type (
	State  = builder.State
	Action = builder.Action
)

// Form and Submission are the persisted aggregates.
type (
	Form       = form.Form
	Submission = form.Submission
)

// DefinitionErrors aggregates definition problems keyed by field id.
type DefinitionErrors = validate.DefinitionErrors

// NewDraft returns the initial empty form draft.
func NewDraft() State {
	return builder.NewState()
}

// Apply runs one reducer transition. See pkg/builder for the action set.
func Apply(s State, a Action) State {
	return builder.Apply(s, a)
}

// ValidateDraft checks the draft's definition and folds the outcome back
// into its error map, reporting whether the draft is saveable.
func ValidateDraft(s State) (State, bool) {
	return builder.Validate(s)
}

// ValidateValue checks one submitted answer against a field's constraints,
// returning the first failing message or "" when acceptable.
func ValidateValue(f Field, raw string) string {
	return validate.Value(f, raw)
}

// ValidateDefinition checks a form definition's structural invariants,
// accumulating every failing field.
func ValidateDefinition(name string, fields []Field) DefinitionErrors {
	return validate.Definition(name, fields)
}

// ValidateSubmission batch-validates a filled-out form; an empty map means
// the submission is accepted.
func ValidateSubmission(fields []Field, answers map[string]string) map[string]string {
	return validate.Submission(fields, answers)
}

// NewRegistry returns a renderer registry with the built-in renderers
// (vanilla HTML and the interactive terminal session) already registered.
func NewRegistry() *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(vanilla.New())
	registry.MustRegister(tui.New())
	return registry
}
