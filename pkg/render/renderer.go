package render

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/form"
)

// Renderer converts a saved form into a byte representation (HTML markup,
// collected terminal answers, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, f form.Form, options Options) ([]byte, error)
}

// Options carries per-request rendering state: previously entered values to
// prefill, per-field validation errors to surface inline, and a form-level
// submit error. All maps are keyed by field id.
type Options struct {
	// Action and Method override where the rendered form posts to. Renderers
	// fall back to their own defaults when empty.
	Action string
	Method string

	// Values prefills inputs.
	Values map[string]string

	// Errors surfaces validation messages inline next to their field.
	Errors map[string]string

	// SubmitError is a single form-level failure message for persistence
	// errors, distinct from per-field validation.
	SubmitError string
}
