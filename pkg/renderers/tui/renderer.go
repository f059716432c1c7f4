// Package tui fills out a saved form interactively in the terminal. Prompts
// run through a PromptDriver seam (survey by default) and every answer is
// checked with the same value validator the HTTP surface uses, so an answer
// that survives the prompt loop will also survive submission.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/validate"
)

const skipOption = "(leave blank)"

// Option customises the renderer.
type Option func(*Renderer)

// WithDriver swaps the prompt implementation. Tests use this to avoid a TTY.
func WithDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithValidator swaps the value validator, letting callers pin the clock used
// by date rules.
func WithValidator(v *validate.Validator) Option {
	return func(r *Renderer) {
		if v != nil {
			r.validator = v
		}
	}
}

// Renderer implements render.Renderer for terminal sessions. Render collects
// answers for every field and serialises them as a JSON object keyed by
// field id.
type Renderer struct {
	driver    PromptDriver
	validator *validate.Validator
}

// New constructs a TUI renderer with the survey driver and wall-clock
// validator.
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:    newSurveyDriver(),
		validator: validate.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

var _ render.Renderer = (*Renderer)(nil)

// Name reports the renderer identifier.
func (r *Renderer) Name() string { return "tui" }

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string { return "application/json" }

// Render prompts for every field and returns the collected answers as JSON.
func (r *Renderer) Render(ctx context.Context, f form.Form, options render.Options) ([]byte, error) {
	answers, err := r.Fill(ctx, f, options.Values)
	if err != nil {
		return nil, err
	}
	return json.Marshal(answers)
}

// Fill walks the form's fields in order, prompting for each and validating
// in place; the driver re-prompts until the answer passes. Defaults prefill
// the prompts. Empty answers from optional fields are omitted from the
// result.
func (r *Renderer) Fill(ctx context.Context, f form.Form, defaults map[string]string) (map[string]string, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	answers := make(map[string]string, len(f.Fields))
	for _, fld := range f.Fields {
		value, err := r.promptField(ctx, fld, defaults[fld.ID])
		if err != nil {
			return nil, err
		}
		if value != "" {
			answers[fld.ID] = value
		}
	}
	return answers, nil
}

func (r *Renderer) promptField(ctx context.Context, f field.Field, defaultValue string) (string, error) {
	if f.Type == field.TypeDropdown {
		return r.promptDropdown(ctx, f, defaultValue)
	}

	value, err := r.driver.Input(ctx, InputConfig{
		Message: promptMessage(f),
		Default: defaultValue,
		Help:    promptHelp(f),
		Validator: func(raw string) error {
			if msg := r.validator.Value(f, raw); msg != "" {
				return errors.New(msg)
			}
			return nil
		},
	})
	if err != nil {
		return "", fmt.Errorf("tui: field %q: %w", f.Label, err)
	}
	return value, nil
}

func (r *Renderer) promptDropdown(ctx context.Context, f field.Field, defaultValue string) (string, error) {
	var options []string
	if f.Dropdown != nil {
		options = append(options, f.Dropdown.Options...)
	}
	// Optional dropdowns get an explicit way out; required ones must pick.
	if !f.Required {
		options = append([]string{skipOption}, options...)
	}

	defaultIndex := 0
	for i, option := range options {
		if option == defaultValue && option != skipOption {
			defaultIndex = i
			break
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      promptMessage(f),
		Options:      options,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return "", fmt.Errorf("tui: field %q: %w", f.Label, err)
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("tui: field %q: selection %d out of range", f.Label, idx)
	}
	value := options[idx]
	if !f.Required && value == skipOption {
		return "", nil
	}
	return value, nil
}

func promptMessage(f field.Field) string {
	if f.Required {
		return f.Label + " *"
	}
	return f.Label
}

func promptHelp(f field.Field) string {
	if f.Placeholder != "" {
		return f.Placeholder
	}
	switch f.Type {
	case field.TypeNumber:
		return "Enter a number"
	case field.TypeDate:
		return "Enter a date (YYYY-MM-DD)"
	}
	return ""
}
