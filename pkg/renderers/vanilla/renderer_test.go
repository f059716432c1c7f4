package vanilla

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

func renderForm(t *testing.T, f form.Form, options render.Options) string {
	t.Helper()
	out, err := New().Render(context.Background(), f, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func sampleForm() form.Form {
	name := field.Field{
		ID: "name", Type: field.TypeText, Label: "Full name", Required: true,
		Placeholder: "Jane Doe",
		Text:        &field.TextConstraints{MinLength: field.Int(2), MaxLength: field.Int(80)},
	}
	age := field.Field{
		ID: "age", Type: field.TypeNumber, Label: "Age",
		Number: &field.NumberConstraints{Min: field.Float(0), Max: field.Float(120), Step: field.Float(1)},
	}
	birthday := field.Field{
		ID: "birthday", Type: field.TypeDate, Label: "Birthday",
		Date: &field.DateConstraints{MinDate: "1900-01-01", MaxDate: "2100-12-31"},
	}
	size := field.Field{
		ID: "size", Type: field.TypeDropdown, Label: "Size",
		Dropdown: &field.DropdownConstraints{Options: []string{"S", "M", "L"}},
	}
	return form.Form{ID: 7, Name: "Signup", Fields: []field.Field{name, age, birthday, size}}
}

func TestRenderFormShell(t *testing.T) {
	html := renderForm(t, sampleForm(), render.Options{})

	if !strings.Contains(html, `action="/api/forms/7/submissions"`) {
		t.Fatalf("missing default action:\n%s", html)
	}
	if !strings.Contains(html, `method="POST"`) {
		t.Fatalf("missing default method:\n%s", html)
	}
	if !strings.Contains(html, `<button type="submit"`) {
		t.Fatalf("missing submit button:\n%s", html)
	}
}

func TestRenderTextField(t *testing.T) {
	html := renderForm(t, sampleForm(), render.Options{})

	for _, want := range []string{
		`<label for="field-name"`,
		`Full name`,
		`<span class="text-red-500 ml-1">*</span>`,
		`placeholder="Jane Doe"`,
		` required`,
		`minlength="2"`,
		`maxlength="80"`,
		`Minimum length: 2 characters`,
		`Maximum length: 80 characters`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("missing %q in:\n%s", want, html)
		}
	}
}

func TestRenderNumberAndDateAttributes(t *testing.T) {
	html := renderForm(t, sampleForm(), render.Options{})

	for _, want := range []string{
		`type="number"`, `min="0"`, `max="120"`, `step="1"`,
		`type="date"`, `min="1900-01-01"`, `max="2100-12-31"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("missing %q in:\n%s", want, html)
		}
	}
}

func TestRenderDropdown(t *testing.T) {
	html := renderForm(t, sampleForm(), render.Options{})

	if !strings.Contains(html, `<select id="field-size"`) {
		t.Fatalf("missing select:\n%s", html)
	}
	if !strings.Contains(html, `<option value="" disabled selected>Select an option</option>`) {
		t.Fatalf("missing placeholder option:\n%s", html)
	}
	for _, option := range []string{`<option value="S">S</option>`, `<option value="M">M</option>`, `<option value="L">L</option>`} {
		if !strings.Contains(html, option) {
			t.Fatalf("missing %q in:\n%s", option, html)
		}
	}
}

func TestRenderPrefillAndErrors(t *testing.T) {
	html := renderForm(t, sampleForm(), render.Options{
		Values: map[string]string{"name": "Ada", "size": "M"},
		Errors: map[string]string{"age": "Must be a number"},
	})

	if !strings.Contains(html, `value="Ada"`) {
		t.Fatalf("missing prefilled value:\n%s", html)
	}
	if !strings.Contains(html, `<option value="M" selected>M</option>`) {
		t.Fatalf("selected option not marked:\n%s", html)
	}
	if !strings.Contains(html, `<p id="error-age" class="text-sm text-red-600" role="alert">Must be a number</p>`) {
		t.Fatalf("missing inline error:\n%s", html)
	}
	if !strings.Contains(html, `border-red-500" aria-invalid="true"`) {
		t.Fatalf("error styling not applied:\n%s", html)
	}
}

func TestRenderSubmitError(t *testing.T) {
	html := renderForm(t, sampleForm(), render.Options{SubmitError: "Network error. Please try again."})
	if !strings.Contains(html, `role="alert">Network error. Please try again.</div>`) {
		t.Fatalf("missing submit error:\n%s", html)
	}
}

func TestRenderStripsMarkupFromUserCopy(t *testing.T) {
	f := form.Form{ID: 1, Fields: []field.Field{{
		ID: "x", Type: field.TypeText, Label: `<script>alert(1)</script>Name`,
	}}}
	html := renderForm(t, f, render.Options{})

	if strings.Contains(html, "<script>") {
		t.Fatalf("script tag leaked into markup:\n%s", html)
	}
	if !strings.Contains(html, "Name") {
		t.Fatalf("label text lost:\n%s", html)
	}
}

func TestRenderNilContext(t *testing.T) {
	//lint:ignore SA1012 exercising the guard
	if _, err := New().Render(nil, sampleForm(), render.Options{}); err == nil {
		t.Fatal("expected error for nil context")
	}
}
