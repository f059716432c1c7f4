package tui

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/validate"
)

// scriptDriver replays canned answers. Input answers are fed through the
// prompt's validator first, mimicking survey's re-ask loop: invalid answers
// are consumed and the next one is tried.
type scriptDriver struct {
	inputs     []string
	selections []int
	prompts    []string
}

func (d *scriptDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	d.prompts = append(d.prompts, cfg.Message)
	for len(d.inputs) > 0 {
		answer := d.inputs[0]
		d.inputs = d.inputs[1:]
		if cfg.Validator != nil {
			if err := cfg.Validator(answer); err != nil {
				continue
			}
		}
		return answer, nil
	}
	return "", errors.New("script exhausted")
}

func (d *scriptDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	d.prompts = append(d.prompts, cfg.Message)
	if len(d.selections) == 0 {
		return 0, errors.New("script exhausted")
	}
	idx := d.selections[0]
	d.selections = d.selections[1:]
	return idx, nil
}

func (d *scriptDriver) Info(ctx context.Context, msg string) error { return nil }

type failingDriver struct {
	err error
}

func (d *failingDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	return "", d.err
}

func (d *failingDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	return 0, d.err
}

func (d *failingDriver) Info(ctx context.Context, msg string) error { return nil }

func fixedValidator() *validate.Validator {
	v := validate.New()
	v.Now = func() time.Time {
		return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	}
	return v
}

func surveyForm() form.Form {
	return form.Form{
		ID:   1,
		Name: "Survey",
		Fields: []field.Field{
			{
				ID: "name", Type: field.TypeText, Label: "Name", Required: true,
				Text: &field.TextConstraints{MinLength: field.Int(2)},
			},
			{
				ID: "age", Type: field.TypeNumber, Label: "Age",
				Number: &field.NumberConstraints{Min: field.Float(0), IntegerOnly: true},
			},
			{
				ID: "color", Type: field.TypeDropdown, Label: "Color",
				Dropdown: &field.DropdownConstraints{Options: []string{"Red", "Green"}},
			},
		},
	}
}

func TestFillCollectsAnswers(t *testing.T) {
	driver := &scriptDriver{
		inputs:     []string{"Ada", "36"},
		selections: []int{1}, // optional dropdown: index 0 is the skip option
	}
	r := New(WithDriver(driver), WithValidator(fixedValidator()))

	answers, err := r.Fill(context.Background(), surveyForm(), nil)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := map[string]string{"name": "Ada", "age": "36", "color": "Red"}
	if diff := cmp.Diff(want, answers); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}
}

func TestFillRePromptsUntilValid(t *testing.T) {
	driver := &scriptDriver{
		inputs:     []string{"A", "Ada", "not a number", "36"},
		selections: []int{2},
	}
	r := New(WithDriver(driver), WithValidator(fixedValidator()))

	answers, err := r.Fill(context.Background(), surveyForm(), nil)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if answers["name"] != "Ada" || answers["age"] != "36" {
		t.Fatalf("unexpected answers: %v", answers)
	}
}

func TestFillMarksRequiredPrompts(t *testing.T) {
	driver := &scriptDriver{inputs: []string{"Ada", ""}, selections: []int{0}}
	r := New(WithDriver(driver), WithValidator(fixedValidator()))

	if _, err := r.Fill(context.Background(), surveyForm(), nil); err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := []string{"Name *", "Age", "Color"}
	if diff := cmp.Diff(want, driver.prompts); diff != "" {
		t.Fatalf("prompt messages mismatch (-want +got):\n%s", diff)
	}
}

func TestFillOmitsSkippedOptionalFields(t *testing.T) {
	driver := &scriptDriver{
		inputs:     []string{"Ada", ""},
		selections: []int{0}, // the (leave blank) entry
	}
	r := New(WithDriver(driver), WithValidator(fixedValidator()))

	answers, err := r.Fill(context.Background(), surveyForm(), nil)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if _, ok := answers["age"]; ok {
		t.Fatalf("skipped number answer should be absent: %v", answers)
	}
	if _, ok := answers["color"]; ok {
		t.Fatalf("skipped dropdown answer should be absent: %v", answers)
	}
}

func TestFillRequiredDropdownHasNoSkipEntry(t *testing.T) {
	f := form.Form{Fields: []field.Field{{
		ID: "color", Type: field.TypeDropdown, Label: "Color", Required: true,
		Dropdown: &field.DropdownConstraints{Options: []string{"Red", "Green"}},
	}}}
	driver := &scriptDriver{selections: []int{0}}
	r := New(WithDriver(driver), WithValidator(fixedValidator()))

	answers, err := r.Fill(context.Background(), f, nil)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if answers["color"] != "Red" {
		t.Fatalf("index 0 should be the first real option, got %v", answers)
	}
}

func TestFillPropagatesAbort(t *testing.T) {
	r := New(WithDriver(&failingDriver{err: ErrAborted}), WithValidator(fixedValidator()))

	_, err := r.Fill(context.Background(), surveyForm(), nil)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("want ErrAborted, got %v", err)
	}
}

func TestFillNilContext(t *testing.T) {
	r := New(WithDriver(&scriptDriver{}))
	//lint:ignore SA1012 exercising the guard
	if _, err := r.Fill(nil, surveyForm(), nil); err == nil {
		t.Fatal("expected error for nil context")
	}
}

func TestRenderReturnsAnswersJSON(t *testing.T) {
	driver := &scriptDriver{inputs: []string{"Ada", "36"}, selections: []int{2}}
	r := New(WithDriver(driver), WithValidator(fixedValidator()))

	raw, err := r.Render(context.Background(), surveyForm(), render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]string{"name": "Ada", "age": "36", "color": "Green"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}
