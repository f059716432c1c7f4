package openapi

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

const sampleDoc = `{
  "openapi": "3.0.3",
  "info": {"title": "Signups", "version": "1.0.0"},
  "paths": {
    "/signups": {
      "post": {
        "operationId": "createSignup",
        "summary": "Create a signup",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["full_name", "plan"],
                "properties": {
                  "full_name": {"type": "string", "minLength": 2, "maxLength": 80},
                  "email": {"type": "string", "pattern": "^[^@]+@[^@]+$", "description": "you@example.com"},
                  "age": {"type": "integer", "minimum": 0, "maximum": 120},
                  "score": {"type": "number", "multipleOf": 0.5},
                  "birthday": {"type": "string", "format": "date"},
                  "plan": {"type": "string", "enum": ["free", "pro"]},
                  "newsletter": {"type": "boolean"},
                  "address": {"type": "object", "properties": {"street": {"type": "string"}}}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`

func importSample(t *testing.T) (string, []field.Field) {
	t.Helper()
	name, fields, err := Import(context.Background(), []byte(sampleDoc), "createSignup")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	return name, fields
}

func fieldByLabel(t *testing.T, fields []field.Field, label string) field.Field {
	t.Helper()
	for _, f := range fields {
		if f.Label == label {
			return f
		}
	}
	t.Fatalf("no field labelled %q in %+v", label, fields)
	return field.Field{}
}

func TestImportUsesOperationSummaryAsName(t *testing.T) {
	name, _ := importSample(t)
	if name != "Create a signup" {
		t.Fatalf("name = %q", name)
	}
}

func TestImportPropertyMapping(t *testing.T) {
	_, fields := importSample(t)

	// Nested object property has no counterpart and is skipped.
	if len(fields) != 7 {
		t.Fatalf("expected 7 fields, got %d: %+v", len(fields), fields)
	}

	fullName := fieldByLabel(t, fields, "Full Name")
	if fullName.Type != field.TypeText || !fullName.Required {
		t.Fatalf("full_name mapped wrong: %+v", fullName)
	}
	if fullName.Text == nil || fullName.Text.MinLength == nil || *fullName.Text.MinLength != 2 ||
		fullName.Text.MaxLength == nil || *fullName.Text.MaxLength != 80 {
		t.Fatalf("full_name constraints wrong: %+v", fullName.Text)
	}

	email := fieldByLabel(t, fields, "Email")
	if email.Required {
		t.Fatalf("email should be optional: %+v", email)
	}
	if email.Text == nil || email.Text.Pattern != "^[^@]+@[^@]+$" {
		t.Fatalf("email pattern wrong: %+v", email.Text)
	}
	if email.Placeholder != "you@example.com" {
		t.Fatalf("description should become the placeholder, got %q", email.Placeholder)
	}

	age := fieldByLabel(t, fields, "Age")
	if age.Type != field.TypeNumber || age.Number == nil || !age.Number.IntegerOnly {
		t.Fatalf("age mapped wrong: %+v", age)
	}
	if age.Number.Min == nil || *age.Number.Min != 0 || age.Number.Max == nil || *age.Number.Max != 120 {
		t.Fatalf("age bounds wrong: %+v", age.Number)
	}

	score := fieldByLabel(t, fields, "Score")
	if score.Number == nil || score.Number.IntegerOnly {
		t.Fatalf("score should be a plain number: %+v", score)
	}
	if score.Number.Step == nil || *score.Number.Step != 0.5 {
		t.Fatalf("multipleOf should become the step: %+v", score.Number)
	}

	birthday := fieldByLabel(t, fields, "Birthday")
	if birthday.Type != field.TypeDate {
		t.Fatalf("date format should map to a date field: %+v", birthday)
	}

	plan := fieldByLabel(t, fields, "Plan")
	if plan.Type != field.TypeDropdown || plan.Dropdown == nil {
		t.Fatalf("enum should map to a dropdown: %+v", plan)
	}
	if len(plan.Dropdown.Options) != 2 || plan.Dropdown.Options[0] != "free" || plan.Dropdown.Options[1] != "pro" {
		t.Fatalf("enum options wrong: %+v", plan.Dropdown.Options)
	}

	newsletter := fieldByLabel(t, fields, "Newsletter")
	if newsletter.Type != field.TypeDropdown {
		t.Fatalf("boolean should map to a dropdown: %+v", newsletter)
	}
	if len(newsletter.Dropdown.Options) != 2 || newsletter.Dropdown.Options[0] != "true" {
		t.Fatalf("boolean options wrong: %+v", newsletter.Dropdown.Options)
	}
}

func TestImportGeneratesFieldIDs(t *testing.T) {
	_, fields := importSample(t)
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.ID == "" {
			t.Fatalf("field %q has no id", f.Label)
		}
		if _, dup := seen[f.ID]; dup {
			t.Fatalf("duplicate id %q", f.ID)
		}
		seen[f.ID] = struct{}{}
	}
}

func TestImportErrors(t *testing.T) {
	ctx := context.Background()

	if _, _, err := Import(ctx, nil, "createSignup"); err == nil {
		t.Fatal("expected error for empty document")
	}
	if _, _, err := Import(ctx, []byte(sampleDoc), ""); err == nil {
		t.Fatal("expected error for missing operation id")
	}
	if _, _, err := Import(ctx, []byte(sampleDoc), "nope"); err == nil || !strings.Contains(err.Error(), `operation "nope" not found`) {
		t.Fatalf("unexpected error for unknown operation: %v", err)
	}

	noBody := `{
  "openapi": "3.0.3",
  "info": {"title": "t", "version": "1"},
  "paths": {"/x": {"get": {"operationId": "listX", "responses": {"200": {"description": "ok"}}}}}
}`
	if _, _, err := Import(ctx, []byte(noBody), "listX"); err == nil || !strings.Contains(err.Error(), "no JSON request body schema") {
		t.Fatalf("unexpected error for bodyless operation: %v", err)
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"full_name", "Full Name"},
		{"firstName", "First Name"},
		{"email-address", "Email Address"},
		{"address2", "Address 2"},
		{"HTMLBody", "Htmlbody"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := humanize(tc.in); got != tc.want {
			t.Errorf("humanize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
