// Package openapi imports form definitions from OpenAPI documents: the JSON
// request body of a chosen operation becomes a field list, with each schema
// property mapped onto the closest of the four supported field kinds. The
// result is a builder draft, not a saved form; callers still run definition
// validation before persisting.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

// Import parses an OpenAPI document and converts the request-body schema of
// the operation with the given id into a form definition. The returned name
// is the operation summary when present, else the operation id.
func Import(ctx context.Context, raw []byte, operationID string) (string, []field.Field, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	if len(raw) == 0 {
		return "", nil, errors.New("openapi: document payload is empty")
	}
	if operationID == "" {
		return "", nil, errors.New("openapi: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return "", nil, fmt.Errorf("openapi: load document: %w", err)
	}

	op := findOperation(spec, operationID)
	if op == nil {
		return "", nil, fmt.Errorf("openapi: operation %q not found", operationID)
	}

	schema := requestBodySchema(op)
	if schema == nil {
		return "", nil, fmt.Errorf("openapi: operation %q has no JSON request body schema", operationID)
	}

	fields, err := fieldsFromSchema(schema)
	if err != nil {
		return "", nil, err
	}

	name := strings.TrimSpace(op.Summary)
	if name == "" {
		name = operationID
	}
	return name, fields, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestBodySchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	media := op.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil
	}
	return media.Schema.Value
}

func fieldsFromSchema(schema *openapi3.Schema) ([]field.Field, error) {
	if !schema.Type.Is("object") && len(schema.Properties) == 0 {
		return nil, errors.New("openapi: request body schema is not an object")
	}

	requiredSet := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		requiredSet[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []field.Field
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, required := requiredSet[name]
		f, ok := fieldFromProperty(name, ref.Value, required)
		if !ok {
			// Nested objects and arrays have no counterpart in this model.
			continue
		}
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return nil, errors.New("openapi: request body schema produced no fields")
	}
	return fields, nil
}

func fieldFromProperty(name string, schema *openapi3.Schema, required bool) (field.Field, bool) {
	var f field.Field
	switch {
	case len(schema.Enum) > 0:
		f = field.NewDropdown()
		f.Dropdown.Options = optionsFromEnum(schema.Enum)
	case schema.Type.Is("boolean"):
		f = field.NewDropdown()
		f.Dropdown.Options = []string{"true", "false"}
	case schema.Type.Is("string") && (schema.Format == "date" || schema.Format == "date-time"):
		f = field.NewDate()
	case schema.Type.Is("string"):
		f = field.NewText()
		f.Text.MinLength = fromUint(schema.MinLength)
		f.Text.MaxLength = fromUintPtr(schema.MaxLength)
		f.Text.Pattern = schema.Pattern
	case schema.Type.Is("integer"):
		f = field.NewNumber()
		f.Number.Min = schema.Min
		f.Number.Max = schema.Max
		f.Number.Step = schema.MultipleOf
		f.Number.IntegerOnly = true
	case schema.Type.Is("number"):
		f = field.NewNumber()
		f.Number.Min = schema.Min
		f.Number.Max = schema.Max
		f.Number.Step = schema.MultipleOf
	default:
		return field.Field{}, false
	}

	f.Label = labelFor(name, schema.Title)
	f.Placeholder = schema.Description
	f.Required = required
	return f, true
}

func optionsFromEnum(enum []any) []string {
	options := make([]string, 0, len(enum))
	for _, value := range enum {
		options = append(options, fmt.Sprint(value))
	}
	return options
}

func labelFor(name, title string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	return humanize(name)
}

func fromUint(v uint64) *int {
	if v == 0 {
		return nil
	}
	n := int(v)
	return &n
}

func fromUintPtr(v *uint64) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
