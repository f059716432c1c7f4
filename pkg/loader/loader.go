// Package loader reads form definitions from YAML or JSON documents. The
// document format is flat and human-authorable: each field entry carries its
// base attributes plus the constraint keys for its declared type; the loader
// converts that into the tagged field.Field variant and rejects documents
// whose shape does not fit. Semantic checks (blank labels, empty dropdown
// options) are deliberately NOT run here; callers pass the result through
// validate.Definition so definition errors stay one failure class.
package loader

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

// Definition is a parsed but not yet validated form definition.
type Definition struct {
	Name   string
	Fields []field.Field
}

type documentFile struct {
	Name   string      `json:"name" yaml:"name"`
	Fields []fieldFile `json:"fields" yaml:"fields"`
}

// fieldFile is the flat on-disk field shape. Which constraint keys are
// honored depends on the declared type; keys for other types are rejected so
// a typo like a pattern on a date field fails loudly instead of silently
// doing nothing.
type fieldFile struct {
	ID          string `json:"id" yaml:"id"`
	Type        string `json:"type" yaml:"type"`
	Label       string `json:"label" yaml:"label"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	Required    bool   `json:"required" yaml:"required"`

	MinLength      *int   `json:"minLength" yaml:"minLength"`
	MaxLength      *int   `json:"maxLength" yaml:"maxLength"`
	Pattern        string `json:"pattern" yaml:"pattern"`
	PatternMessage string `json:"patternMessage" yaml:"patternMessage"`

	Min          *float64 `json:"min" yaml:"min"`
	Max          *float64 `json:"max" yaml:"max"`
	Step         *float64 `json:"step" yaml:"step"`
	IntegerOnly  bool     `json:"integerOnly" yaml:"integerOnly"`
	PositiveOnly bool     `json:"positiveOnly" yaml:"positiveOnly"`

	MinDate    string `json:"minDate" yaml:"minDate"`
	MaxDate    string `json:"maxDate" yaml:"maxDate"`
	FutureOnly bool   `json:"futureOnly" yaml:"futureOnly"`
	PastOnly   bool   `json:"pastOnly" yaml:"pastOnly"`
	MinAge     *int   `json:"minAge" yaml:"minAge"`
	MaxAge     *int   `json:"maxAge" yaml:"maxAge"`

	Options []string `json:"options" yaml:"options"`
}

// LoadFile reads and parses a definition document from disk, choosing the
// decoder by file extension (.json vs .yaml/.yml).
func LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return parse(data, path)
}

// LoadFS reads a definition document from the provided filesystem.
func LoadFS(fsys fs.FS, path string) (Definition, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Definition{}, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return parse(data, path)
}

// Parse decodes a definition document. It accepts YAML, and therefore also
// JSON.
func Parse(data []byte) (Definition, error) {
	return parse(data, "")
}

func parse(data []byte, source string) (Definition, error) {
	if strings.TrimSpace(string(data)) == "" {
		return Definition{}, fmt.Errorf("loader: %s is empty", label(source))
	}

	var doc documentFile
	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return Definition{}, fmt.Errorf("loader: parse %s: %w", label(source), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Definition{}, fmt.Errorf("loader: parse %s: %w", label(source), err)
		}
	}

	def := Definition{Name: doc.Name}
	seen := make(map[string]struct{}, len(doc.Fields))
	for i, entry := range doc.Fields {
		f, err := convertField(entry)
		if err != nil {
			return Definition{}, fmt.Errorf("loader: %s field %d: %w", label(source), i, err)
		}
		if _, dup := seen[f.ID]; dup {
			return Definition{}, fmt.Errorf("loader: %s field %d: duplicate id %q", label(source), i, f.ID)
		}
		seen[f.ID] = struct{}{}
		def.Fields = append(def.Fields, f)
	}
	return def, nil
}

func convertField(entry fieldFile) (field.Field, error) {
	t := field.Type(entry.Type)
	if !t.Valid() {
		return field.Field{}, fmt.Errorf("unknown type %q", entry.Type)
	}
	if err := checkForeignKeys(entry, t); err != nil {
		return field.Field{}, err
	}

	f := field.Field{
		ID:          entry.ID,
		Type:        t,
		Label:       entry.Label,
		Placeholder: entry.Placeholder,
		Required:    entry.Required,
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	switch t {
	case field.TypeText:
		f.Text = &field.TextConstraints{
			MinLength:      entry.MinLength,
			MaxLength:      entry.MaxLength,
			Pattern:        entry.Pattern,
			PatternMessage: entry.PatternMessage,
		}
	case field.TypeNumber:
		f.Number = &field.NumberConstraints{
			Min:          entry.Min,
			Max:          entry.Max,
			Step:         entry.Step,
			IntegerOnly:  entry.IntegerOnly,
			PositiveOnly: entry.PositiveOnly,
		}
	case field.TypeDate:
		if entry.FutureOnly && entry.PastOnly {
			return field.Field{}, fmt.Errorf("futureOnly and pastOnly are mutually exclusive")
		}
		f.Date = &field.DateConstraints{
			MinDate:    entry.MinDate,
			MaxDate:    entry.MaxDate,
			FutureOnly: entry.FutureOnly,
			PastOnly:   entry.PastOnly,
			MinAge:     entry.MinAge,
			MaxAge:     entry.MaxAge,
		}
	case field.TypeDropdown:
		f.Dropdown = &field.DropdownConstraints{
			Options: append([]string(nil), entry.Options...),
		}
	}
	return f, nil
}

// checkForeignKeys rejects constraint keys that belong to a different field
// type than the one declared.
func checkForeignKeys(entry fieldFile, t field.Type) error {
	type group struct {
		owner field.Type
		set   bool
		name  string
	}
	groups := []group{
		{field.TypeText, entry.MinLength != nil || entry.MaxLength != nil || entry.Pattern != "" || entry.PatternMessage != "", "text"},
		{field.TypeNumber, entry.Min != nil || entry.Max != nil || entry.Step != nil || entry.IntegerOnly || entry.PositiveOnly, "number"},
		{field.TypeDate, entry.MinDate != "" || entry.MaxDate != "" || entry.FutureOnly || entry.PastOnly || entry.MinAge != nil || entry.MaxAge != nil, "date"},
		{field.TypeDropdown, entry.Options != nil, "dropdown"},
	}
	for _, g := range groups {
		if g.set && g.owner != t {
			return fmt.Errorf("%s constraints are not valid on a %s field", g.name, t)
		}
	}
	return nil
}

func label(source string) string {
	if source == "" {
		return "document"
	}
	return source
}
