// Package form defines the persisted aggregates: a saved Form definition and
// the Submissions recorded against it. Both are frozen at creation; edits
// happen on a builder draft, never on a saved form.
package form

import (
	"time"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

// Form is a saved form definition. Fields keep their authored order; that
// order is the display and tab order when the form is rendered.
type Form struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Fields    []field.Field `json:"fields"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Field returns the field with the given id and whether it exists.
func (f Form) Field(id string) (field.Field, bool) {
	for _, fld := range f.Fields {
		if fld.ID == id {
			return fld, true
		}
	}
	return field.Field{}, false
}

// Submission is one completed set of answers to a saved form, keyed by field
// id. It is immutable after creation and never re-editable.
type Submission struct {
	ID          int64             `json:"id"`
	FormID      int64             `json:"formId"`
	Answers     map[string]string `json:"answers"`
	SubmittedAt time.Time         `json:"submittedAt"`
}
