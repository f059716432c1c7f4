package builder

import (
	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/validate"
)

// State is one immutable snapshot of a form draft: the working name, the
// ordered field list, and the definition errors from the last validation
// pass. Transitions never mutate a State in place; Apply always returns a
// fresh value.
type State struct {
	Name   string
	Fields []field.Field
	Errors validate.DefinitionErrors
}

// NewState returns the initial empty draft.
func NewState() State {
	return State{Errors: validate.NewDefinitionErrors()}
}

// Field returns the field with the given id and whether it exists.
func (s State) Field(id string) (field.Field, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return field.Field{}, false
}

// Action is a tagged transition request. The concrete variants below are the
// only ones Apply understands; anything else leaves the state untouched so
// callers can extend the action set without breaking older reducers.
type Action interface {
	isAction()
}

// SetName replaces the draft name and clears any pending name error.
type SetName struct {
	Name string
}

// AddField appends a field to the end of the draft.
type AddField struct {
	Field field.Field
}

// RemoveField drops the field with the given id along with its error entry.
type RemoveField struct {
	ID string
}

// UpdateField merges a partial update into the matching field and clears
// that field's error entry optimistically; the next validation pass re-adds
// it if the field is still invalid. Unknown ids leave the state unchanged.
type UpdateField struct {
	ID    string
	Patch Patch
}

// ReorderFields replaces the field list wholesale. The caller guarantees the
// new list is a permutation of the existing fields; the reducer does not
// verify that.
type ReorderFields struct {
	Fields []field.Field
}

// SetErrors replaces the whole error map, typically with the output of a
// definition validation pass.
type SetErrors struct {
	Errors validate.DefinitionErrors
}

// ClearErrors resets the error map to empty.
type ClearErrors struct{}

// ResetForm returns the draft to its initial empty state, used after a
// successful save.
type ResetForm struct{}

func (SetName) isAction()       {}
func (AddField) isAction()      {}
func (RemoveField) isAction()   {}
func (UpdateField) isAction()   {}
func (ReorderFields) isAction() {}
func (SetErrors) isAction()     {}
func (ClearErrors) isAction()   {}
func (ResetForm) isAction()     {}

// Apply is the reducer: it produces the next draft state from the current
// one and a single action. No transition performs I/O.
func Apply(s State, a Action) State {
	switch action := a.(type) {
	case SetName:
		next := s
		next.Name = action.Name
		next.Errors = s.Errors.Clone()
		next.Errors.Name = ""
		return next

	case AddField:
		next := s
		next.Fields = append(append([]field.Field(nil), s.Fields...), action.Field)
		return next

	case RemoveField:
		next := s
		fields := make([]field.Field, 0, len(s.Fields))
		for _, f := range s.Fields {
			if f.ID != action.ID {
				fields = append(fields, f)
			}
		}
		next.Fields = fields
		next.Errors = s.Errors.Clone()
		delete(next.Errors.Fields, action.ID)
		return next

	case UpdateField:
		idx := -1
		for i, f := range s.Fields {
			if f.ID == action.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return s
		}
		next := s
		next.Fields = append([]field.Field(nil), s.Fields...)
		next.Fields[idx] = action.Patch.apply(s.Fields[idx])
		next.Errors = s.Errors.Clone()
		delete(next.Errors.Fields, action.ID)
		return next

	case ReorderFields:
		next := s
		next.Fields = append([]field.Field(nil), action.Fields...)
		return next

	case SetErrors:
		next := s
		next.Errors = action.Errors.Clone()
		return next

	case ClearErrors:
		next := s
		next.Errors = validate.NewDefinitionErrors()
		return next

	case ResetForm:
		return NewState()
	}
	return s
}

// Validate runs definition validation against the current draft and folds
// the outcome back into the state: failures land via SetErrors, success via
// ClearErrors. The boolean reports whether the draft is saveable.
func Validate(s State) (State, bool) {
	errs := validate.Definition(s.Name, s.Fields)
	if !errs.OK() {
		return Apply(s, SetErrors{Errors: errs}), false
	}
	return Apply(s, ClearErrors{}), true
}
