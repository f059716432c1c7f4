package validate

import "github.com/goliatone/go-formbuilder/pkg/field"

// Submission validates a filled-out form in one batch pass: every field is
// checked against its answer (a missing key counts as an empty value) and
// every failure is collected, keyed by field id. Each individual field still
// short-circuits on its first failing check, but the pass never stops early
// across fields since the caller needs to highlight all invalid inputs at
// once. An empty map means the submission is accepted; persisting it is the
// caller's separate step.
func (v *Validator) Submission(fields []field.Field, answers map[string]string) map[string]string {
	errs := map[string]string{}
	for _, f := range fields {
		if msg := v.Value(f, answers[f.ID]); msg != "" {
			errs[f.ID] = msg
		}
	}
	return errs
}

// Submission runs the batch pass with the wall clock. See Validator.Submission.
func Submission(fields []field.Field, answers map[string]string) map[string]string {
	return New().Submission(fields, answers)
}
