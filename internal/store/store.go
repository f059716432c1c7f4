// Package store persists form definitions and submissions in SQLite. Field
// lists and answer maps are stored as JSON text columns, so a saved form
// reloads with its field order and every constraint intact.
//
// The store is also the persistence boundary from the validation design:
// CreateForm refuses any definition that fails validate.Definition, while
// CreateSubmission trusts its caller to have run the submission pass first.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/validate"
)

//go:embed schema.sql
var schemaSQL string

// ErrFormNotFound reports a lookup for a form id that does not exist.
var ErrFormNotFound = errors.New("store: form not found")

// DefinitionError wraps the per-field error map produced when CreateForm
// rejects an invalid definition at the boundary.
type DefinitionError struct {
	Errors validate.DefinitionErrors
}

func (e *DefinitionError) Error() string {
	return "store: form definition is invalid"
}

// AsDefinitionError unwraps err into a *DefinitionError when possible.
func AsDefinitionError(err error) (*DefinitionError, bool) {
	var defErr *DefinitionError
	if errors.As(err, &defErr) {
		return defErr, true
	}
	return nil, false
}

// Store wraps a SQLite database holding forms and their submissions.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the SQLite database at path and applies
// the schema. Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store: database path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	// modernc.org/sqlite is not safe for concurrent writes over multiple
	// connections on one file.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateForm validates and freezes a draft into a persisted form. A
// definition failing validation is rejected with a *DefinitionError before
// anything touches the database.
func (s *Store) CreateForm(ctx context.Context, name string, fields []field.Field) (form.Form, error) {
	if errs := validate.Definition(name, fields); !errs.OK() {
		return form.Form{}, &DefinitionError{Errors: errs}
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return form.Form{}, fmt.Errorf("store: encode fields: %w", err)
	}
	createdAt := s.now().UTC().Truncate(time.Second)

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO forms (name, fields, created_at) VALUES (?, ?, ?)",
		name, string(payload), createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return form.Form{}, fmt.Errorf("store: insert form: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return form.Form{}, fmt.Errorf("store: form id: %w", err)
	}

	return form.Form{
		ID:        id,
		Name:      name,
		Fields:    field.CloneAll(fields),
		CreatedAt: createdAt,
	}, nil
}

// Form loads a single form by id.
func (s *Store) Form(ctx context.Context, id int64) (form.Form, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, fields, created_at FROM forms WHERE id = ?", id)
	f, err := scanForm(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return form.Form{}, ErrFormNotFound
		}
		return form.Form{}, fmt.Errorf("store: load form %d: %w", id, err)
	}
	return f, nil
}

// Forms lists every saved form, newest first.
func (s *Store) Forms(ctx context.Context) ([]form.Form, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, fields, created_at FROM forms ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("store: list forms: %w", err)
	}
	defer rows.Close()

	var forms []form.Form
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list forms: %w", err)
		}
		forms = append(forms, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list forms: %w", err)
	}
	return forms, nil
}

// CreateSubmission records a completed set of answers against a saved form.
// Value validation is the caller's responsibility and must already have
// passed; the store only checks that the form exists.
func (s *Store) CreateSubmission(ctx context.Context, formID int64, answers map[string]string) (form.Submission, error) {
	if _, err := s.Form(ctx, formID); err != nil {
		return form.Submission{}, err
	}
	if answers == nil {
		answers = map[string]string{}
	}

	payload, err := json.Marshal(answers)
	if err != nil {
		return form.Submission{}, fmt.Errorf("store: encode answers: %w", err)
	}
	submittedAt := s.now().UTC().Truncate(time.Second)

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO form_submissions (form_id, submitted_data, submitted_at) VALUES (?, ?, ?)",
		formID, string(payload), submittedAt.Format(time.RFC3339),
	)
	if err != nil {
		return form.Submission{}, fmt.Errorf("store: insert submission: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return form.Submission{}, fmt.Errorf("store: submission id: %w", err)
	}

	clone := make(map[string]string, len(answers))
	for k, v := range answers {
		clone[k] = v
	}
	return form.Submission{
		ID:          id,
		FormID:      formID,
		Answers:     clone,
		SubmittedAt: submittedAt,
	}, nil
}

// Submissions lists every submission recorded against a form, newest first.
func (s *Store) Submissions(ctx context.Context, formID int64) ([]form.Submission, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, form_id, submitted_data, submitted_at FROM form_submissions WHERE form_id = ? ORDER BY submitted_at DESC, id DESC",
		formID)
	if err != nil {
		return nil, fmt.Errorf("store: list submissions: %w", err)
	}
	defer rows.Close()

	var submissions []form.Submission
	for rows.Next() {
		var (
			sub         form.Submission
			payload     string
			submittedAt string
		)
		if err := rows.Scan(&sub.ID, &sub.FormID, &payload, &submittedAt); err != nil {
			return nil, fmt.Errorf("store: list submissions: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &sub.Answers); err != nil {
			return nil, fmt.Errorf("store: decode answers for submission %d: %w", sub.ID, err)
		}
		sub.SubmittedAt, err = time.Parse(time.RFC3339, submittedAt)
		if err != nil {
			return nil, fmt.Errorf("store: decode timestamp for submission %d: %w", sub.ID, err)
		}
		submissions = append(submissions, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list submissions: %w", err)
	}
	return submissions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanForm(row rowScanner) (form.Form, error) {
	var (
		f         form.Form
		payload   string
		createdAt string
	)
	if err := row.Scan(&f.ID, &f.Name, &payload, &createdAt); err != nil {
		return form.Form{}, err
	}
	if err := json.Unmarshal([]byte(payload), &f.Fields); err != nil {
		return form.Form{}, fmt.Errorf("decode fields: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return form.Form{}, fmt.Errorf("decode timestamp: %w", err)
	}
	f.CreatedAt = parsed
	return f, nil
}
