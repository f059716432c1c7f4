package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formbuilder/internal/store"
	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// msgInvalidBody answers every structural decoding failure. It stays generic
// on purpose: shape problems are a different failure class from validation
// and carry no per-field detail.
const msgInvalidBody = "Request does not contain form data or is invalid"

type createFormRequest struct {
	Name   string        `json:"name"`
	Fields []field.Field `json:"fields"`
}

func (s *Server) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	var req createFormRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if !wellFormedFields(req.Fields) {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	f, err := s.store.CreateForm(r.Context(), req.Name, req.Fields)
	if err != nil {
		if defErr, ok := store.AsDefinitionError(err); ok {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": defErr.Errors})
			return
		}
		log.Printf("httpapi: create form: %v", err)
		writeError(w, http.StatusInternalServerError, "Form not created")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Form created successfully",
		"form":    f,
	})
}

func (s *Server) handleListForms(w http.ResponseWriter, r *http.Request) {
	forms, err := s.store.Forms(r.Context())
	if err != nil {
		log.Printf("httpapi: list forms: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to load forms")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"forms": forms})
}

func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	f, ok := s.loadForm(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleRenderForm(w http.ResponseWriter, r *http.Request) {
	f, ok := s.loadForm(w, r)
	if !ok {
		return
	}

	name := r.URL.Query().Get("renderer")
	if name == "" {
		name = defaultRenderer
	}
	renderer, err := s.renderers.Get(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown renderer")
		return
	}

	out, err := renderer.Render(r.Context(), f, render.Options{})
	if err != nil {
		log.Printf("httpapi: render form %d: %v", f.ID, err)
		writeError(w, http.StatusInternalServerError, "Failed to render form")
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Write(out)
}

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	f, ok := s.loadForm(w, r)
	if !ok {
		return
	}

	var answers map[string]string
	if err := decodeJSON(r, &answers); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	// Answers for unknown field ids are dropped rather than persisted.
	known := make(map[string]string, len(answers))
	for _, fld := range f.Fields {
		if value, present := answers[fld.ID]; present {
			known[fld.ID] = value
		}
	}

	if errs := s.validator.Submission(f.Fields, known); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}

	sub, err := s.store.CreateSubmission(r.Context(), f.ID, known)
	if err != nil {
		log.Printf("httpapi: create submission for form %d: %v", f.ID, err)
		writeError(w, http.StatusInternalServerError, "Submission not created")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Form submitted successfully",
		"submission": sub,
	})
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	f, ok := s.loadForm(w, r)
	if !ok {
		return
	}
	submissions, err := s.store.Submissions(r.Context(), f.ID)
	if err != nil {
		log.Printf("httpapi: list submissions for form %d: %v", f.ID, err)
		writeError(w, http.StatusInternalServerError, "Failed to load submissions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": submissions})
}

func (s *Server) loadForm(w http.ResponseWriter, r *http.Request) (f form.Form, ok bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "formID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form id")
		return f, false
	}
	f, err = s.store.Form(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrFormNotFound) {
			writeError(w, http.StatusNotFound, "Form not found")
			return f, false
		}
		log.Printf("httpapi: load form %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to load form")
		return f, false
	}
	return f, true
}

// wellFormedFields applies the structural (not semantic) checks on a decoded
// field list: at least one field, valid type tags, non-blank unique ids, a
// constraint payload that matches the declared type, and date flags that are
// not mutually exclusive. A futureOnly+pastOnly field would reject every
// answer forever, so it is refused before it can be persisted.
func wellFormedFields(fields []field.Field) bool {
	if len(fields) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.ID == "" || !f.Type.Valid() {
			return false
		}
		if _, dup := seen[f.ID]; dup {
			return false
		}
		seen[f.ID] = struct{}{}
		if !payloadMatchesType(f) {
			return false
		}
		if f.Date != nil && f.Date.FutureOnly && f.Date.PastOnly {
			return false
		}
	}
	return true
}

func payloadMatchesType(f field.Field) bool {
	if (f.Text != nil && f.Type != field.TypeText) ||
		(f.Number != nil && f.Type != field.TypeNumber) ||
		(f.Date != nil && f.Type != field.TypeDate) ||
		(f.Dropdown != nil && f.Type != field.TypeDropdown) {
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("httpapi: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
