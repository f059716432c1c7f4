// Package httpapi is the HTTP front door around the validation core and the
// store. Request bodies are decoded into the field/form shapes before any
// core validation runs: malformed JSON or a wrong shape is a structural
// failure answered with a generic message, while definition and value
// failures come back as per-field error maps.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formbuilder/internal/store"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/validate"
)

const defaultRenderer = "vanilla"

// Server bundles the store, the renderer registry, and the value validator
// behind an http.Handler.
type Server struct {
	store     *store.Store
	renderers *render.Registry
	validator *validate.Validator
	router    chi.Router
}

// Option customises the server.
type Option func(*Server)

// WithRegistry injects a renderer registry. Without it the server registers
// just the vanilla HTML renderer.
func WithRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.renderers = registry
		}
	}
}

// WithValidator injects the value validator used for submissions, letting
// tests pin the clock for date rules.
func WithValidator(v *validate.Validator) Option {
	return func(s *Server) {
		if v != nil {
			s.validator = v
		}
	}
}

// New assembles the server and its routes.
func New(st *store.Store, options ...Option) *Server {
	s := &Server{
		store:     st,
		validator: validate.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.renderers == nil {
		s.renderers = render.NewRegistry()
		s.renderers.MustRegister(vanilla.New())
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Route("/api/forms", func(r chi.Router) {
		r.Post("/", s.handleCreateForm)
		r.Get("/", s.handleListForms)
		r.Route("/{formID}", func(r chi.Router) {
			r.Get("/", s.handleGetForm)
			r.Get("/html", s.handleRenderForm)
			r.Post("/submissions", s.handleCreateSubmission)
			r.Get("/submissions", s.handleListSubmissions)
		})
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
