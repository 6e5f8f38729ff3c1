// Package server exposes the company forms over HTTP.
//
// Every request builds its own form.Controller from the shared read-only
// catalog and replays the posted values into it, so the server keeps no
// per-user state. Form posts carry a stateless CSRF token.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goliatone/go-companyform/internal/metrics"
	"github.com/goliatone/go-companyform/pkg/catalog"
	"github.com/goliatone/go-companyform/pkg/form"
	"github.com/goliatone/go-companyform/pkg/openapi"
	"github.com/goliatone/go-companyform/pkg/render"
	"github.com/goliatone/go-companyform/pkg/renderers/tui"
	"github.com/goliatone/go-companyform/pkg/renderers/vanilla"
	"github.com/goliatone/go-companyform/pkg/validation"
)

// AssetsPrefix is where the bundled stylesheet and script are served.
const AssetsPrefix = "/assets/"

// Option configures a Server.
type Option func(*Server)

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithValidator overrides the rule set used for every request.
func WithValidator(v form.Validator) Option {
	return func(s *Server) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithRegistry replaces the renderer registry. The registry default renders
// pages; other renderers are selected with ?renderer=<name>.
func WithRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.renderers = registry
		}
	}
}

// WithTheme applies a resolved theme to rendered pages.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithCSRF replaces the generated per-process CSRF guard.
func WithCSRF(guard *CSRF) Option {
	return func(s *Server) {
		if guard != nil {
			s.csrf = guard
		}
	}
}

// WithTitle sets the page heading.
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

// WithSubmitHandler forwards accepted submissions after they are logged and
// counted.
func WithSubmitHandler(fn form.SubmitHandler) Option {
	return func(s *Server) {
		s.onSubmit = fn
	}
}

// Server holds the shared, read-only dependencies of every request.
type Server struct {
	catalog   *catalog.Catalog
	validator form.Validator
	renderers *render.Registry
	csrf      *CSRF
	theme     *theme.RendererConfig
	title     string
	onSubmit  form.SubmitHandler
	logger    *zap.Logger
}

// New builds a server for c. Without WithRegistry the vanilla HTML renderer is
// the default and the text renderer is available as "tui".
func New(c *catalog.Catalog, options ...Option) (*Server, error) {
	if c == nil {
		return nil, errors.New("server: catalog is nil")
	}
	s := &Server{
		catalog:   c,
		validator: validation.New(),
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.renderers == nil {
		html, err := vanilla.New(vanilla.WithLogger(s.logger))
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		registry, err := render.NewRegistry(html, tui.New())
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.renderers = registry
	}
	if s.csrf == nil {
		guard, err := NewCSRF("", DefaultCSRFMaxAge)
		if err != nil {
			return nil, fmt.Errorf("server: csrf: %w", err)
		}
		s.csrf = guard
	}

	metrics.CatalogCompanies.Set(float64(c.Len()))
	return s, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(s.logger))
	r.Use(securityHeaders)

	r.Get("/", s.handleIndex)
	r.Route("/forms/{company}", func(r chi.Router) {
		r.Post("/", s.handleSubmit)
		r.Post("/fields/{field}/validate", s.handleValidate)
	})
	r.Route("/api/companies", func(r chi.Router) {
		r.Get("/", s.handleCompanies)
		r.Get("/{company}/fields", s.handleFields)
		r.Get("/{company}/schema", s.handleSchema)
	})
	r.Get("/api/openapi.json", s.handleDocument(openapi.FormatJSON, "application/json"))
	r.Get("/api/openapi.yaml", s.handleDocument(openapi.FormatYAML, "application/yaml"))
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Handle(AssetsPrefix+"*", http.StripPrefix(AssetsPrefix, http.FileServer(http.FS(vanilla.AssetsFS()))))

	return r
}

// Timeouts bounds the lifetime of a single connection.
type Timeouts struct {
	Read  time.Duration
	Write time.Duration
	Idle  time.Duration
}

// NewHTTPServer wraps handler in an *http.Server with the given timeouts.
// Zero values fall back to 10s read, 15s write and 60s idle.
func NewHTTPServer(addr string, handler http.Handler, t Timeouts) *http.Server {
	if t.Read <= 0 {
		t.Read = 10 * time.Second
	}
	if t.Write <= 0 {
		t.Write = 15 * time.Second
	}
	if t.Idle <= 0 {
		t.Idle = 60 * time.Second
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       t.Read,
		ReadHeaderTimeout: t.Read,
		WriteTimeout:      t.Write,
		IdleTimeout:       t.Idle,
	}
}
