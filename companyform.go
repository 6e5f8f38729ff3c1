// Package companyform renders and validates company-specific forms.
//
// A catalog maps company keys to ordered field descriptors. Selecting a
// company normalizes its descriptors into canonical fields, a form.Controller
// tracks values and errors, and renderers turn the controller's view into
// HTML or terminal output. Generator ties those stages together for callers
// that only want rendered output.
package companyform

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-companyform/pkg/catalog"
	"github.com/goliatone/go-companyform/pkg/form"
	"github.com/goliatone/go-companyform/pkg/render"
	"github.com/goliatone/go-companyform/pkg/renderers/tui"
	"github.com/goliatone/go-companyform/pkg/renderers/vanilla"
	"github.com/goliatone/go-companyform/pkg/validation"
)

// RenderOptions aliases render.RenderOptions for callers of Generate.
type RenderOptions = render.RenderOptions

// Option configures a Generator.
type Option func(*Generator)

// WithCatalog replaces the bundled catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(g *Generator) {
		if c != nil {
			g.catalog = c
		}
	}
}

// WithRegistry replaces the renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(g *Generator) {
		if registry != nil {
			g.registry = registry
		}
	}
}

// WithValidator overrides the field rule set.
func WithValidator(v form.Validator) Option {
	return func(g *Generator) {
		if v != nil {
			g.validator = v
		}
	}
}

// WithThemeSelector resolves themes through selector. defaultTheme and
// defaultVariant apply when a Request names none.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) Option {
	return func(g *Generator) {
		g.selector = selector
		g.defaultTheme = defaultTheme
		g.defaultVariant = defaultVariant
	}
}

// WithThemeFallbacks sets the partials used when a theme does not override
// them.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(g *Generator) {
		g.fallbacks = fallbacks
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Request describes one rendering.
type Request struct {
	// Company selects the form. Empty renders the selector only.
	Company string
	// Renderer names a registered renderer; empty uses the default.
	Renderer string
	// Values prefill fields; unknown names are ignored.
	Values map[string]string
	// Validate runs every field's rules so errors show in the output.
	Validate bool
	// ThemeName and ThemeVariant override the selector defaults.
	ThemeName    string
	ThemeVariant string
	// Options is passed through to the renderer. Companies defaults to the
	// catalog order when empty.
	Options RenderOptions
}

// Generator renders catalog forms.
type Generator struct {
	catalog        *catalog.Catalog
	registry       *render.Registry
	validator      form.Validator
	selector       theme.ThemeSelector
	defaultTheme   string
	defaultVariant string
	fallbacks      map[string]string
	logger         *zap.Logger
}

// New builds a Generator over the bundled catalog with the vanilla renderer
// as default and the text renderer registered as "tui".
func New(options ...Option) (*Generator, error) {
	g := &Generator{
		validator: validation.New(),
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.catalog == nil {
		g.catalog = catalog.Default()
	}
	if g.registry == nil {
		html, err := vanilla.New(vanilla.WithLogger(g.logger))
		if err != nil {
			return nil, fmt.Errorf("companyform: %w", err)
		}
		registry, err := render.NewRegistry(html, tui.New())
		if err != nil {
			return nil, fmt.Errorf("companyform: %w", err)
		}
		g.registry = registry
	}
	return g, nil
}

// Catalog returns the catalog the generator renders from.
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}

// Controller returns a fresh controller bound to the generator's catalog and
// validator.
func (g *Generator) Controller(options ...form.Option) *form.Controller {
	base := []form.Option{form.WithValidator(g.validator), form.WithLogger(g.logger)}
	return form.New(g.catalog, append(base, options...)...)
}

// Generate renders req. Unknown companies wrap catalog.ErrCompanyNotFound.
func (g *Generator) Generate(ctx context.Context, req Request) ([]byte, error) {
	renderer, err := g.registry.Resolve(req.Renderer)
	if err != nil {
		return nil, fmt.Errorf("companyform: %w", err)
	}

	ctrl := g.Controller()
	if req.Company != "" && !ctrl.SelectCompany(req.Company) {
		return nil, fmt.Errorf("companyform: %w: %q", catalog.ErrCompanyNotFound, req.Company)
	}
	for _, field := range ctrl.Fields() {
		if value, ok := req.Values[field.Name]; ok {
			ctrl.SetValue(field.Name, value)
		}
	}
	if req.Validate {
		for _, field := range ctrl.Fields() {
			ctrl.Blur(field.Name)
		}
	}

	opts := req.Options
	if len(opts.Companies) == 0 {
		opts.Companies = g.catalog.Companies()
	}
	if opts.Theme == nil {
		cfg, err := g.resolveTheme(req)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	out, err := renderer.Render(ctx, ctrl.View(), opts)
	if err != nil {
		return nil, fmt.Errorf("companyform: render %s: %w", renderer.Name(), err)
	}
	return out, nil
}

func (g *Generator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if g.selector == nil {
		return nil, nil
	}
	name, variant := req.ThemeName, req.ThemeVariant
	if name == "" {
		name = g.defaultTheme
	}
	if variant == "" {
		variant = g.defaultVariant
	}
	selection, err := g.selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("companyform: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, nil
	}
	cfg := render.ThemeConfig(selection.Manifest, selection.Variant, g.fallbacks)
	if cfg != nil && selection.Theme != "" {
		cfg.Theme = selection.Theme
	}
	g.logger.Debug("theme resolved",
		zap.String("theme", cfg.Theme),
		zap.String("variant", cfg.Variant),
	)
	return cfg, nil
}
