package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-companyform/pkg/form"
	"github.com/goliatone/go-companyform/pkg/icons"
	"github.com/goliatone/go-companyform/pkg/model"
	"github.com/goliatone/go-companyform/pkg/render"
	rendertemplate "github.com/goliatone/go-companyform/pkg/render/template"
	"github.com/goliatone/go-companyform/pkg/render/template/gotemplate"
)

// Template names inside TemplatesFS.
const (
	templatePage     = "templates/page.tmpl"
	templateSelector = "templates/selector.tmpl"
	templateForm     = "templates/form.tmpl"
	templateField    = "templates/field.tmpl"
	templateInput    = "templates/fields/input.tmpl"
	templateSelect   = "templates/fields/select.tmpl"
	templateTextarea = "templates/fields/textarea.tmpl"
)

// DefaultTitle heads the page when RenderOptions.Title is empty.
const DefaultTitle = "Company Form"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	icons            *icons.Set
	logger           *zap.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithIcons replaces the built-in icon set.
func WithIcons(set *icons.Set) Option {
	return func(cfg *config) {
		if set != nil {
			cfg.icons = set
		}
	}
}

// WithLogger attaches a logger for template fallbacks.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer produces a full HTML page (selector, banner, form) from a form view.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	icons     *icons.Set
	logger    *zap.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		icons:      icons.Default(),
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, icons: cfg.icons, logger: cfg.logger}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the complete page. A view without a company renders the
// selector and the "Select a company to start" prompt only.
func (r *Renderer) Render(ctx context.Context, view form.View, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	selector, err := r.templates.RenderTemplate(templateSelector, map[string]any{
		"classes":    classMap(),
		"companies":  opts.Companies,
		"company":    view.Company,
		"select_url": opts.SelectURL,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render selector: %w", err)
	}

	var formHTML string
	if view.Company != "" || len(view.Fields) > 0 {
		out, err := r.RenderForm(ctx, view, opts)
		if err != nil {
			return nil, err
		}
		formHTML = string(out)
	}

	stylesheets := make([]string, 0, len(opts.Stylesheets)+1)
	if href := render.AssetURL(opts.Theme, "stylesheet"); href != "" {
		stylesheets = append(stylesheets, href)
	}
	stylesheets = append(stylesheets, opts.Stylesheets...)

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	var themeStyle, themeName, themeVariant string
	if opts.Theme != nil {
		themeStyle = render.CSSVarsStyle(opts.Theme.CSSVars)
		themeName, themeVariant = opts.Theme.Theme, opts.Theme.Variant
	}

	result, err := r.templates.RenderTemplate(templatePage, map[string]any{
		"classes":       classMap(),
		"title":         title,
		"selector":      selector,
		"form":          formHTML,
		"banner":        opts.Banner,
		"stylesheets":   stylesheets,
		"scripts":       scriptURLs(opts),
		"theme_style":   themeStyle,
		"theme_name":    themeName,
		"theme_variant": themeVariant,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(result), nil
}

// RenderForm writes only the <form> element for view.
func (r *Renderer) RenderForm(_ context.Context, view form.View, opts render.RenderOptions) ([]byte, error) {
	fields := make([]string, 0, len(view.Fields))
	for _, field := range view.Fields {
		markup, err := r.renderField(field, opts)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: render field %q: %w", field.Name, err)
		}
		fields = append(fields, markup)
	}

	result, err := r.templates.RenderTemplate(templateForm, map[string]any{
		"classes":       classMap(),
		"company":       view.Company,
		"action_url":    opts.ActionURL,
		"action_field":  render.ActionField,
		"action_submit": render.ActionSubmit,
		"action_clear":  render.ActionClear,
		"hidden":        render.SortedHiddenFields(opts.HiddenFields),
		"fields":        fields,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderField(field form.FieldView, opts render.RenderOptions) (string, error) {
	partialKey, fallback, inputType := controlTemplate(field)
	templateName := render.Partial(opts.Theme, partialKey, fallback)

	data := map[string]any{
		"classes":      classMap(),
		"field":        field,
		"input_type":   inputType,
		"validate_url": validateURL(opts.ValidateURL, field.Name),
	}

	control, err := r.templates.RenderTemplate(templateName, data)
	if err != nil && templateName != fallback {
		r.logger.Warn("theme partial failed, using default",
			zap.String("partial", templateName),
			zap.Error(err),
		)
		control, err = r.templates.RenderTemplate(fallback, data)
	}
	if err != nil {
		return "", err
	}

	data["control"] = control
	data["icon"] = r.icons.Render(field.Icon)
	return r.templates.RenderTemplate(templateField, data)
}

// controlTemplate selects the control partial for a field kind. Fallback
// kinds render a plain input carrying the raw type string.
func controlTemplate(field form.FieldView) (partialKey, fallback, inputType string) {
	switch field.Kind {
	case model.KindSelect:
		return render.PartialSelect, templateSelect, ""
	case model.KindTextarea:
		return render.PartialTextarea, templateTextarea, ""
	case model.KindText, model.KindEmail, model.KindNumber:
		return render.PartialInput, templateInput, string(field.Kind)
	default:
		return render.PartialInput, templateInput, field.Type
	}
}

func validateURL(pattern, name string) string {
	if pattern == "" {
		return ""
	}
	return strings.ReplaceAll(pattern, "{field}", url.PathEscape(name))
}

func scriptURLs(opts render.RenderOptions) []string {
	scripts := make([]string, 0, len(opts.Scripts)+1)
	scripts = append(scripts, opts.Scripts...)
	if href := render.AssetURL(opts.Theme, "script"); href != "" {
		scripts = append(scripts, href)
	}
	return scripts
}
