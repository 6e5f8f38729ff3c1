package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-companyform/pkg/form"
	"github.com/goliatone/go-companyform/pkg/model"
	"github.com/goliatone/go-companyform/pkg/render"
)

const defaultMaxAttempts = 3

// Renderer serves two terminal roles: Render prints a static summary of a
// view, Fill runs an interactive session against a form.Controller.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	maxAttempts  int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, pretty output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatPrettyText,
		theme:        DefaultTheme,
		maxAttempts:  defaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

// Render prints the view without prompting.
func (r *Renderer) Render(ctx context.Context, view form.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.outputFormat == OutputFormatJSON {
		payload, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode view: %w", err)
		}
		return payload, nil
	}

	var b strings.Builder
	if opts.Banner != nil {
		b.WriteString(r.theme.InfoPrefix + opts.Banner.Message + "\n\n")
	}
	if view.Company == "" {
		b.WriteString("Select a company to start\n")
		for _, company := range opts.Companies {
			b.WriteString("  - " + company + "\n")
		}
		return []byte(b.String()), nil
	}

	b.WriteString(view.Company + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(view.Company))) + "\n")
	for _, field := range view.Fields {
		marker := ""
		if field.Required {
			marker = " *"
		}
		fmt.Fprintf(&b, "%s%s [%s]", field.Label, marker, field.Kind)
		if field.Value != "" {
			fmt.Fprintf(&b, ": %s", field.Value)
		}
		b.WriteString("\n")
		if field.Kind == model.KindSelect && len(field.Options) > 0 {
			labels := make([]string, 0, len(field.Options))
			for _, opt := range field.Options {
				labels = append(labels, opt.Label())
			}
			b.WriteString("    options: " + strings.Join(labels, ", ") + "\n")
		}
		if field.Error != "" {
			b.WriteString("    " + r.theme.ErrorPrefix + field.Error + "\n")
		}
	}
	return []byte(b.String()), nil
}

// Fill runs an interactive session: it asks for a company when none is
// selected, prompts every field through ctrl.SetValue, then submits after
// confirmation. Declining the confirmation clears the form and returns
// ErrAborted.
func (r *Renderer) Fill(ctx context.Context, ctrl *form.Controller, companies []string) (form.Result, error) {
	if ctrl == nil {
		return form.Result{}, errors.New("tui: controller is required")
	}
	if ctrl.Company() == "" {
		if err := r.selectCompany(ctx, ctrl, companies); err != nil {
			return form.Result{}, err
		}
	}

	for {
		for _, field := range ctrl.Fields() {
			if err := r.promptField(ctx, ctrl, field); err != nil {
				return form.Result{}, err
			}
		}

		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Submit the form?", Default: true})
		if err != nil {
			return form.Result{}, err
		}
		if !ok {
			ctrl.Clear()
			return form.Result{}, ErrAborted
		}

		result := ctrl.Submit()
		if result.Success {
			if err := r.driver.Info(ctx, r.theme.InfoPrefix+render.SuccessMessage); err != nil {
				return result, err
			}
			return result, nil
		}
		for _, field := range ctrl.Fields() {
			if msg := result.Errors[field.Name]; msg != "" {
				if err := r.driver.Info(ctx, r.theme.ErrorPrefix+field.Label+": "+msg); err != nil {
					return result, err
				}
			}
		}
		retry, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Fix the errors and try again?", Default: true})
		if err != nil || !retry {
			if err == nil {
				err = ErrAborted
			}
			return result, err
		}
	}
}

func (r *Renderer) selectCompany(ctx context.Context, ctrl *form.Controller, companies []string) error {
	if len(companies) == 0 {
		return ErrNoCompanies
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Select a company",
		Options:      companies,
		DefaultIndex: -1,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(companies) {
		return fmt.Errorf("tui: company selection out of range: %d", idx)
	}
	ctrl.SelectCompany(companies[idx])
	return nil
}

// promptField asks for one field until the controller accepts the value.
func (r *Renderer) promptField(ctx context.Context, ctrl *form.Controller, field model.Field) error {
	validate := func(value string) error {
		if msg := ctrl.SetValue(field.Name, value); msg != "" {
			return errors.New(msg)
		}
		return nil
	}

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		value, err := r.ask(ctx, field, ctrl.Value(field.Name), validate)
		if err != nil {
			return err
		}
		msg := ctrl.SetValue(field.Name, value)
		if msg == "" {
			return nil
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Label)
}

func (r *Renderer) ask(ctx context.Context, field model.Field, current string, validate func(string) error) (string, error) {
	message := field.Label
	if field.Required() {
		message += " *"
	}
	placeholder := form.Placeholder(field)

	switch field.Kind() {
	case model.KindSelect:
		options := make([]string, 0, len(field.Options)+1)
		if !field.Required() {
			options = append(options, "")
		}
		defaultIndex := -1
		for _, opt := range field.Options {
			if opt.Value() == current {
				defaultIndex = len(options)
			}
			options = append(options, opt.Label())
		}
		if len(options) == 0 {
			return "", nil
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      options,
			DefaultIndex: defaultIndex,
			Help:         placeholder,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(options) {
			return "", nil
		}
		if !field.Required() {
			if idx == 0 {
				return "", nil
			}
			idx--
		}
		return field.Options[idx].Value(), nil
	case model.KindTextarea:
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message:   message,
			Default:   current,
			Help:      placeholder,
			Validator: validate,
		})
	default:
		return r.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   current,
			Help:      placeholder,
			Validator: validate,
		})
	}
}
