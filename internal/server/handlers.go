package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goliatone/go-companyform/internal/metrics"
	"github.com/goliatone/go-companyform/pkg/catalog"
	"github.com/goliatone/go-companyform/pkg/form"
	"github.com/goliatone/go-companyform/pkg/openapi"
	"github.com/goliatone/go-companyform/pkg/render"
	"github.com/goliatone/go-companyform/pkg/renderers/vanilla"
)

// ValueField carries the candidate value posted to the validate endpoint.
const ValueField = "value"

type submitResponse struct {
	Success      bool              `json:"success"`
	SubmissionID string            `json:"submissionId,omitempty"`
	Values       map[string]string `json:"values,omitempty"`
	Errors       map[string]string `json:"errors"`
}

type validateResponse struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

func (s *Server) controller() *form.Controller {
	return form.New(s.catalog,
		form.WithValidator(s.validator),
		form.WithSubmitHandler(s.recordSubmission),
		form.WithLogger(s.logger),
	)
}

// recordSubmission logs and counts an accepted submission, checks it against
// the exported schema, then forwards it.
func (s *Server) recordSubmission(sub form.Submission) {
	metrics.ObserveSubmission(sub.Company, true)
	s.logger.Info("submission accepted",
		zap.String("company", sub.Company),
		zap.String("submission_id", sub.ID),
		zap.Int("fields", len(sub.Values)),
	)
	if fields, ok := s.catalog.Normalized(sub.Company); ok {
		if err := openapi.CheckValues(fields, sub.Values); err != nil {
			s.logger.Warn("submission does not match exported schema",
				zap.String("submission_id", sub.ID),
				zap.Error(err),
			)
		}
	}
	if s.onSubmit != nil {
		s.onSubmit(sub)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctrl := s.controller()
	status := http.StatusOK
	if company := r.URL.Query().Get("company"); company != "" && !ctrl.SelectCompany(company) {
		status = http.StatusNotFound
	}
	s.renderPage(w, r, ctrl, nil, status)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.postedForm(w, r)
	if !ok {
		return
	}
	company := ctrl.Company()

	for _, field := range ctrl.Fields() {
		if values, posted := r.PostForm[field.Name]; posted && len(values) > 0 {
			ctrl.SetValue(field.Name, values[0])
		}
	}

	if r.PostForm.Get(render.ActionField) == render.ActionClear {
		ctrl.Clear()
		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, submitResponse{Errors: map[string]string{}})
			return
		}
		s.renderPage(w, r, ctrl, nil, http.StatusOK)
		return
	}

	result := ctrl.Submit()
	status := http.StatusOK
	var banner *render.Banner
	if result.Success {
		banner = render.SuccessBanner()
	} else {
		metrics.ObserveSubmission(company, false)
		status = http.StatusUnprocessableEntity
	}

	if wantsJSON(r) {
		writeJSON(w, status, submitResponse{
			Success:      result.Success,
			SubmissionID: result.SubmissionID,
			Values:       result.Values,
			Errors:       result.Errors,
		})
		return
	}
	s.renderPage(w, r, ctrl, banner, status)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := s.postedForm(w, r)
	if !ok {
		return
	}
	name := pathParam(r, "field")
	known := false
	for _, field := range ctrl.Fields() {
		if field.Name == name {
			known = true
			break
		}
	}
	if !known {
		writeError(w, http.StatusNotFound, "FIELD_NOT_FOUND", "unknown field: "+name)
		return
	}

	msg := ctrl.SetValue(name, r.PostForm.Get(ValueField))
	metrics.ObserveValidation(ctrl.Company(), msg == "")
	writeJSON(w, http.StatusOK, validateResponse{Field: name, Error: msg})
}

// postedForm parses the body, verifies the CSRF token and selects the company
// named in the path. It writes the error response itself.
func (s *Server) postedForm(w http.ResponseWriter, r *http.Request) (*form.Controller, bool) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_FORM", "malformed form body")
		return nil, false
	}
	if !s.csrf.Verify(r.PostForm.Get(render.DefaultCSRFField)) {
		metrics.CSRFRejectionsTotal.Inc()
		writeError(w, http.StatusForbidden, "CSRF_INVALID", "missing or expired form token")
		return nil, false
	}
	company := pathParam(r, "company")
	ctrl := s.controller()
	if !ctrl.SelectCompany(company) {
		writeError(w, http.StatusNotFound, "COMPANY_NOT_FOUND", "unknown company: "+company)
		return nil, false
	}
	return ctrl, true
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, ctrl *form.Controller, banner *render.Banner, status int) {
	renderer, err := s.renderers.Resolve(r.URL.Query().Get("renderer"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "UNKNOWN_RENDERER", err.Error())
		return
	}
	token, err := s.csrf.Generate()
	if err != nil {
		s.logger.Error("generate csrf token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	opts := render.RenderOptions{
		Title:        s.title,
		Companies:    s.catalog.Companies(),
		SelectURL:    "/",
		HiddenFields: render.MergeHiddenFields(nil, render.CSRFToken(token)),
		Banner:       banner,
		Theme:        s.theme,
		Stylesheets:  []string{AssetsPrefix + vanilla.StylesheetName},
		Scripts:      []string{AssetsPrefix + vanilla.ScriptName},
	}
	if company := ctrl.Company(); company != "" {
		base := "/forms/" + url.PathEscape(company)
		opts.ActionURL = base
		opts.ValidateURL = base + "/fields/{field}/validate"
	}

	out, err := renderer.Render(r.Context(), ctrl.View(), opts)
	if err != nil {
		s.logger.Error("render page", zap.String("renderer", renderer.Name()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "RENDER_FAILED", "could not render form")
		return
	}
	metrics.RendersTotal.WithLabelValues(renderer.Name()).Inc()

	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		s.logger.Debug("write page", zap.Error(err))
	}
}

func (s *Server) handleCompanies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"companies": s.catalog.Companies()})
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	company := pathParam(r, "company")
	fields, ok := s.catalog.Normalized(company)
	if !ok {
		writeError(w, http.StatusNotFound, "COMPANY_NOT_FOUND", "unknown company: "+company)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"company": company, "fields": fields})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	company := pathParam(r, "company")
	payload, err := openapi.CompanySchemaJSON(s.catalog, company)
	if errors.Is(err, catalog.ErrCompanyNotFound) {
		writeError(w, http.StatusNotFound, "COMPANY_NOT_FOUND", "unknown company: "+company)
		return
	}
	if err != nil {
		s.logger.Error("build schema", zap.String("company", company), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write(payload)
}

func (s *Server) handleDocument(format openapi.Format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := openapi.Document(r.Context(), s.catalog, openapi.Info{Title: s.documentTitle()}, format)
		if err != nil {
			s.logger.Error("build openapi document", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(payload)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "companies": s.catalog.Len()})
}

func (s *Server) documentTitle() string {
	if s.title != "" {
		return s.title
	}
	return vanilla.DefaultTitle
}

// pathParam returns the decoded route parameter.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
