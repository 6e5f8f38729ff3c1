package render

import (
	theme "github.com/goliatone/go-theme"
)

// Form actions posted back by rendered forms in the "action" field.
const (
	ActionField  = "action"
	ActionSubmit = "submit"
	ActionClear  = "clear"
)

// RenderOptions carry per-request data that sits around the form itself: the
// company selector, the endpoints the page posts to and the submission banner.
type RenderOptions struct {
	// Title is shown above the selector. Empty uses the renderer default.
	Title string
	// Companies lists the selectable company keys in catalog order.
	Companies []string
	// SelectURL is the GET endpoint the company selector submits to.
	SelectURL string
	// ActionURL is the POST endpoint for submit and clear.
	ActionURL string
	// ValidateURL is the per-field validation endpoint. The literal "{field}"
	// is replaced with the field name.
	ValidateURL string
	// HiddenFields are emitted as hidden inputs (CSRF token and friends).
	HiddenFields map[string]string
	// Banner is shown above the form, typically after a successful submit.
	Banner *Banner
	// Theme carries resolved tokens, partial overrides and asset URLs.
	Theme *theme.RendererConfig
	// Stylesheets are linked in the page head after the theme stylesheet.
	Stylesheets []string
	// Scripts are loaded at the end of the page body.
	Scripts []string
}

// Banner is a one-off status message rendered above the form.
type Banner struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SuccessMessage is shown after a submission passed validation.
const SuccessMessage = "Form submitted successfully!"

// SuccessBanner returns the banner rendered after an accepted submission.
func SuccessBanner() *Banner {
	return &Banner{Kind: "success", Message: SuccessMessage}
}
