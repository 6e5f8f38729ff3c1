package vanilla

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-companyform/pkg/form"
	"github.com/goliatone/go-companyform/pkg/model"
	"github.com/goliatone/go-companyform/pkg/render"
	"github.com/goliatone/go-companyform/pkg/testsupport"
)

func newTestRenderer(t *testing.T, options ...Option) *Renderer {
	t.Helper()
	r, err := New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func acmeView(t *testing.T) form.View {
	t.Helper()
	ctrl := form.New(testsupport.SampleCatalog())
	if !ctrl.SelectCompany("Acme") {
		t.Fatalf("select Acme")
	}
	ctrl.SetValue("full_name", "A")
	ctrl.SetValue("department", "IT")
	return ctrl.View()
}

func renderOptions() render.RenderOptions {
	return render.RenderOptions{
		Companies:    []string{"Acme", "Globex"},
		SelectURL:    "/",
		ActionURL:    "/forms/Acme",
		ValidateURL:  "/forms/Acme/fields/{field}/validate",
		HiddenFields: render.MergeHiddenFields(nil, render.CSRFToken("tok<en>")),
		Stylesheets:  []string{"/assets/companyform.css"},
		Scripts:      []string{"/assets/companyform.js"},
	}
}

func TestRender_FullPage(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Render(context.Background(), acmeView(t), renderOptions())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	mustContain(t, html,
		`<title>Company Form</title>`,
		`<link rel="stylesheet" href="/assets/companyform.css">`,
		`<script src="/assets/companyform.js" defer></script>`,
		`<option value="">Select a company</option>`,
		`<option value="Acme" selected>Acme</option>`,
		`<option value="Globex">Globex</option>`,
		`action="/forms/Acme"`,
		`<input type="hidden" name="csrf_token" value="tok&lt;en&gt;">`,
		`id="field-full_name"`,
		`placeholder="Enter full name"`,
		`aria-invalid="true" aria-describedby="field-full_name-error"`,
		`<p id="field-full_name-error" class="companyform-error" role="alert">Name is too short</p>`,
		`type="email"`,
		`type="number"`,
		`<option value="">Select department</option>`,
		`<option value="IT" selected>IT</option>`,
		`<textarea id="field-comments"`,
		`placeholder="Enter comments"`,
		`id="field-start_date" name="start_date" type="date"`,
		`data-validate-url="/forms/Acme/fields/email_address/validate"`,
		`value="clear" formnovalidate>Clear</button>`,
		`value="submit">Submit</button>`,
		`<svg`,
	)
	if strings.Contains(html, "Select a company to start") {
		t.Fatalf("prompt must not render when a company is selected")
	}
	if strings.Contains(html, `id="field-start_date" name="start_date" type="date" value="" placeholder`) {
		t.Fatalf("fallback inputs carry no placeholder")
	}
}

func TestRender_FieldOrderFollowsView(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.RenderForm(context.Background(), acmeView(t), renderOptions())
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	html := string(out)
	order := []string{"field-full_name", "field-email_address", "field-team_size", "field-department", "field-comments", "field-start_date"}
	last := -1
	for _, id := range order {
		idx := strings.Index(html, `id="`+id+`"`)
		if idx < 0 || idx < last {
			t.Fatalf("field %s out of order", id)
		}
		last = idx
	}
}

func TestRender_NoCompanyShowsPrompt(t *testing.T) {
	r := newTestRenderer(t)
	ctrl := form.New(testsupport.SampleCatalog())
	out, err := r.Render(context.Background(), ctrl.View(), render.RenderOptions{Companies: []string{"Acme"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	mustContain(t, html, "Select a company to start", `<option value="Acme">Acme</option>`)
	if strings.Contains(html, `method="post"`) {
		t.Fatalf("no form expected without a company")
	}
}

func TestRender_SuccessBannerAndEscaping(t *testing.T) {
	r := newTestRenderer(t)
	view := form.View{Company: "Acme", Fields: []form.FieldView{{
		Name: "note", Label: "Note", Type: "text", Kind: "text",
		Value: `"><script>alert(1)</script>`, ControlID: "field-note", ErrorID: "field-note-error",
	}}}
	opts := renderOptions()
	opts.Banner = render.SuccessBanner()

	out, err := r.Render(context.Background(), view, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	mustContain(t, html, `role="status">Form submitted successfully!</div>`, `companyform-banner--success`)
	if strings.Contains(html, "<script>alert(1)") {
		t.Fatalf("field values must be escaped")
	}
	if !strings.Contains(html, `id="field-note-error" class="companyform-error" role="alert" hidden>`) {
		t.Fatalf("expected hidden error slot for a valid field")
	}
}

func TestRender_ThemePartialsAndVars(t *testing.T) {
	manifest := &theme.Manifest{
		Name:   "acme",
		Tokens: map[string]string{"brand": "#123456"},
		Templates: map[string]string{
			render.PartialSelect: "themes/acme/select.tmpl",
		},
		Assets: theme.Assets{Prefix: "/themes/acme", Files: map[string]string{"stylesheet": "acme.css"}},
	}
	overlay := fstest.MapFS{
		"themes/acme/select.tmpl": {Data: []byte(`<div class="acme-select">{{ field.label }}</div>`)},
	}
	for name, file := range bundledTemplates(t) {
		overlay[name] = file
	}

	r := newTestRenderer(t, WithTemplatesFS(overlay))
	opts := renderOptions()
	opts.Theme = render.ThemeConfig(manifest, "", nil)

	out, err := r.Render(context.Background(), acmeView(t), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	mustContain(t, html,
		`<div class="acme-select">Department</div>`,
		`<link rel="stylesheet" href="/themes/acme/acme.css">`,
		`--brand: #123456;`,
		`data-theme="acme"`,
	)
}

func TestRender_BrokenThemePartialFallsBack(t *testing.T) {
	r := newTestRenderer(t)
	opts := renderOptions()
	opts.Theme = &theme.RendererConfig{Partials: map[string]string{render.PartialInput: "themes/missing.tmpl"}}

	out, err := r.RenderForm(context.Background(), acmeView(t), opts)
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	mustContain(t, string(out), `id="field-full_name"`)
}

func TestRender_UnknownIconRendersNothing(t *testing.T) {
	r := newTestRenderer(t)
	view := form.View{Company: "Acme", Fields: []form.FieldView{
		form.NewFieldView(model.Normalize(model.RawField{Label: "Team Size", Type: "number", Icon: "Unicorn"}), "", ""),
	}}
	out, err := r.RenderForm(context.Background(), view, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	if strings.Contains(string(out), "<svg") {
		t.Fatalf("unknown icons must not render markup")
	}
}

func TestAssetsFS(t *testing.T) {
	for _, name := range []string{StylesheetName, ScriptName} {
		f, err := AssetsFS().Open(name)
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		_ = f.Close()
	}
}

func bundledTemplates(t *testing.T) fstest.MapFS {
	t.Helper()
	out := fstest.MapFS{}
	for _, name := range []string{templatePage, templateSelector, templateForm, templateField, templateInput, templateSelect, templateTextarea} {
		data, err := embeddedTemplates.ReadFile(name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		out[name] = &fstest.MapFile{Data: data}
	}
	return out
}

func mustContain(t *testing.T, html string, parts ...string) {
	t.Helper()
	for _, part := range parts {
		if !strings.Contains(html, part) {
			t.Fatalf("expected output to contain %q\n%s", part, html)
		}
	}
}
