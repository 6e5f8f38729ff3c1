package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-companyform/pkg/render"
)

func testManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":   "#123456",
			"surface": "#ffffff",
		},
		Templates: map[string]string{
			render.PartialInput: "themes/acme/input.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Templates: map[string]string{
					render.PartialSelect: "themes/acme/dark/select.tmpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{"stylesheet": "theme.dark.css"},
				},
			},
		},
	}
}

func TestThemeConfig_MergesVariant(t *testing.T) {
	fallbacks := map[string]string{
		render.PartialInput:    "templates/fields/input.tmpl",
		render.PartialTextarea: "templates/fields/textarea.tmpl",
	}
	cfg := render.ThemeConfig(testManifest(), "dark", fallbacks)
	if cfg == nil {
		t.Fatalf("expected config")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected identity: %s/%s", cfg.Theme, cfg.Variant)
	}

	wantPartials := map[string]string{
		render.PartialInput:    "themes/acme/input.tmpl",
		render.PartialSelect:   "themes/acme/dark/select.tmpl",
		render.PartialTextarea: "templates/fields/textarea.tmpl",
	}
	if diff := cmp.Diff(wantPartials, cfg.Partials); diff != "" {
		t.Fatalf("partials mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"--brand": "#654321", "--surface": "#ffffff"}, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := render.AssetURL(cfg, "stylesheet"); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := render.AssetURL(cfg, "missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
}

func TestThemeConfig_UnknownVariantUsesBase(t *testing.T) {
	cfg := render.ThemeConfig(testManifest(), "sepia", nil)
	if cfg.Variant != "" {
		t.Fatalf("expected empty variant, got %q", cfg.Variant)
	}
	if cfg.Tokens["brand"] != "#123456" {
		t.Fatalf("expected base token, got %q", cfg.Tokens["brand"])
	}
	if got := render.AssetURL(cfg, "stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if render.ThemeConfig(nil, "dark", nil) != nil {
		t.Fatalf("expected nil config for nil manifest")
	}
}

func TestCSSVarsStyle(t *testing.T) {
	got := render.CSSVarsStyle(map[string]string{"--b": "2", "--a": "1"})
	want := ":root {\n  --a: 1;\n  --b: 2;\n}"
	if got != want {
		t.Fatalf("style mismatch\nwant: %q\n got: %q", want, got)
	}
	if render.CSSVarsStyle(nil) != "" {
		t.Fatalf("expected empty style")
	}
}

func TestPartial(t *testing.T) {
	cfg := &theme.RendererConfig{Partials: map[string]string{render.PartialInput: " custom.tmpl "}}
	if got := render.Partial(cfg, render.PartialInput, "default.tmpl"); got != "custom.tmpl" {
		t.Fatalf("expected override, got %q", got)
	}
	if got := render.Partial(cfg, render.PartialSelect, "default.tmpl"); got != "default.tmpl" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := render.Partial(nil, render.PartialSelect, "default.tmpl"); got != "default.tmpl" {
		t.Fatalf("expected fallback for nil config, got %q", got)
	}
}
