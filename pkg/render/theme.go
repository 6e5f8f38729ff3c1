package render

import (
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Partial keys a theme can override with its own template paths.
const (
	PartialInput    = "forms.input"
	PartialSelect   = "forms.select"
	PartialTextarea = "forms.textarea"
)

// ThemeConfig resolves a manifest and variant into the renderer view of a
// theme. Variant tokens, templates and asset files win over the base
// manifest; fallbacks fill partial keys neither of them defines. A nil
// manifest yields nil.
func ThemeConfig(manifest *theme.Manifest, variant string, fallbacks map[string]string) *theme.RendererConfig {
	if manifest == nil {
		return nil
	}

	tokens := mergeStrings(nil, manifest.Tokens)
	partials := mergeStrings(nil, fallbacks)
	partials = mergeStrings(partials, manifest.Templates)
	files := mergeStrings(nil, manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	if v, ok := manifest.Variants[variant]; ok {
		tokens = mergeStrings(tokens, v.Tokens)
		partials = mergeStrings(partials, v.Templates)
		files = mergeStrings(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	} else {
		variant = ""
	}

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Tokens:   tokens,
		CSSVars:  CSSVars(tokens),
		Partials: partials,
		AssetURL: assetResolver(prefix, files),
	}
}

// CSSVars maps design tokens to custom properties ("brand" -> "--brand").
func CSSVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !strings.HasPrefix(key, "--") {
			key = "--" + key
		}
		vars[key] = value
	}
	return vars
}

// CSSVarsStyle renders custom properties as a sorted :root block.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

// Partial returns the theme override for key, or fallback.
func Partial(cfg *theme.RendererConfig, key, fallback string) string {
	if cfg == nil {
		return fallback
	}
	if candidate := strings.TrimSpace(cfg.Partials[key]); candidate != "" {
		return candidate
	}
	return fallback
}

// AssetURL resolves key through the theme, returning "" when unknown.
func AssetURL(cfg *theme.RendererConfig, key string) string {
	if cfg == nil || cfg.AssetURL == nil {
		return ""
	}
	return cfg.AssetURL(key)
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
			return file
		}
		if strings.Contains(prefix, "://") {
			return strings.TrimRight(prefix, "/") + "/" + file
		}
		return path.Join(prefix, file)
	}
}

func mergeStrings(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
