// Package icons resolves the symbolic icon names used in catalog files
// (Person, AlternateEmail, ...) to inline SVG markup. All markup passes a
// bluemonday allowlist before it is handed out, including custom sets.
package icons

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

const svgOpen = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="20" height="20" fill="currentColor" aria-hidden="true" focusable="false" class="icon">`

var builtin = map[string]string{
	"Person":         "M12 12c2.21 0 4-1.79 4-4s-1.79-4-4-4-4 1.79-4 4 1.79 4 4 4zm0 2c-2.67 0-8 1.34-8 4v2h16v-2c0-2.66-5.33-4-8-4z",
	"AlternateEmail": "M12 2C6.48 2 2 6.48 2 12s4.48 10 10 10h5v-2h-5c-4.34 0-8-3.66-8-8s3.66-8 8-8 8 3.66 8 8v1.43c0 .79-.71 1.57-1.5 1.57s-1.5-.78-1.5-1.57V12c0-2.76-2.24-5-5-5s-5 2.24-5 5 2.24 5 5 5c1.38 0 2.64-.56 3.54-1.47.65.89 1.77 1.47 2.96 1.47 1.97 0 3.5-1.6 3.5-3.57V12c0-5.52-4.48-10-10-10zm0 13c-1.66 0-3-1.34-3-3s1.34-3 3-3 3 1.34 3 3-1.34 3-3 3z",
	"Business":       "M12 7V3H2v18h20V7H12zM6 19H4v-2h2v2zm0-4H4v-2h2v2zm0-4H4V9h2v2zm0-4H4V5h2v2zm4 12H8v-2h2v2zm0-4H8v-2h2v2zm0-4H8V9h2v2zm0-4H8V5h2v2zm10 12h-8v-2h2v-2h-2v-2h2v-2h-2V9h8v10zm-2-8h-2v2h2v-2zm0 4h-2v2h2v-2z",
	"Comment":        "M21.99 4c0-1.1-.89-2-1.99-2H4c-1.1 0-2 .9-2 2v12c0 1.1.9 2 2 2h14l4 4-.01-18zM18 14H6v-2h12v2zm0-3H6V9h12v2zm0-3H6V6h12v2z",
	"Badge":          "M20 7h-5V4c0-1.1-.9-2-2-2h-2c-1.1 0-2 .9-2 2v3H4c-1.1 0-2 .9-2 2v11c0 1.1.9 2 2 2h16c1.1 0 2-.9 2-2V9c0-1.1-.9-2-2-2zM9 12c.83 0 1.5.67 1.5 1.5S9.83 15 9 15s-1.5-.67-1.5-1.5S8.17 12 9 12zm3 6H6v-.75c0-1 2-1.5 3-1.5s3 .5 3 1.5V18zm1-9h-2V4h2v5zm5 7.5h-4V15h4v1.5zm0-3h-4V12h4v1.5z",
	"Phone":          "M6.62 10.79c1.44 2.83 3.76 5.14 6.59 6.59l2.2-2.2c.27-.27.67-.36 1.02-.24 1.12.37 2.33.57 3.57.57.55 0 1 .45 1 1V20c0 .55-.45 1-1 1-9.39 0-17-7.61-17-17 0-.55.45-1 1-1h3.5c.55 0 1 .45 1 1 0 1.25.2 2.45.57 3.57.11.35.03.74-.25 1.02l-2.2 2.2z",
	"Groups":         "M16 11c1.66 0 2.99-1.34 2.99-3S17.66 5 16 5c-1.66 0-3 1.34-3 3s1.34 3 3 3zm-8 0c1.66 0 2.99-1.34 2.99-3S9.66 5 8 5C6.34 5 5 6.34 5 8s1.34 3 3 3zm0 2c-2.33 0-7 1.17-7 3.5V19h14v-2.5c0-2.33-4.67-3.5-7-3.5zm8 0c-.29 0-.62.02-.97.05 1.16.84 1.97 1.97 1.97 3.45V19h6v-2.5c0-2.33-4.67-3.5-7-3.5z",
	"Public":         "M12 2C6.48 2 2 6.48 2 12s4.48 10 10 10 10-4.48 10-10S17.52 2 12 2zm-1 17.93c-3.95-.49-7-3.85-7-7.93 0-.62.08-1.21.21-1.79L9 15v1c0 1.1.9 2 2 2v1.93zm6.9-2.54c-.26-.81-1-1.39-1.9-1.39h-1v-3c0-.55-.45-1-1-1H8v-2h2c.55 0 1-.45 1-1V7h2c1.1 0 2-.9 2-2v-.41c2.93 1.19 5 4.06 5 7.41 0 2.08-.8 3.97-2.1 5.39z",
	"Event":          "M17 12h-5v5h5v-5zM16 1v2H8V1H6v2H5c-1.11 0-1.99.9-1.99 2L3 19c0 1.1.89 2 2 2h14c1.1 0 2-.9 2-2V5c0-1.1-.9-2-2-2h-1V1h-2zm3 18H5V8h14v11z",
}

// Set maps icon names to sanitized SVG markup. It is safe for concurrent use.
type Set struct {
	mu    sync.RWMutex
	icons map[string]string
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
)

// Default returns the built-in icon set.
func Default() *Set {
	defaultOnce.Do(func() {
		defaultSet = &Set{icons: make(map[string]string, len(builtin))}
		for name, path := range builtin {
			defaultSet.icons[name] = Sanitize(svgOpen + `<path d="` + path + `"></path></svg>`)
		}
	})
	return defaultSet
}

// NewSet builds a set from raw SVG markup keyed by name. Entries that are
// empty after sanitizing are rejected.
func NewSet(markup map[string]string) (*Set, error) {
	s := &Set{icons: make(map[string]string, len(markup))}
	for name, raw := range markup {
		if err := s.Register(name, raw); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register sanitizes raw and stores it under name, replacing any previous
// entry.
func (s *Set) Register(name, raw string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("icons: name is required")
	}
	clean := Sanitize(raw)
	if clean == "" {
		return fmt.Errorf("icons: %q has no usable svg markup", name)
	}
	s.mu.Lock()
	s.icons[name] = clean
	s.mu.Unlock()
	return nil
}

// Lookup returns the markup for name.
func (s *Set) Lookup(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	markup, ok := s.icons[strings.TrimSpace(name)]
	return markup, ok
}

// Render returns the markup for name, or "" for unknown names.
func (s *Set) Render(name string) string {
	markup, _ := s.Lookup(name)
	return markup
}

// Names lists the icon names in the set, sorted.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.icons))
	for name := range s.icons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Sanitize strips everything outside the SVG allowlist. Scripts, event
// handlers and foreign elements are removed; "" means nothing survived.
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := strings.TrimSpace(svgPolicy().Sanitize(trimmed))
	if !strings.Contains(cleaned, "<svg") {
		return ""
	}
	return cleaned
}

func svgPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.StrictPolicy()
		p.AllowElements("svg", "g", "path", "circle", "rect", "line", "polyline", "polygon", "ellipse", "title", "desc")

		p.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "aria-hidden", "role", "focusable", "class",
		).OnElements("svg")

		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"} {
			p.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "fill", "stroke", "stroke-width",
				"fill-rule", "clip-rule",
			).OnElements(el)
		}
		p.AllowAttrs("fill", "transform").OnElements("g")

		policy = p
	})
	return policy
}
