package icons

import (
	"strings"
	"testing"
)

func TestDefault_KnownIcons(t *testing.T) {
	set := Default()
	for _, name := range []string{"Person", "AlternateEmail", "Business", "Comment", "Badge", "Phone", "Groups", "Public", "Event"} {
		markup, ok := set.Lookup(name)
		if !ok {
			t.Fatalf("expected icon %q", name)
		}
		if !strings.HasPrefix(markup, "<svg") || !strings.Contains(markup, "<path") {
			t.Fatalf("unexpected markup for %q: %q", name, markup)
		}
	}
	if got := set.Render("Unicorn"); got != "" {
		t.Fatalf("expected unknown icon to render nothing, got %q", got)
	}
	if got := set.Render(" Person "); got == "" {
		t.Fatalf("expected lookup to ignore surrounding space")
	}
}

func TestSanitizeRemovesScripts(t *testing.T) {
	input := `  <svg viewBox="0 0 24 24" onload="alert(1)"><script>alert('x')</script><path d="M0 0h24v24H0z" /></svg>`
	got := Sanitize(input)
	if got == "" {
		t.Fatalf("expected sanitized markup, got empty string")
	}
	if strings.Contains(got, "script") || strings.Contains(got, "onload") {
		t.Fatalf("expected active content to be removed, got %q", got)
	}
	if !strings.Contains(got, "<svg") || !strings.Contains(got, "<path") {
		t.Fatalf("expected svg/path elements to remain, got %q", got)
	}
}

func TestNewSet(t *testing.T) {
	set, err := NewSet(map[string]string{"Dot": `<svg><circle cx="12" cy="12" r="4"/></svg>`})
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	if !strings.Contains(set.Render("Dot"), "<circle") {
		t.Fatalf("expected circle markup, got %q", set.Render("Dot"))
	}
	if _, err := NewSet(map[string]string{"Bad": `<img src=x onerror=alert(1)>`}); err == nil {
		t.Fatalf("expected error for markup without svg")
	}
	if err := set.Register(" ", "<svg></svg>"); err == nil {
		t.Fatalf("expected error for empty name")
	}
	var nilSet *Set
	if _, ok := nilSet.Lookup("Dot"); ok {
		t.Fatalf("nil set must not resolve icons")
	}
}
