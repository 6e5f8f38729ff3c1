// Package testsupport holds fixtures and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-companyform/pkg/catalog"
	"github.com/goliatone/go-companyform/pkg/model"
)

// SampleFields returns the field list used across renderer and server tests:
// one field of each kind, including a fallback type.
func SampleFields() []model.RawField {
	return []model.RawField{
		{Label: "Full Name", Type: "text", Icon: "Person", Validation: &model.Validation{
			Required:  true,
			MinLength: &model.LengthRule{Value: 2, Message: "Name is too short"},
		}},
		{Label: "Email Address", Type: "email", Icon: "AlternateEmail", Validation: &model.Validation{Required: true}},
		{Label: "Team Size", Type: "number"},
		{Label: "Department", Type: "select", Icon: "Business",
			Options:    []model.Option{{Name: "HR"}, {Name: "IT"}},
			Validation: &model.Validation{Required: true},
		},
		{Label: "Comments", Type: "textarea", Icon: "Comment", Validation: &model.Validation{
			MaxLength: &model.LengthRule{Value: 20},
		}},
		{Label: "Start Date", Type: "date"},
	}
}

// SampleCatalog wraps SampleFields under the "Acme" company plus an empty
// "Globex" company.
func SampleCatalog() *catalog.Catalog {
	return catalog.MustNew(
		catalog.Company{Key: "Acme", Fields: SampleFields()},
		catalog.Company{Key: "Globex", Fields: []model.RawField{
			{Label: "Employee ID", Validation: &model.Validation{
				Required: true,
				Pattern:  &model.Rule{Pattern: "^GX-[0-9]{5}$"},
			}},
		}},
	)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written, so tests can assert they match.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
