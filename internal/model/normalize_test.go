package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize_DerivesNameFromLabel(t *testing.T) {
	got := Normalize(RawField{Label: "Full Name", Type: "TEXT"})
	want := Field{
		Name:    "full_name",
		Label:   "Full Name",
		Type:    "text",
		Options: []Option{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_NamePrecedence(t *testing.T) {
	cases := []struct {
		name string
		raw  RawField
		want string
	}{
		{name: "explicit", raw: RawField{Name: "contact", Label: "Email Address"}, want: "contact"},
		{name: "label", raw: RawField{Label: "Email  Address\tLine"}, want: "email_address_line"},
		{name: "fallback", raw: RawField{}, want: UnnamedField},
		{name: "label kept verbatim", raw: RawField{Label: "ZIP Code"}, want: "zip_code"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.raw).Name; got != tc.want {
				t.Fatalf("name: want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalize_Defaults(t *testing.T) {
	got := Normalize(RawField{Label: "Notes"})
	if got.Type != DefaultType {
		t.Fatalf("expected default type %q, got %q", DefaultType, got.Type)
	}
	if got.Options == nil || len(got.Options) != 0 {
		t.Fatalf("expected empty non-nil options, got %#v", got.Options)
	}
	if got.Validation != nil {
		t.Fatalf("expected nil validation, got %#v", got.Validation)
	}
}

func TestNormalize_LowercaseKeysWin(t *testing.T) {
	raw := RawField{
		Label:            "Department",
		Validation:       &Validation{Required: false},
		ValidationLegacy: &Validation{Required: true},
		Options:          []Option{},
		OptionsLegacy:    []Option{{Name: "HR"}},
	}
	got := Normalize(raw)
	if got.Validation == nil || got.Validation.Required {
		t.Fatalf("expected lowercase validation to win, got %#v", got.Validation)
	}
	if len(got.Options) != 0 {
		t.Fatalf("expected lowercase (empty) options to win, got %#v", got.Options)
	}

	legacyOnly := Normalize(RawField{ValidationLegacy: &Validation{Required: true}, OptionsLegacy: []Option{{Name: "IT"}}})
	if !legacyOnly.Required() {
		t.Fatalf("expected legacy validation to be used when lowercase absent")
	}
	if diff := cmp.Diff([]Option{{Name: "IT"}}, legacyOnly.Options); diff != "" {
		t.Fatalf("legacy options mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_DoesNotAliasInput(t *testing.T) {
	raw := RawField{Validation: &Validation{Pattern: &Rule{Pattern: "^a"}}}
	got := Normalize(raw)
	got.Validation.Pattern.Pattern = "^b"
	if raw.Validation.Pattern.Pattern != "^a" {
		t.Fatalf("normalize must copy validation rules")
	}
}

func TestNormalizeAll_DeduplicatesNames(t *testing.T) {
	fields := NormalizeAll([]RawField{
		{Label: "Phone"},
		{Label: "phone"},
		{Name: "phone_2"},
		{Label: "Phone"},
	})
	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	want := []string{"phone", "phone_2", "phone_2_2", "phone_3"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestKindOf(t *testing.T) {
	cases := map[string]Kind{
		"text":     KindText,
		"email":    KindEmail,
		"number":   KindNumber,
		"select":   KindSelect,
		"textarea": KindTextarea,
		"date":     KindFallback,
		"":         KindFallback,
	}
	for in, want := range cases {
		if got := KindOf(in); got != want {
			t.Fatalf("KindOf(%q): want %q, got %q", in, want, got)
		}
	}
}
