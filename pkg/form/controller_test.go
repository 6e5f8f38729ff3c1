package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-companyform/pkg/catalog"
	"github.com/goliatone/go-companyform/pkg/model"
	"github.com/goliatone/go-companyform/pkg/validation"
)

func fullNameField() model.RawField {
	return model.RawField{Label: "Full Name", Type: "text", Validation: &model.Validation{Required: true}}
}

func departmentField() model.RawField {
	return model.RawField{
		Label:      "Department",
		Type:       "select",
		Options:    []model.Option{{Name: "HR"}, {Name: "IT"}},
		Validation: &model.Validation{Required: true},
	}
}

func testCatalog() *catalog.Catalog {
	return catalog.MustNew(
		catalog.Company{Key: "Acme", Fields: []model.RawField{
			fullNameField(),
			{Label: "Email", Type: "email", Validation: &model.Validation{Required: true}},
		}},
		catalog.Company{Key: "Globex", Fields: []model.RawField{departmentField()}},
	)
}

func TestSubmit_EmptyRequiredField(t *testing.T) {
	ctrl := New(nil, WithFields([]model.RawField{fullNameField()}))

	res := ctrl.Submit()
	if res.Success {
		t.Fatalf("expected failure")
	}
	want := map[string]string{"full_name": "Full Name is required"}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, ctrl.Errors()); diff != "" {
		t.Fatalf("published errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_SuccessResetsValues(t *testing.T) {
	var got []Submission
	ctrl := New(nil,
		WithFields([]model.RawField{fullNameField()}),
		WithSubmitHandler(func(s Submission) { got = append(got, s) }),
	)

	ctrl.SetValue("full_name", "Ada")
	res := ctrl.Submit()
	if !res.Success {
		t.Fatalf("expected success, errors: %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("expected empty errors, got %v", res.Errors)
	}
	if diff := cmp.Diff(map[string]string{}, ctrl.Values()); diff != "" {
		t.Fatalf("values must reset after success (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"full_name": "Ada"}, res.Values); diff != "" {
		t.Fatalf("result values mismatch (-want +got):\n%s", diff)
	}
	if len(got) != 1 || got[0].ID == "" || got[0].ID != res.SubmissionID {
		t.Fatalf("expected one submission with matching id, got %#v", got)
	}
	if diff := cmp.Diff(map[string]string{"full_name": "Ada"}, got[0].Values); diff != "" {
		t.Fatalf("handler values mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_FailureKeepsValues(t *testing.T) {
	ctrl := New(testCatalog())
	ctrl.SelectCompany("Acme")
	ctrl.SetValue("full_name", "Ada")
	ctrl.SetValue("email", "nope")

	res := ctrl.Submit()
	if res.Success {
		t.Fatalf("expected failure")
	}
	if diff := cmp.Diff(map[string]string{"email": validation.EmailMessage}, res.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"full_name": "Ada", "email": "nope"}, ctrl.Values()); diff != "" {
		t.Fatalf("values must be retained (-want +got):\n%s", diff)
	}
}

func TestSetValue_ClearsRequiredErrorImmediately(t *testing.T) {
	ctrl := New(nil, WithFields([]model.RawField{departmentField()}))
	ctrl.Submit()
	if ctrl.Error("department") != "Department is required" {
		t.Fatalf("expected required error after submit, got %q", ctrl.Error("department"))
	}

	if msg := ctrl.SetValue("department", "HR"); msg != "" {
		t.Fatalf("expected no error, got %q", msg)
	}
	if ctrl.Error("department") != "" || ctrl.HasErrors() {
		t.Fatalf("expected error slot cleared, got %v", ctrl.Errors())
	}
}

func TestSetValue_ValidatesOnChange(t *testing.T) {
	ctrl := New(nil, WithFields([]model.RawField{fullNameField()}))
	if msg := ctrl.SetValue("full_name", ""); msg != "Full Name is required" {
		t.Fatalf("expected required error on change, got %q", msg)
	}
	if ctrl.Value("full_name") != "" {
		t.Fatalf("expected empty stored value")
	}
	ctrl.SetValue("full_name", "  spaced  ")
	if ctrl.Value("full_name") != "  spaced  " {
		t.Fatalf("values must be stored verbatim, got %q", ctrl.Value("full_name"))
	}
}

func TestSetValue_UnknownFieldIgnored(t *testing.T) {
	ctrl := New(nil, WithFields([]model.RawField{fullNameField()}))
	ctrl.SetValue("ghost", "boo")
	if _, ok := ctrl.Values()["ghost"]; ok {
		t.Fatalf("unknown names must not enter the value map")
	}
	if msg := ctrl.Blur("ghost"); msg != "" {
		t.Fatalf("expected blur on unknown field to be a no-op, got %q", msg)
	}
}

func TestBlur_Idempotent(t *testing.T) {
	ctrl := New(testCatalog())
	ctrl.SelectCompany("Acme")
	ctrl.SetValue("email", "bad")

	first := ctrl.Blur("email")
	second := ctrl.Blur("email")
	if first != second || first != validation.EmailMessage {
		t.Fatalf("expected identical blur results, got %q and %q", first, second)
	}

	untouched := ctrl.Blur("full_name")
	if untouched != "Full Name is required" || ctrl.Blur("full_name") != untouched {
		t.Fatalf("blur on untouched field should validate empty value, got %q", untouched)
	}
}

func TestClear_AlwaysResets(t *testing.T) {
	ctrl := New(testCatalog())
	ctrl.SelectCompany("Acme")
	ctrl.SetValue("full_name", "Ada")
	ctrl.SetValue("email", "broken")
	ctrl.Submit()

	ctrl.Clear()
	if diff := cmp.Diff(map[string]string{}, ctrl.Values()); diff != "" {
		t.Fatalf("values not cleared (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{}, ctrl.Errors()); diff != "" {
		t.Fatalf("errors not cleared (-want +got):\n%s", diff)
	}
}

func TestSelectCompany_RoundTrip(t *testing.T) {
	ctrl := New(testCatalog())
	if !ctrl.SelectCompany("Acme") {
		t.Fatalf("expected Acme to be known")
	}
	firstValues, firstErrors := ctrl.Values(), ctrl.Errors()
	firstFields := ctrl.Fields()

	ctrl.SetValue("full_name", "Ada")
	ctrl.Submit()

	ctrl.SelectCompany("")
	if ctrl.Company() != "" || len(ctrl.Fields()) != 0 {
		t.Fatalf("expected empty form after clearing selection")
	}

	ctrl.SelectCompany("Acme")
	if diff := cmp.Diff(firstValues, ctrl.Values()); diff != "" {
		t.Fatalf("values differ after round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(firstErrors, ctrl.Errors()); diff != "" {
		t.Fatalf("errors differ after round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(firstFields, ctrl.Fields()); diff != "" {
		t.Fatalf("fields differ after round trip (-want +got):\n%s", diff)
	}
}

func TestSelectCompany_DiscardsStaleKeys(t *testing.T) {
	ctrl := New(testCatalog())
	ctrl.SelectCompany("Acme")
	ctrl.SetValue("full_name", "Ada")
	ctrl.Submit()

	ctrl.SelectCompany("Globex")
	if len(ctrl.Values()) != 0 || len(ctrl.Errors()) != 0 {
		t.Fatalf("expected pristine state after company change, got %v / %v", ctrl.Values(), ctrl.Errors())
	}
	ctrl.SetValue("full_name", "Ada")
	if _, ok := ctrl.Values()["full_name"]; ok {
		t.Fatalf("fields from a previous company must not be accepted")
	}
}

func TestSelectCompany_Unknown(t *testing.T) {
	ctrl := New(testCatalog())
	ctrl.SelectCompany("Acme")
	if ctrl.SelectCompany("Nope") {
		t.Fatalf("expected unknown company to report false")
	}
	if ctrl.Company() != "" || len(ctrl.Fields()) != 0 {
		t.Fatalf("expected empty field list for unknown company")
	}
}

func TestFields_ReturnsDeepCopy(t *testing.T) {
	ctrl := New(nil, WithFields([]model.RawField{fullNameField(), departmentField()}))

	fields := ctrl.Fields()
	fields[0].Validation.Required = false
	fields[1].Options[0].Name = "mutated"

	res := ctrl.Submit()
	if res.Errors["full_name"] != "Full Name is required" {
		t.Fatalf("controller validation changed through Fields(), errors: %v", res.Errors)
	}
	if ctrl.Fields()[1].Options[0].Name != "HR" {
		t.Fatalf("controller options changed through Fields()")
	}
}

func TestSubmit_EmptyFormSucceeds(t *testing.T) {
	ctrl := New(testCatalog())
	if res := ctrl.Submit(); !res.Success {
		t.Fatalf("expected empty form to submit, got %v", res.Errors)
	}
}

func TestSubmit_LogsSubmission(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctrl := New(testCatalog(), WithLogger(zap.New(core)))
	ctrl.SelectCompany("Globex")
	ctrl.SetValue("department", "IT")
	ctrl.Submit()

	entries := logs.FilterMessage("form submitted").All()
	if len(entries) != 1 {
		t.Fatalf("expected one submission log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["company"]; got != "Globex" {
		t.Fatalf("expected company field, got %v", got)
	}
}

func TestWithValidator_Lenient(t *testing.T) {
	ctrl := New(nil,
		WithFields([]model.RawField{{Label: "Backup Email", Type: "email"}}),
		WithValidator(validation.New(validation.AllowEmptyOptionalEmail())),
	)
	if res := ctrl.Submit(); !res.Success {
		t.Fatalf("expected lenient validator to accept empty optional email, got %v", res.Errors)
	}
}

func TestView(t *testing.T) {
	ctrl := New(nil, WithFields([]model.RawField{fullNameField(), departmentField(), {Label: "When", Type: "date"}}))
	ctrl.SetValue("full_name", "")

	view := ctrl.View()
	if len(view.Fields) != 3 || !view.HasErrors {
		t.Fatalf("unexpected view: %#v", view)
	}
	name := view.Fields[0]
	if name.ControlID != "field-full_name" || name.ErrorID != "field-full_name-error" {
		t.Fatalf("unexpected ids: %q %q", name.ControlID, name.ErrorID)
	}
	if name.Error != "Full Name is required" || !name.Required || name.Placeholder != "Enter full name" {
		t.Fatalf("unexpected name view: %#v", name)
	}
	if dept := view.Fields[1]; dept.Kind != model.KindSelect || dept.Placeholder != "Select department" || len(dept.Options) != 2 {
		t.Fatalf("unexpected department view: %#v", dept)
	}
	if when := view.Fields[2]; when.Kind != model.KindFallback || when.Placeholder != "" {
		t.Fatalf("unexpected fallback view: %#v", when)
	}

	view.Fields[1].Options[0].Name = "mutated"
	if ctrl.Fields()[1].Options[0].Name != "HR" {
		t.Fatalf("view must not alias controller state")
	}
}
