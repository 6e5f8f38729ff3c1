package openapi

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-companyform/pkg/catalog"
	"github.com/goliatone/go-companyform/pkg/model"
)

func sampleFields() []model.Field {
	return model.NormalizeAll([]model.RawField{
		{Label: "Full Name", Validation: &model.Validation{Required: true, MinLength: &model.LengthRule{Value: 2}}},
		{Label: "Email", Type: "email", Validation: &model.Validation{Required: true}},
		{Label: "Department", Type: "select", Options: []model.Option{{Name: "HR"}, {Name: "IT"}}},
		{Label: "Employee ID", Validation: &model.Validation{Pattern: &model.Rule{Pattern: "^gx-[0-9]{5}$", Message: "Bad id"}}},
		{Label: "Bio", Type: "textarea", Validation: &model.Validation{MaxLength: &model.LengthRule{Value: 5}}},
		{Label: "Broken", Validation: &model.Validation{Pattern: &model.Rule{Pattern: "(?<=x)y"}}},
	})
}

func TestSubmissionSchema_Shape(t *testing.T) {
	schema := SubmissionSchema("Acme", sampleFields())

	assert.Equal(t, "Acme", schema.Title)
	assert.Equal(t, []string{"full_name", "email"}, schema.Required)
	require.Len(t, schema.Properties, 6)

	name := schema.Properties["full_name"].Value
	assert.Equal(t, uint64(2), name.MinLength)

	email := schema.Properties["email"].Value
	assert.Equal(t, "email", email.Format)
	assert.NotEmpty(t, email.Pattern)

	dept := schema.Properties["department"].Value
	assert.Equal(t, []any{"HR", "IT"}, dept.Enum)

	id := schema.Properties["employee_id"].Value
	assert.Equal(t, "(?i)^gx-[0-9]{5}$", id.Pattern)
	assert.Equal(t, "Bad id", id.Extensions[ExtMessage].(map[string]string)["pattern"])

	bio := schema.Properties["bio"].Value
	require.NotNil(t, bio.MaxLength)
	assert.Equal(t, uint64(5), *bio.MaxLength)

	assert.Empty(t, schema.Properties["broken"].Value.Pattern)
}

func TestVisitValues(t *testing.T) {
	schema := SubmissionSchema("Acme", sampleFields())

	require.NoError(t, VisitValues(schema, map[string]string{
		"full_name":   "Ada",
		"email":       "ada@example.com",
		"department":  "IT",
		"employee_id": "GX-12345",
		"bio":         "hi",
		"broken":      "anything",
	}))

	cases := map[string]map[string]string{
		"missing required": {"email": "ada@example.com"},
		"short name":       {"full_name": "A", "email": "ada@example.com"},
		"bad email":        {"full_name": "Ada", "email": "nope"},
		"unknown option":   {"full_name": "Ada", "email": "ada@example.com", "department": "Ops"},
		"bad pattern":      {"full_name": "Ada", "email": "ada@example.com", "employee_id": "XX-1"},
		"too long":         {"full_name": "Ada", "email": "ada@example.com", "bio": "toolong"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, VisitValues(schema, values))
		})
	}
}

func TestDocument(t *testing.T) {
	c := catalog.MustNew(
		catalog.Company{Key: "Acme Corp", Fields: []model.RawField{{Label: "Name"}}},
		catalog.Company{Key: "Globex"},
	)
	doc, err := Document(context.Background(), c, Info{Title: "Forms", Version: "1.2.3"})
	require.NoError(t, err)

	assert.Contains(t, doc.Components.Schemas, "AcmeCorpSubmission")
	assert.Contains(t, doc.Components.Schemas, "GlobexSubmission")
	item := doc.Paths.Value("/forms/Acme%20Corp")
	require.NotNil(t, item)
	require.NotNil(t, item.Post)
	assert.Equal(t, "submitAcmeCorpSubmission", item.Post.OperationID)

	payload, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"$ref":"#/components/schemas/AcmeCorpSubmission"`)

	_, err = Document(context.Background(), nil, Info{})
	assert.Error(t, err)
}

func TestComponentName(t *testing.T) {
	assert.Equal(t, "AcmeCorpSubmission", ComponentName("Acme Corp"))
	assert.Equal(t, "InitechLlcSubmission", ComponentName("initech-llc"))
	assert.Equal(t, "CompanySubmission", ComponentName("!!!"))
}
