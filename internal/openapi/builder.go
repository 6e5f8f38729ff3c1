// Package openapi builds kin-openapi schemas and documents for company
// submissions. It stays internal so the public API does not leak openapi3
// types.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-companyform/pkg/catalog"
	"github.com/goliatone/go-companyform/pkg/model"
	"github.com/goliatone/go-companyform/pkg/validation"
)

// Extension keys carried on generated schemas.
const (
	ExtLabel   = "x-companyform-label"
	ExtKind    = "x-companyform-kind"
	ExtMessage = "x-companyform-messages"
)

// SubmissionSchema describes the urlencoded/JSON body accepted for fields.
// Patterns are emitted with an RE2 "(?i)" prefix to match the validator's
// case-insensitive search; patterns that do not compile are left out. The
// schema covers non-empty values: callers drop empty entries before
// VisitJSON, as the validator skips pattern checks on them too.
func SubmissionSchema(title string, fields []model.Field) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = title
	schema.Properties = make(openapi3.Schemas, len(fields))

	for _, field := range fields {
		schema.Properties[field.Name] = openapi3.NewSchemaRef("", fieldSchema(field))
		if field.Required() {
			schema.Required = append(schema.Required, field.Name)
		}
	}
	return schema
}

func fieldSchema(field model.Field) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	s.Description = field.Label
	s.Extensions = map[string]any{
		ExtLabel: field.Label,
		ExtKind:  string(field.Kind()),
	}
	messages := map[string]string{}

	switch field.Kind() {
	case model.KindEmail:
		s.Format = "email"
		s.Pattern = validation.EmailPattern
		messages["format"] = validation.EmailMessage
	case model.KindSelect:
		if len(field.Options) > 0 {
			enum := make([]any, 0, len(field.Options))
			for _, opt := range field.Options {
				enum = append(enum, opt.Value())
			}
			s.Enum = enum
		}
	}

	if field.Required() {
		s.MinLength = 1
		messages["required"] = field.Label + " is required"
	}

	v := field.Validation
	if v == nil {
		return withMessages(s, messages)
	}
	if v.Pattern != nil && v.Pattern.Pattern != "" {
		if expr := "(?i)" + v.Pattern.Pattern; compiles(expr) {
			custom := openapi3.NewStringSchema()
			custom.Pattern = expr
			if s.Pattern == "" {
				s.Pattern = expr
			} else {
				s.AllOf = append(s.AllOf, openapi3.NewSchemaRef("", custom))
			}
			messages["pattern"] = patternMessage(field)
		}
	}
	if v.MinLength != nil && v.MinLength.Value > 0 && uint64(v.MinLength.Value) > s.MinLength {
		s.MinLength = uint64(v.MinLength.Value)
		if v.MinLength.Message != "" {
			messages["minLength"] = v.MinLength.Message
		}
	}
	if v.MaxLength != nil && v.MaxLength.Value >= 0 {
		max := uint64(v.MaxLength.Value)
		s.MaxLength = &max
		if v.MaxLength.Message != "" {
			messages["maxLength"] = v.MaxLength.Message
		}
	}
	return withMessages(s, messages)
}

func withMessages(s *openapi3.Schema, messages map[string]string) *openapi3.Schema {
	if len(messages) > 0 {
		s.Extensions[ExtMessage] = messages
	}
	return s
}

func patternMessage(field model.Field) string {
	if field.Validation.Pattern.Message != "" {
		return field.Validation.Pattern.Message
	}
	return "Invalid " + strings.ToLower(field.Label) + " format"
}

func compiles(expr string) bool {
	_, err := regexp.Compile(expr)
	return err == nil
}

// Info labels a generated document.
type Info struct {
	Title   string
	Version string
}

// Document builds an OpenAPI 3 document with one POST operation per company
// and a component schema for each submission body.
func Document(ctx context.Context, c *catalog.Catalog, info Info) (*openapi3.T, error) {
	if c == nil {
		return nil, errors.New("openapi: catalog is required")
	}
	if info.Title == "" {
		info.Title = "Company forms"
	}
	if info.Version == "" {
		info.Version = "0.0.0"
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: info.Title, Version: info.Version},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}

	for _, key := range c.Companies() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fields, _ := c.Normalized(key)
		name := ComponentName(key)
		doc.Components.Schemas[name] = openapi3.NewSchemaRef("", SubmissionSchema(key, fields))

		ref := "#/components/schemas/" + name
		op := openapi3.NewOperation()
		op.OperationID = "submit" + name
		op.Summary = "Submit the " + key + " form"
		op.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithContent(openapi3.NewContentWithFormDataSchemaRef(openapi3.NewSchemaRef(ref, nil)))}
		op.Responses = openapi3.NewResponses(
			openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Form page with the submission result")}),
			openapi3.WithStatus(422, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Form page listing the failing fields")}),
			openapi3.WithStatus(403, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Missing or invalid CSRF token")}),
		)
		doc.Paths.Set("/forms/"+url.PathEscape(key), &openapi3.PathItem{Post: op})
	}
	return doc, nil
}

// ComponentName turns a company key into a component schema name
// ("Acme Corp" -> "AcmeCorpSubmission").
func ComponentName(key string) string {
	var b strings.Builder
	upper := true
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if r > unicode.MaxASCII {
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		b.WriteString("Company")
	}
	return b.String() + "Submission"
}

// VisitValues checks non-empty values against schema.
func VisitValues(schema *openapi3.Schema, values map[string]string) error {
	if schema == nil {
		return errors.New("openapi: schema is required")
	}
	payload := make(map[string]any, len(values))
	for key, value := range values {
		if value != "" {
			payload[key] = value
		}
	}
	if err := schema.VisitJSON(payload, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("openapi: payload does not match schema: %w", err)
	}
	return nil
}
