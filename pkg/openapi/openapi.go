// Package openapi exports company submission contracts as OpenAPI 3 JSON or
// YAML. The kin-openapi types stay behind internal/openapi.
package openapi

import (
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	internalopenapi "github.com/goliatone/go-companyform/internal/openapi"
	"github.com/goliatone/go-companyform/pkg/catalog"
	"github.com/goliatone/go-companyform/pkg/model"
)

// Info labels a generated document.
type Info = internalopenapi.Info

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// SchemaJSON returns the submission schema for fields as indented JSON.
func SchemaJSON(title string, fields []model.Field) ([]byte, error) {
	schema := internalopenapi.SubmissionSchema(title, fields)
	payload, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode schema: %w", err)
	}
	return payload, nil
}

// CompanySchemaJSON is SchemaJSON for a catalog company. Unknown companies
// wrap catalog.ErrCompanyNotFound.
func CompanySchemaJSON(c *catalog.Catalog, company string) ([]byte, error) {
	if _, err := c.Company(company); err != nil {
		return nil, err
	}
	fields, _ := c.Normalized(company)
	return SchemaJSON(company, fields)
}

// Document encodes the OpenAPI document for every company in c.
func Document(ctx context.Context, c *catalog.Catalog, info Info, format Format) ([]byte, error) {
	doc, err := internalopenapi.Document(ctx, c, info)
	if err != nil {
		return nil, err
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode document: %w", err)
	}
	if format != FormatYAML {
		return payload, nil
	}

	var tree yaml.Node
	if err := yaml.Unmarshal(payload, &tree); err != nil {
		return nil, fmt.Errorf("openapi: convert document to yaml: %w", err)
	}
	plainStyle(&tree)
	out, err := yaml.Marshal(&tree)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}
	return out, nil
}

// CheckValues reports whether the non-empty values satisfy the schema
// derived from fields. It is a contract check; the form validator remains the
// source of user-facing messages.
func CheckValues(fields []model.Field, values map[string]string) error {
	return internalopenapi.VisitValues(internalopenapi.SubmissionSchema("", fields), values)
}

// plainStyle drops the flow and quoting styles inherited from JSON so the
// encoder emits block YAML. It still quotes scalars that need it.
func plainStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		plainStyle(child)
	}
}
