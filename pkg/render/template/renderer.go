// Package template defines the template seam renderers depend on. The pongo2
// implementation lives in the gotemplate subpackage.
package template

import (
	"io"
)

// Filter transforms a template value. param is nil when the template passes
// no argument.
type Filter func(input any, param any) (any, error)

// TemplateRenderer renders named templates or inline template strings.
// Output is returned and also copied to every writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn Filter) error
	GlobalContext(data map[string]any) error
}
