package render

import (
	"context"

	"github.com/goliatone/go-companyform/pkg/form"
)

// Renderer converts a form view into a byte representation (HTML, plain text).
// Renderers only read the view; user events go back through form.Controller.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view form.View, options RenderOptions) ([]byte, error)
}
