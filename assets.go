package companyform

import (
	"io/fs"

	"github.com/goliatone/go-companyform/pkg/catalog"
	"github.com/goliatone/go-companyform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the vanilla renderer templates so callers can
// reuse or overlay them without importing the renderer package.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the bundled stylesheet and script.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(companyform.EmbeddedAssets()),
//	  ),
//	)
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}

// EmbeddedCatalog exposes the bundled company catalog files.
func EmbeddedCatalog() fs.FS {
	return catalog.EmbeddedFS()
}
