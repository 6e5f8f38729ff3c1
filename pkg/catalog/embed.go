package catalog

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed data/*.json
var embeddedCatalog embed.FS

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// EmbeddedFS returns the bundled sample catalog files.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalog, "data")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default returns the bundled sample catalog, parsed once per process.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := LoadFS(EmbeddedFS())
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
