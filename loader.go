package companyform

import (
	"fmt"
	"os"

	"github.com/goliatone/go-companyform/pkg/catalog"
)

// LoadCatalog reads a catalog from a JSON or YAML file, or from every catalog
// file under a directory. An empty path returns the bundled catalog.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("companyform: load catalog: %w", err)
	}
	if info.IsDir() {
		return catalog.LoadFS(os.DirFS(path))
	}
	return catalog.LoadFile(path)
}
