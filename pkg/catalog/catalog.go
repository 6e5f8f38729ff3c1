package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-companyform/pkg/model"
)

// ErrCompanyNotFound is returned when a lookup names a company the catalog
// does not define.
var ErrCompanyNotFound = errors.New("catalog: company not found")

// Company pairs a company key with its ordered raw field descriptors.
type Company struct {
	Key    string
	Source string
	Fields []model.RawField
}

// Catalog is the read-only mapping from company key to field descriptors. It
// is safe for concurrent readers; nothing mutates it after construction.
type Catalog struct {
	order     []string
	companies map[string]Company
}

// New builds a catalog from companies in the given order. Keys are trimmed;
// empty or duplicate keys are rejected.
func New(companies ...Company) (*Catalog, error) {
	c := &Catalog{companies: make(map[string]Company, len(companies))}
	for _, company := range companies {
		if err := c.add(company); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNew panics when New fails. Useful for fixtures and init-time wiring.
func MustNew(companies ...Company) *Catalog {
	c, err := New(companies...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) add(company Company) error {
	key := strings.TrimSpace(company.Key)
	if key == "" {
		return fmt.Errorf("catalog: %s defines a company with an empty key", sourceName(company.Source))
	}
	if existing, ok := c.companies[key]; ok {
		return fmt.Errorf("catalog: duplicate company %q (%s and %s)", key, sourceName(existing.Source), sourceName(company.Source))
	}
	company.Key = key
	company.Fields = cloneFields(company.Fields)
	c.companies[key] = company
	c.order = append(c.order, key)
	return nil
}

// Companies lists company keys in catalog order.
func (c *Catalog) Companies() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Len reports how many companies the catalog defines.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Has reports whether key names a company.
func (c *Catalog) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.companies[key]
	return ok
}

// Company returns a copy of the company entry for key.
func (c *Catalog) Company(key string) (Company, error) {
	if c == nil {
		return Company{}, ErrCompanyNotFound
	}
	company, ok := c.companies[key]
	if !ok {
		return Company{}, fmt.Errorf("%w: %q", ErrCompanyNotFound, key)
	}
	company.Fields = cloneFields(company.Fields)
	return company, nil
}

// Fields returns a copy of the raw descriptors for key.
func (c *Catalog) Fields(key string) ([]model.RawField, bool) {
	if c == nil {
		return nil, false
	}
	company, ok := c.companies[key]
	if !ok {
		return nil, false
	}
	return cloneFields(company.Fields), true
}

// Normalized returns the canonical, name-deduplicated fields for key.
func (c *Catalog) Normalized(key string) ([]model.Field, bool) {
	raws, ok := c.Fields(key)
	if !ok {
		return nil, false
	}
	return model.NormalizeAll(raws), true
}

func cloneFields(fields []model.RawField) []model.RawField {
	if fields == nil {
		return []model.RawField{}
	}
	out := make([]model.RawField, len(fields))
	for i, field := range fields {
		out[i] = field.Clone()
	}
	return out
}

func sourceName(source string) string {
	if source == "" {
		return "<inline>"
	}
	return source
}
