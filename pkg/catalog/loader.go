package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-companyform/pkg/model"
)

// fieldListKeys are the keys a company object may use for its field list,
// in precedence order.
var fieldListKeys = []string{"formFields", "FormFields", "fields", "Fields"}

// Parse decodes a JSON or YAML catalog document. The top level maps company
// keys to either an object carrying a field list or a bare field list.
// Company order follows the document.
func Parse(data []byte, source string) (*Catalog, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("catalog: %s is empty", sourceName(source))
	}

	var (
		companies []Company
		err       error
	)
	if trimmed[0] == '{' {
		companies, err = parseJSON(trimmed, source)
	} else {
		companies, err = parseYAML(trimmed, source)
	}
	if err != nil {
		return nil, err
	}
	return New(companies...)
}

// LoadFile reads and parses a single catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS walks fsys and merges every JSON/YAML catalog file in lexical path
// order. A company defined in two files is an error.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	merged := &Catalog{companies: make(map[string]Company)}
	if fsys == nil {
		return merged, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}
		parsed, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, key := range parsed.order {
			if err := merged.add(parsed.companies[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func parseJSON(data []byte, source string) ([]Company, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", sourceName(source), err)
	}

	var companies []Company
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("catalog: parse %s: %w", sourceName(source), err)
		}
		key, _ := tok.(string)

		var body json.RawMessage
		if err := dec.Decode(&body); err != nil {
			return nil, fmt.Errorf("catalog: parse %s company %q: %w", sourceName(source), key, err)
		}
		fields, err := jsonFieldList(body)
		if err != nil {
			return nil, fmt.Errorf("catalog: parse %s company %q: %w", sourceName(source), key, err)
		}
		companies = append(companies, Company{Key: key, Source: source, Fields: fields})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", sourceName(source), err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("catalog: parse %s: unexpected data after catalog object", sourceName(source))
	}
	return companies, nil
}

func jsonFieldList(body json.RawMessage) ([]model.RawField, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var fields []model.RawField
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, err
		}
		return fields, nil
	}

	if trimmed[0] != '{' {
		return nil, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, err
	}
	for _, key := range fieldListKeys {
		list, ok := wrapper[key]
		if !ok {
			continue
		}
		if list = bytes.TrimSpace(list); len(list) == 0 || list[0] != '[' {
			return nil, nil
		}
		var fields []model.RawField
		if err := json.Unmarshal(list, &fields); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return fields, nil
	}
	return nil, nil
}

func parseYAML(data []byte, source string) ([]Company, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", sourceName(source), err)
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("catalog: parse %s: top level must be a mapping of companies", sourceName(source))
	}

	var companies []Company
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i].Value
		fields, err := yamlFieldList(doc.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("catalog: parse %s company %q: %w", sourceName(source), key, err)
		}
		companies = append(companies, Company{Key: key, Source: source, Fields: fields})
	}
	return companies, nil
}

func yamlFieldList(node *yaml.Node) ([]model.RawField, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		var fields []model.RawField
		if err := node.Decode(&fields); err != nil {
			return nil, err
		}
		return fields, nil
	case yaml.MappingNode:
		for _, want := range fieldListKeys {
			for i := 0; i+1 < len(node.Content); i += 2 {
				if node.Content[i].Value != want {
					continue
				}
				if node.Content[i+1].Kind != yaml.SequenceNode {
					return nil, nil
				}
				var fields []model.RawField
				if err := node.Content[i+1].Decode(&fields); err != nil {
					return nil, fmt.Errorf("%s: %w", want, err)
				}
				return fields, nil
			}
		}
		return nil, nil
	default:
		return nil, nil
	}
}
