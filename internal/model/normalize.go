package model

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)

// Normalize converts a raw descriptor into its canonical shape. It never
// fails: missing pieces fall back to defaults.
func Normalize(raw RawField) Field {
	field := Field{
		Name:    DeriveName(raw.Name, raw.Label),
		Label:   raw.Label,
		Type:    strings.ToLower(raw.Type),
		Icon:    raw.Icon,
		Options: []Option{},
	}
	if field.Type == "" {
		field.Type = DefaultType
	}

	switch {
	case raw.Validation != nil:
		field.Validation = raw.Validation.Clone()
	case raw.ValidationLegacy != nil:
		field.Validation = raw.ValidationLegacy.Clone()
	}

	switch {
	case raw.Options != nil:
		field.Options = append(field.Options, raw.Options...)
	case raw.OptionsLegacy != nil:
		field.Options = append(field.Options, raw.OptionsLegacy...)
	}

	return field
}

// NormalizeAll normalizes every descriptor and makes names unique within the
// list by suffixing later duplicates with _2, _3 and so on.
func NormalizeAll(raws []RawField) []Field {
	fields := make([]Field, 0, len(raws))
	seen := make(map[string]int, len(raws))
	for _, raw := range raws {
		field := Normalize(raw)
		field.Name = uniqueName(field.Name, seen)
		fields = append(fields, field)
	}
	return fields
}

// DeriveName resolves a field name: explicit name, then the slugified label,
// then UnnamedField.
func DeriveName(name, label string) string {
	if name != "" {
		return name
	}
	if label != "" {
		return whitespaceRun.ReplaceAllString(strings.ToLower(label), "_")
	}
	return UnnamedField
}

func uniqueName(name string, seen map[string]int) string {
	count, exists := seen[name]
	if !exists {
		seen[name] = 1
		return name
	}
	for {
		count++
		candidate := name + "_" + strconv.Itoa(count)
		if _, taken := seen[candidate]; !taken {
			seen[name] = count
			seen[candidate] = 1
			return candidate
		}
	}
}
