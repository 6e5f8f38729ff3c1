package model

import internalmodel "github.com/goliatone/go-companyform/internal/model"

// Normalize converts a raw descriptor into a canonical Field. Missing or
// malformed pieces degrade to defaults; it never fails.
func Normalize(raw RawField) Field {
	return internalmodel.Normalize(raw)
}

// NormalizeAll normalizes a descriptor list, keeping names unique.
func NormalizeAll(raws []RawField) []Field {
	return internalmodel.NormalizeAll(raws)
}

// DecodeRawField builds a RawField from a generic decoded map, accepting both
// key casings found in catalog files.
func DecodeRawField(payload map[string]any) RawField {
	return internalmodel.DecodeRawField(payload)
}
