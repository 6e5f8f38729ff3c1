// Package validation turns a canonical field and a string value into either
// an empty string (valid) or a human-readable message. Validation errors are
// ordinary return values, never Go errors, so the form controller can store
// them directly in its error map.
package validation
