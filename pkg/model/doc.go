// Package model defines the canonical field descriptor shared by the
// validator, the form controller and every renderer. Catalog files describe
// fields loosely: keys may be lowercase-first (`validation`, `options`) or
// capitalized (`Validation`, `Options`), patterns may be bare strings or
// `{value, message}` objects, and options may be plain strings or `{id, name}`
// pairs. Normalize folds all of that into one Field whose Kind is drawn from
// a closed set (text, email, number, select, textarea, fallback), so callers
// switch on Kind instead of probing raw properties.
package model
