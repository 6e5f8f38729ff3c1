package model

// Kind is the closed set of control variants a field can render as. Every
// renderer and the validator dispatch on Kind with a single switch.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindNumber   Kind = "number"
	KindSelect   Kind = "select"
	KindTextarea Kind = "textarea"
	// KindFallback covers any type string outside the recognised set. It
	// renders as a generic single-line input.
	KindFallback Kind = "fallback"
)

// DefaultType is assigned when a descriptor omits its type.
const DefaultType = "text"

// UnnamedField is the name given to descriptors with neither a name nor a
// label.
const UnnamedField = "unnamed_field"

// KindOf maps a lowercased type string onto the closed Kind set.
func KindOf(fieldType string) Kind {
	switch Kind(fieldType) {
	case KindText, KindEmail, KindNumber, KindSelect, KindTextarea:
		return Kind(fieldType)
	default:
		return KindFallback
	}
}

// Rule carries a threshold or expression plus the message shown when the
// rule fails. Pattern rules use Pattern; length rules use Length.
type Rule struct {
	Pattern string `json:"value,omitempty" yaml:"value,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// LengthRule bounds the number of characters in a value.
type LengthRule struct {
	Value   int    `json:"value" yaml:"value"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Validation groups the optional constraints attached to a field.
type Validation struct {
	Required  bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Pattern   *Rule       `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength *LengthRule `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *LengthRule `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
}

// Clone returns a deep copy; a nil receiver yields nil.
func (v *Validation) Clone() *Validation {
	if v == nil {
		return nil
	}
	out := &Validation{Required: v.Required}
	if v.Pattern != nil {
		rule := *v.Pattern
		out.Pattern = &rule
	}
	if v.MinLength != nil {
		rule := *v.MinLength
		out.MinLength = &rule
	}
	if v.MaxLength != nil {
		rule := *v.MaxLength
		out.MaxLength = &rule
	}
	return out
}

// Option is a single select choice. Plain string options only carry Name.
type Option struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`
}

// Value returns the string stored in the form when the option is chosen.
func (o Option) Value() string { return o.Name }

// Label returns the display text for the option.
func (o Option) Label() string { return o.Name }

// Field is the canonical descriptor consumed by validation, state and
// renderers.
type Field struct {
	Name       string      `json:"name"`
	Label      string      `json:"label"`
	Type       string      `json:"type"`
	Icon       string      `json:"icon,omitempty"`
	Validation *Validation `json:"validation,omitempty"`
	Options    []Option    `json:"options"`
}

// Kind reports the control variant for the field type.
func (f Field) Kind() Kind { return KindOf(f.Type) }

// Required reports whether the field carries the required flag.
func (f Field) Required() bool {
	return f.Validation != nil && f.Validation.Required
}

// Clone returns a copy sharing no memory with f.
func (f Field) Clone() Field {
	f.Validation = f.Validation.Clone()
	f.Options = cloneOptions(f.Options)
	return f
}

// RawField is a loosely typed descriptor as it appears in catalog files.
// Two key casings exist for validation and options; both are kept so the
// normalizer can apply precedence. A nil slice or pointer means the key was
// absent, an empty non-nil slice means it was present but empty.
type RawField struct {
	Name             string
	Label            string
	Type             string
	Icon             string
	Validation       *Validation
	ValidationLegacy *Validation
	Options          []Option
	OptionsLegacy    []Option
}

// Clone returns a copy sharing no memory with r. Nil slices stay nil so
// absent keys remain distinguishable from empty ones.
func (r RawField) Clone() RawField {
	r.Validation = r.Validation.Clone()
	r.ValidationLegacy = r.ValidationLegacy.Clone()
	r.Options = cloneOptions(r.Options)
	r.OptionsLegacy = cloneOptions(r.OptionsLegacy)
	return r
}

func cloneOptions(in []Option) []Option {
	if in == nil {
		return nil
	}
	return append(make([]Option, 0, len(in)), in...)
}
