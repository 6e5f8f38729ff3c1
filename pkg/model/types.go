package model

import internalmodel "github.com/goliatone/go-companyform/internal/model"

// Kind re-exports the internal control variant enumeration.
type Kind = internalmodel.Kind

const (
	KindText     = internalmodel.KindText
	KindEmail    = internalmodel.KindEmail
	KindNumber   = internalmodel.KindNumber
	KindSelect   = internalmodel.KindSelect
	KindTextarea = internalmodel.KindTextarea
	KindFallback = internalmodel.KindFallback
)

const (
	DefaultType  = internalmodel.DefaultType
	UnnamedField = internalmodel.UnnamedField
)

type Rule = internalmodel.Rule
type LengthRule = internalmodel.LengthRule
type Validation = internalmodel.Validation
type Option = internalmodel.Option
type Field = internalmodel.Field
type RawField = internalmodel.RawField

// KindOf maps a lowercased type string onto the closed Kind set.
func KindOf(fieldType string) Kind {
	return internalmodel.KindOf(fieldType)
}
