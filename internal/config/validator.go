package config

import "github.com/go-playground/validator/v10"

var v = validator.New()

// validateStruct returns the validation errors for c, or nil.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
