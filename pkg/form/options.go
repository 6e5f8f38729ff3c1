package form

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-companyform/pkg/model"
	"github.com/goliatone/go-companyform/pkg/validation"
)

// Validator checks one value against one field; "" means valid.
type Validator interface {
	Validate(field model.Field, value string) string
}

// SubmitHandler receives the final values of a successful submission. It is
// called synchronously before the controller resets its state.
type SubmitHandler func(Submission)

// Option configures a Controller.
type Option func(*Controller)

// WithValidator overrides the default rule set.
func WithValidator(v Validator) Option {
	return func(c *Controller) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithSubmitHandler registers the collaborator that forwards or records
// successful submissions.
func WithSubmitHandler(fn SubmitHandler) Option {
	return func(c *Controller) {
		c.onSubmit = fn
	}
}

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFields starts the controller on an explicit field list instead of a
// catalog company. The list is normalized immediately.
func WithFields(raws []model.RawField) Option {
	return func(c *Controller) {
		c.initial = raws
	}
}

func defaultValidator() Validator {
	return validation.New()
}
