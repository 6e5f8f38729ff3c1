package form

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-companyform/pkg/catalog"
	"github.com/goliatone/go-companyform/pkg/model"
)

// Submission is handed to the SubmitHandler after every field passed.
type Submission struct {
	ID      string
	Company string
	Values  map[string]string
}

// Result reports the outcome of Submit. On failure Errors holds every failing
// field and Values is nil; on success Errors is empty and Values carries the
// accepted values (the controller itself has already been reset).
type Result struct {
	Success      bool
	SubmissionID string
	Values       map[string]string
	Errors       map[string]string
}

// Controller owns the values and errors of the currently displayed form. It
// is single-owner: each session builds its own and drives it from one
// goroutine.
type Controller struct {
	catalog   *catalog.Catalog
	validator Validator
	onSubmit  SubmitHandler
	logger    *zap.Logger
	initial   []model.RawField

	company string
	fields  []model.Field
	index   map[string]int
	values  map[string]string
	errors  map[string]string
}

// New constructs a controller bound to a read-only catalog. The catalog may
// be nil when WithFields supplies the field list.
func New(c *catalog.Catalog, options ...Option) *Controller {
	ctrl := &Controller{
		catalog:   c,
		validator: defaultValidator(),
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(ctrl)
	}
	ctrl.setFields(model.NormalizeAll(ctrl.initial))
	return ctrl
}

// SelectCompany replaces the active field list with the company's fields and
// resets values and errors. An empty key, or a key the catalog does not
// define, collapses the list to empty; the latter reports false.
func (c *Controller) SelectCompany(key string) bool {
	c.company = ""
	if key == "" {
		c.setFields(nil)
		return true
	}

	fields, ok := c.catalog.Normalized(key)
	if !ok {
		c.logger.Debug("unknown company selected", zap.String("company", key))
		c.setFields(nil)
		return false
	}
	c.company = key
	c.setFields(fields)
	return true
}

// SetValue stores value verbatim and re-validates the field. It returns the
// field's new error ("" when valid). Names outside the active list are
// ignored.
func (c *Controller) SetValue(name, value string) string {
	field, ok := c.field(name)
	if !ok {
		return ""
	}
	c.values[name] = value
	return c.revalidate(field, value)
}

// Blur re-validates the stored value of a field.
func (c *Controller) Blur(name string) string {
	field, ok := c.field(name)
	if !ok {
		return ""
	}
	return c.revalidate(field, c.values[name])
}

// Submit validates every active field. Either every field passes and the
// form resets, or none is accepted and the full error map is published.
func (c *Controller) Submit() Result {
	errs := make(map[string]string)
	for _, field := range c.fields {
		if msg := c.validator.Validate(field, c.values[field.Name]); msg != "" {
			errs[field.Name] = msg
		}
	}

	c.errors = errs
	if len(errs) > 0 {
		c.logger.Debug("form submission rejected",
			zap.String("company", c.company),
			zap.Int("errors", len(errs)),
		)
		return Result{Errors: copyMap(errs)}
	}

	submission := Submission{
		ID:      uuid.NewString(),
		Company: c.company,
		Values:  copyMap(c.values),
	}
	c.logger.Info("form submitted",
		zap.String("company", submission.Company),
		zap.String("submission_id", submission.ID),
		zap.Int("fields", len(submission.Values)),
	)
	if c.onSubmit != nil {
		c.onSubmit(Submission{ID: submission.ID, Company: submission.Company, Values: copyMap(submission.Values)})
	}

	c.values = make(map[string]string)
	return Result{
		Success:      true,
		SubmissionID: submission.ID,
		Values:       submission.Values,
		Errors:       map[string]string{},
	}
}

// Clear resets values and errors regardless of validity.
func (c *Controller) Clear() {
	c.values = make(map[string]string)
	c.errors = make(map[string]string)
}

// Company returns the selected company key, or "" when none is selected.
func (c *Controller) Company() string { return c.company }

// Fields returns a deep copy of the active canonical fields.
func (c *Controller) Fields() []model.Field {
	out := make([]model.Field, len(c.fields))
	for i, field := range c.fields {
		out[i] = field.Clone()
	}
	return out
}

// Value returns the stored value for name ("" when untouched).
func (c *Controller) Value(name string) string { return c.values[name] }

// Error returns the current error for name ("" when valid).
func (c *Controller) Error(name string) string { return c.errors[name] }

// Values returns a copy of the stored values.
func (c *Controller) Values() map[string]string { return copyMap(c.values) }

// Errors returns a copy of the non-empty errors.
func (c *Controller) Errors() map[string]string { return copyMap(c.errors) }

// HasErrors reports whether any field currently carries an error.
func (c *Controller) HasErrors() bool { return len(c.errors) > 0 }

func (c *Controller) setFields(fields []model.Field) {
	c.fields = fields
	c.index = make(map[string]int, len(fields))
	for i, field := range fields {
		c.index[field.Name] = i
	}
	c.Clear()
}

func (c *Controller) field(name string) (model.Field, bool) {
	i, ok := c.index[name]
	if !ok {
		return model.Field{}, false
	}
	return c.fields[i], true
}

func (c *Controller) revalidate(field model.Field, value string) string {
	msg := c.validator.Validate(field, value)
	if msg == "" {
		delete(c.errors, field.Name)
	} else {
		c.errors[field.Name] = msg
	}
	return msg
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
