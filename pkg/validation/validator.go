package validation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-companyform/pkg/model"
)

const (
	// EmailPattern is the fixed shape every email-type value must match.
	EmailPattern = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	// EmailMessage is returned when an email-type value fails EmailPattern.
	EmailMessage = "Please enter a valid email address"
)

var emailRegexp = regexp.MustCompile(EmailPattern)

// Option configures a Validator.
type Option func(*Validator)

// AllowEmptyOptionalEmail exempts empty values of non-required email fields
// from the email shape check. By default the check runs unconditionally.
func AllowEmptyOptionalEmail() Option {
	return func(v *Validator) {
		v.allowEmptyOptionalEmail = true
	}
}

// Validator applies field rules in a fixed order; the first failing rule
// wins. The zero value is ready to use.
type Validator struct {
	allowEmptyOptionalEmail bool
}

// New constructs a Validator.
func New(options ...Option) *Validator {
	v := &Validator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

var defaultValidator = &Validator{}

// Validate checks value against field using the default rule set. An empty
// string means the value is valid.
func Validate(field model.Field, value string) string {
	return defaultValidator.Validate(field, value)
}

// ValidateAll validates every field using the default rule set.
func ValidateAll(fields []model.Field, values map[string]string) map[string]string {
	return defaultValidator.ValidateAll(fields, values)
}

// Validate returns the first failing rule's message, or "" when every rule
// passes. Order: required, email shape, pattern, min length, max length.
func (v *Validator) Validate(field model.Field, value string) string {
	rules := field.Validation

	if rules != nil && rules.Required && value == "" {
		return fmt.Sprintf("%s is required", field.Label)
	}

	if field.Kind() == model.KindEmail && !v.skipEmail(field, value) {
		if !emailRegexp.MatchString(value) {
			return EmailMessage
		}
	}

	if rules == nil {
		return ""
	}

	if rules.Pattern != nil && rules.Pattern.Pattern != "" && value != "" {
		if re := compilePattern(rules.Pattern.Pattern); re != nil && !re.MatchString(value) {
			if rules.Pattern.Message != "" {
				return rules.Pattern.Message
			}
			return fmt.Sprintf("Invalid %s format", strings.ToLower(field.Label))
		}
	}

	length := utf8.RuneCountInString(value)
	if rules.MinLength != nil && length < rules.MinLength.Value {
		if rules.MinLength.Message != "" {
			return rules.MinLength.Message
		}
		return fmt.Sprintf("%s must be at least %d characters", field.Label, rules.MinLength.Value)
	}
	if rules.MaxLength != nil && length > rules.MaxLength.Value {
		if rules.MaxLength.Message != "" {
			return rules.MaxLength.Message
		}
		return fmt.Sprintf("%s must be at most %d characters", field.Label, rules.MaxLength.Value)
	}

	return ""
}

// ValidateAll validates each field against its value in values (absent keys
// count as empty) and returns only the failing fields.
func (v *Validator) ValidateAll(fields []model.Field, values map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, field := range fields {
		if msg := v.Validate(field, values[field.Name]); msg != "" {
			errs[field.Name] = msg
		}
	}
	return errs
}

func (v *Validator) skipEmail(field model.Field, value string) bool {
	return v.allowEmptyOptionalEmail && value == "" && !field.Required()
}

var patternCache sync.Map

type cachedPattern struct {
	re *regexp.Regexp
}

// compilePattern compiles a case-insensitive, unanchored matcher for the
// configured expression. Expressions that do not compile yield nil and are
// skipped.
func compilePattern(expr string) *regexp.Regexp {
	if cached, ok := patternCache.Load(expr); ok {
		return cached.(cachedPattern).re
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		re = nil
	}
	patternCache.Store(expr, cachedPattern{re: re})
	return re
}
