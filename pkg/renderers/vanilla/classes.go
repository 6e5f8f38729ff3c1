package vanilla

// Class is a semantic CSS class emitted by the templates.
type Class string

const (
	ClassPage     Class = "companyform"
	ClassSelector Class = "companyform-selector"
	ClassForm     Class = "companyform-form"
	ClassField    Class = "companyform-field"
	ClassInvalid  Class = "companyform-field--invalid"
	ClassIcon     Class = "companyform-icon"
	ClassRequired Class = "companyform-required"
	ClassError    Class = "companyform-error"
	ClassActions  Class = "companyform-actions"
	ClassBanner   Class = "companyform-banner"
	ClassEmpty    Class = "companyform-empty"
)

func classMap() map[string]string {
	return map[string]string{
		"page":     string(ClassPage),
		"selector": string(ClassSelector),
		"form":     string(ClassForm),
		"field":    string(ClassField),
		"invalid":  string(ClassInvalid),
		"icon":     string(ClassIcon),
		"required": string(ClassRequired),
		"error":    string(ClassError),
		"actions":  string(ClassActions),
		"banner":   string(ClassBanner),
		"empty":    string(ClassEmpty),
	}
}
