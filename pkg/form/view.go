package form

import (
	"strings"

	"github.com/goliatone/go-companyform/pkg/model"
)

// FieldView is the read-only projection of one field handed to renderers.
type FieldView struct {
	Name        string         `json:"name"`
	Label       string         `json:"label"`
	Type        string         `json:"type"`
	Kind        model.Kind     `json:"kind"`
	Icon        string         `json:"icon,omitempty"`
	Options     []model.Option `json:"options"`
	Required    bool           `json:"required"`
	Value       string         `json:"value"`
	Error       string         `json:"error,omitempty"`
	ControlID   string         `json:"controlId"`
	ErrorID     string         `json:"errorId"`
	Placeholder string         `json:"placeholder,omitempty"`
}

// View is the complete rendering input for the active form.
type View struct {
	Company   string      `json:"company"`
	Fields    []FieldView `json:"fields"`
	HasErrors bool        `json:"hasErrors"`
}

// View projects the controller state for renderers. The result shares no
// memory with the controller.
func (c *Controller) View() View {
	view := View{
		Company:   c.company,
		Fields:    make([]FieldView, 0, len(c.fields)),
		HasErrors: c.HasErrors(),
	}
	for _, field := range c.fields {
		view.Fields = append(view.Fields, NewFieldView(field, c.values[field.Name], c.errors[field.Name]))
	}
	return view
}

// NewFieldView builds the projection for a single field.
func NewFieldView(field model.Field, value, errMsg string) FieldView {
	controlID := ControlID(field.Name)
	return FieldView{
		Name:        field.Name,
		Label:       field.Label,
		Type:        field.Type,
		Kind:        field.Kind(),
		Icon:        field.Icon,
		Options:     append([]model.Option{}, field.Options...),
		Required:    field.Required(),
		Value:       value,
		Error:       errMsg,
		ControlID:   controlID,
		ErrorID:     controlID + "-error",
		Placeholder: Placeholder(field),
	}
}

// ControlID returns the DOM id used for a field's control.
func ControlID(name string) string {
	return "field-" + name
}

// Placeholder returns the hint shown inside an empty control. Select fields
// use it for their blank option; fallback inputs get none.
func Placeholder(field model.Field) string {
	label := strings.ToLower(field.Label)
	switch field.Kind() {
	case model.KindText, model.KindEmail, model.KindNumber, model.KindTextarea:
		return "Enter " + label
	case model.KindSelect:
		return "Select " + label
	default:
		return ""
	}
}
