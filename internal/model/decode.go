package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalJSON accepts either key casing for every descriptor property. A
// descriptor that is not an object decodes to an empty RawField.
func (r *RawField) UnmarshalJSON(data []byte) error {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("model: decode field: %w", err)
	}
	obj, _ := payload.(map[string]any)
	*r = DecodeRawField(obj)
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML catalogs.
func (r *RawField) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		*r = RawField{}
		return nil
	}
	var payload map[string]any
	if err := node.Decode(&payload); err != nil {
		return fmt.Errorf("model: decode field: %w", err)
	}
	*r = DecodeRawField(payload)
	return nil
}

// DecodeRawField builds a RawField from a generic map. Scalar properties
// (name, label, type, icon) collapse both casings with the lowercase key
// winning; validation and options keep both so Normalize can choose.
func DecodeRawField(payload map[string]any) RawField {
	raw := RawField{}
	if payload == nil {
		return raw
	}
	if v, ok := pick(payload, "name", "Name"); ok {
		raw.Name = asString(v)
	}
	if v, ok := pick(payload, "label", "Label"); ok {
		raw.Label = asString(v)
	}
	if v, ok := pick(payload, "type", "Type"); ok {
		raw.Type = asString(v)
	}
	if v, ok := pick(payload, "icon", "Icon"); ok {
		raw.Icon = asString(v)
	}
	if v, ok := payload["validation"]; ok {
		raw.Validation = decodeValidation(v, raw.Label)
	}
	if v, ok := payload["Validation"]; ok {
		raw.ValidationLegacy = decodeValidation(v, raw.Label)
	}
	if v, ok := payload["options"]; ok {
		raw.Options = decodeOptions(v)
	}
	if v, ok := payload["Options"]; ok {
		raw.OptionsLegacy = decodeOptions(v)
	}
	return raw
}

func pick(payload map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := payload[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func decodeValidation(v any, label string) *Validation {
	if v == nil {
		return nil
	}
	payload, ok := v.(map[string]any)
	if !ok {
		return &Validation{}
	}

	out := &Validation{}
	if req, ok := pick(payload, "required", "Required"); ok {
		out.Required = asBool(req)
	}
	if pattern, ok := pick(payload, "pattern", "Pattern"); ok {
		out.Pattern = decodePattern(pattern, label)
	}
	if minLength, ok := pick(payload, "minLength", "MinLength", "minlength"); ok {
		out.MinLength = decodeLength(minLength)
	}
	if maxLength, ok := pick(payload, "maxLength", "MaxLength", "maxlength"); ok {
		out.MaxLength = decodeLength(maxLength)
	}
	return out
}

// decodePattern accepts {value, message} or a bare regex source. Bare
// sources get "Invalid <label> format" with the label case kept.
func decodePattern(v any, label string) *Rule {
	switch typed := v.(type) {
	case string:
		return &Rule{Pattern: typed, Message: fmt.Sprintf("Invalid %s format", label)}
	case map[string]any:
		rule := &Rule{}
		if value, ok := pick(typed, "value", "Value"); ok {
			rule.Pattern = asString(value)
		}
		if msg, ok := pick(typed, "message", "Message"); ok {
			rule.Message = asString(msg)
		}
		return rule
	default:
		return nil
	}
}

func decodeLength(v any) *LengthRule {
	if payload, ok := v.(map[string]any); ok {
		value, ok := pick(payload, "value", "Value")
		if !ok {
			return nil
		}
		n, ok := asInt(value)
		if !ok {
			return nil
		}
		rule := &LengthRule{Value: n}
		if msg, ok := pick(payload, "message", "Message"); ok {
			rule.Message = asString(msg)
		}
		return rule
	}
	if n, ok := asInt(v); ok {
		return &LengthRule{Value: n}
	}
	return nil
}

func decodeOptions(v any) []Option {
	if v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return []Option{}
	}
	out := make([]Option, 0, len(items))
	for _, item := range items {
		switch typed := item.(type) {
		case nil:
			continue
		case map[string]any:
			opt := Option{}
			if id, ok := pick(typed, "id", "Id", "ID"); ok {
				opt.ID = asString(id)
			}
			if name, ok := pick(typed, "name", "Name"); ok {
				opt.Name = asString(name)
			}
			out = append(out, opt)
		default:
			out = append(out, Option{Name: asString(typed)})
		}
	}
	return out
}

func asString(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprint(typed)
	}
}

// asBool follows truthiness: non-empty strings, non-zero numbers and any
// object or list count as true.
func asBool(v any) bool {
	switch typed := v.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return typed != ""
	case int:
		return typed != 0
	case int64:
		return typed != 0
	case uint64:
		return typed != 0
	case float64:
		return typed != 0 && !math.IsNaN(typed)
	default:
		return true
	}
}

func asInt(v any) (int, bool) {
	switch typed := v.(type) {
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case uint64:
		return int(typed), true
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return 0, false
		}
		return int(typed), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(typed))
		return n, err == nil
	default:
		return 0, false
	}
}
