package customfield

import (
	"fmt"
	"strconv"
)

// Registry validates raw key/value payloads against a set of field
// definitions, all scoped to a single entity type.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry builds a registry from stored definitions.
func NewRegistry(defs []Definition) *Registry {
	m := make(map[string]Definition, len(defs))
	for _, d := range defs {
		m[d.Key] = d
	}
	return &Registry{defs: m}
}

// Validate converts a raw payload (as decoded from JSON) into typed values.
// Unknown keys, type mismatches, and option violations are rejected.
func (r *Registry) Validate(raw map[string]interface{}) (map[string]Value, error) {
	out := make(map[string]Value, len(raw))
	for key, rawVal := range raw {
		def, ok := r.defs[key]
		if !ok {
			return nil, fmt.Errorf("unknown custom field %q", key)
		}
		val, err := coerce(&def, rawVal)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		out[key] = val
	}
	return out, nil
}

func coerce(def *Definition, raw interface{}) (Value, error) {
	switch def.Type {
	case TypeText:
		s, ok := raw.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected string, got %T", raw)
		}
		return TextValue(s), nil

	case TypeCurrency:
		switch n := raw.(type) {
		case float64:
			return CurrencyValue(n), nil
		case string:
			// Form payloads submit numbers as strings.
			f, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return Value{}, fmt.Errorf("invalid currency amount %q", n)
			}
			return CurrencyValue(f), nil
		default:
			return Value{}, fmt.Errorf("expected number, got %T", raw)
		}

	case TypeSelect:
		s, ok := raw.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected string, got %T", raw)
		}
		if !def.hasOption(s) {
			return Value{}, fmt.Errorf("%q is not one of the allowed options", s)
		}
		return SelectValue(s), nil

	case TypeMultiSelect:
		items, ok := raw.([]interface{})
		if !ok {
			return Value{}, fmt.Errorf("expected array, got %T", raw)
		}
		seen := make(map[string]bool, len(items))
		selected := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return Value{}, fmt.Errorf("expected string element, got %T", item)
			}
			if !def.hasOption(s) {
				return Value{}, fmt.Errorf("%q is not one of the allowed options", s)
			}
			if !seen[s] {
				seen[s] = true
				selected = append(selected, s)
			}
		}
		return MultiSelectValue(selected), nil
	}
	return Value{}, fmt.Errorf("unknown field type %q", def.Type)
}
