package customfield

import (
	"encoding/json"
	"fmt"
)

// Value is a tagged variant holding exactly one of the supported field
// payloads, discriminated by Type.
type Value struct {
	Type        Type
	Text        string
	Currency    float64
	Select      string
	MultiSelect []string
}

// TextValue builds a TEXT value.
func TextValue(s string) Value { return Value{Type: TypeText, Text: s} }

// CurrencyValue builds a CURRENCY value.
func CurrencyValue(f float64) Value { return Value{Type: TypeCurrency, Currency: f} }

// SelectValue builds a SELECT value.
func SelectValue(s string) Value { return Value{Type: TypeSelect, Select: s} }

// MultiSelectValue builds a MULTI_SELECT value.
func MultiSelectValue(ss []string) Value { return Value{Type: TypeMultiSelect, MultiSelect: ss} }

type taggedValue struct {
	Type  Type            `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes the value as {"type": ..., "value": ...}.
func (v Value) MarshalJSON() ([]byte, error) {
	var payload interface{}
	switch v.Type {
	case TypeText:
		payload = v.Text
	case TypeCurrency:
		payload = v.Currency
	case TypeSelect:
		payload = v.Select
	case TypeMultiSelect:
		payload = v.MultiSelect
	default:
		return nil, fmt.Errorf("marshal custom field: unknown type %q", v.Type)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(taggedValue{Type: v.Type, Value: raw})
}

// UnmarshalJSON decodes the tagged form produced by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var tagged taggedValue
	if err := json.Unmarshal(data, &tagged); err != nil {
		return err
	}
	out := Value{Type: tagged.Type}
	switch tagged.Type {
	case TypeText:
		if err := json.Unmarshal(tagged.Value, &out.Text); err != nil {
			return fmt.Errorf("unmarshal text field: %w", err)
		}
	case TypeCurrency:
		if err := json.Unmarshal(tagged.Value, &out.Currency); err != nil {
			return fmt.Errorf("unmarshal currency field: %w", err)
		}
	case TypeSelect:
		if err := json.Unmarshal(tagged.Value, &out.Select); err != nil {
			return fmt.Errorf("unmarshal select field: %w", err)
		}
	case TypeMultiSelect:
		if err := json.Unmarshal(tagged.Value, &out.MultiSelect); err != nil {
			return fmt.Errorf("unmarshal multi-select field: %w", err)
		}
	default:
		return fmt.Errorf("unmarshal custom field: unknown type %q", tagged.Type)
	}
	*v = out
	return nil
}
