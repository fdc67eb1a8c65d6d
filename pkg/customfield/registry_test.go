package customfield

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefs() []Definition {
	return []Definition{
		{Key: "notes", Name: "Notes", Type: TypeText, EntityType: EntityLead},
		{Key: "budget", Name: "Budget", Type: TypeCurrency, EntityType: EntityLead},
		{Key: "source", Name: "Source", Type: TypeSelect, EntityType: EntityLead, Options: []string{"Referral", "Inbound", "Outbound"}},
		{Key: "services", Name: "Services", Type: TypeMultiSelect, EntityType: EntityLead, Options: []string{"SEO", "Ads", "Content"}},
	}
}

func TestRegistry_Validate(t *testing.T) {
	registry := NewRegistry(testDefs())

	tests := []struct {
		name    string
		raw     map[string]interface{}
		want    map[string]Value
		wantErr string
	}{
		{
			name: "all types accepted",
			raw: map[string]interface{}{
				"notes":    "call after lunch",
				"budget":   2500.0,
				"source":   "Inbound",
				"services": []interface{}{"SEO", "Ads"},
			},
			want: map[string]Value{
				"notes":    TextValue("call after lunch"),
				"budget":   CurrencyValue(2500.0),
				"source":   SelectValue("Inbound"),
				"services": MultiSelectValue([]string{"SEO", "Ads"}),
			},
		},
		{
			name: "currency submitted as string",
			raw:  map[string]interface{}{"budget": "1999.99"},
			want: map[string]Value{"budget": CurrencyValue(1999.99)},
		},
		{
			name:    "unknown key rejected",
			raw:     map[string]interface{}{"priority": "high"},
			wantErr: "unknown custom field",
		},
		{
			name:    "select outside options rejected",
			raw:     map[string]interface{}{"source": "Cold call"},
			wantErr: "not one of the allowed options",
		},
		{
			name:    "multi-select outside options rejected",
			raw:     map[string]interface{}{"services": []interface{}{"SEO", "Skywriting"}},
			wantErr: "not one of the allowed options",
		},
		{
			name:    "unparsable currency rejected",
			raw:     map[string]interface{}{"budget": "a lot"},
			wantErr: "invalid currency amount",
		},
		{
			name:    "wrong type for text rejected",
			raw:     map[string]interface{}{"notes": 42.0},
			wantErr: "expected string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry.Validate(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_ValidateDeduplicatesMultiSelect(t *testing.T) {
	registry := NewRegistry(testDefs())

	got, err := registry.Validate(map[string]interface{}{
		"services": []interface{}{"SEO", "SEO", "Ads"},
	})
	require.NoError(t, err)
	assert.Equal(t, MultiSelectValue([]string{"SEO", "Ads"}), got["services"])
}

func TestValueTaggedJSON(t *testing.T) {
	encoded, err := json.Marshal(map[string]Value{
		"budget": CurrencyValue(2500),
		"source": SelectValue("Inbound"),
	})
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"type":"CURRENCY"`)

	var decoded map[string]Value
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, CurrencyValue(2500), decoded["budget"])
	assert.Equal(t, SelectValue("Inbound"), decoded["source"])
}

func TestValueUnknownTypeRejected(t *testing.T) {
	var v Value
	err := json.Unmarshal([]byte(`{"type":"COLOR","value":"red"}`), &v)
	require.Error(t, err)
}

func TestDefinitionValidate(t *testing.T) {
	valid := Definition{Name: "Budget", Key: "budget", Type: TypeCurrency, EntityType: EntityLead}
	require.NoError(t, valid.Validate())

	badKey := valid
	badKey.Key = "Budget-2024"
	require.Error(t, badKey.Validate())

	noOptions := Definition{Name: "Source", Key: "source", Type: TypeSelect, EntityType: EntityLead}
	require.Error(t, noOptions.Validate())

	badEntity := valid
	badEntity.EntityType = "INVOICE"
	require.Error(t, badEntity.Validate())
}
