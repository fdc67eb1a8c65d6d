// Package customfield implements typed custom-field values validated
// against a stored field-definition registry. Values are a tagged variant
// (text, currency, select, multi-select) rather than an untyped string map,
// so a bad payload is rejected before it ever reaches the database.
package customfield

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Type enumerates the supported field value kinds.
type Type string

const (
	TypeText        Type = "TEXT"
	TypeCurrency    Type = "CURRENCY"
	TypeSelect      Type = "SELECT"
	TypeMultiSelect Type = "MULTI_SELECT"
)

// EntityType names the record kind a definition attaches to.
type EntityType string

const (
	EntityLead   EntityType = "LEAD"
	EntityClient EntityType = "CLIENT"
)

// keyPattern matches lowercase snake_case keys.
var keyPattern = regexp.MustCompile(`^[a-z_]+$`)

// Definition describes one admin-configured custom field.
type Definition struct {
	ID         uuid.UUID      `db:"id"`
	Name       string         `db:"name"`
	Key        string         `db:"key"`
	Type       Type           `db:"type"`
	EntityType EntityType     `db:"entity_type"`
	Options    pq.StringArray `db:"options"`
	CreatedAt  time.Time      `db:"created_at"`
}

// Validate checks the definition is internally consistent.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !keyPattern.MatchString(d.Key) {
		return fmt.Errorf("key %q must be lowercase snake_case", d.Key)
	}
	switch d.Type {
	case TypeText, TypeCurrency:
	case TypeSelect, TypeMultiSelect:
		if len(d.Options) == 0 {
			return fmt.Errorf("field %q: %s fields require options", d.Key, d.Type)
		}
	default:
		return fmt.Errorf("unknown field type %q", d.Type)
	}
	switch d.EntityType {
	case EntityLead, EntityClient:
	default:
		return fmt.Errorf("unknown entity type %q", d.EntityType)
	}
	return nil
}

func (d *Definition) hasOption(opt string) bool {
	for _, o := range d.Options {
		if o == opt {
			return true
		}
	}
	return false
}
