package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rayroman1160/agencyos/pkg/customfield"
)

// FieldStore persists custom-field definitions.
type FieldStore struct {
	db *sqlx.DB
}

// NewFieldStore creates a field store over db.
func NewFieldStore(db *sqlx.DB) *FieldStore {
	return &FieldStore{db: db}
}

// Create inserts a definition. The key is unique across all entity types.
func (s *FieldStore) Create(ctx context.Context, d *customfield.Definition) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO custom_field_definitions (id, name, key, type, entity_type, options, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.Name, d.Key, d.Type, d.EntityType, d.Options, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert custom field definition: %w", err)
	}
	return nil
}

// ListByEntity returns the definitions for one entity type.
func (s *FieldStore) ListByEntity(ctx context.Context, entity customfield.EntityType) ([]customfield.Definition, error) {
	var defs []customfield.Definition
	err := s.db.SelectContext(ctx, &defs,
		`SELECT * FROM custom_field_definitions WHERE entity_type = $1 ORDER BY created_at`, entity)
	if err != nil {
		return nil, fmt.Errorf("list custom field definitions: %w", err)
	}
	return defs, nil
}

// Delete removes a definition.
func (s *FieldStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM custom_field_definitions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete custom field definition: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("custom field definition %s: %w", id, ErrNotFound)
	}
	return nil
}
