package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rayroman1160/agencyos/internal/models"
)

// TemplateStore persists service templates and their blueprints.
type TemplateStore struct {
	db *sqlx.DB
}

// NewTemplateStore creates a template store over db.
func NewTemplateStore(db *sqlx.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// Create inserts a service template.
func (s *TemplateStore) Create(ctx context.Context, t *models.ServiceTemplate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO service_templates (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)`,
		t.ID, t.Name, t.Description, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert service template: %w", err)
	}
	return nil
}

// AddTask appends a blueprint to a template. Position is assigned after the
// current last blueprint.
func (s *TemplateStore) AddTask(ctx context.Context, bp *models.TemplateTask) error {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO template_tasks (id, service_template_id, title, description, relative_due_days, default_role, position)
		VALUES ($1, $2, $3, $4, $5, $6,
			(SELECT COALESCE(MAX(position), 0) + 1 FROM template_tasks WHERE service_template_id = $2))
		RETURNING position`,
		bp.ID, bp.ServiceTemplateID, bp.Title, bp.Description, bp.RelativeDueDays, bp.DefaultRole).Scan(&bp.Position)
	if err != nil {
		return fmt.Errorf("insert template task: %w", err)
	}
	return nil
}

// GetByID loads a template together with its blueprints in display order.
func (s *TemplateStore) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceTemplate, error) {
	var t models.ServiceTemplate
	err := s.db.GetContext(ctx, &t, `SELECT * FROM service_templates WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("service template %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get service template: %w", err)
	}

	err = s.db.SelectContext(ctx, &t.Tasks,
		`SELECT * FROM template_tasks WHERE service_template_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("get template tasks: %w", err)
	}
	return &t, nil
}

// List returns all templates, newest first, without blueprints.
func (s *TemplateStore) List(ctx context.Context) ([]*models.ServiceTemplate, error) {
	var templates []*models.ServiceTemplate
	err := s.db.SelectContext(ctx, &templates,
		`SELECT * FROM service_templates ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list service templates: %w", err)
	}
	return templates, nil
}
