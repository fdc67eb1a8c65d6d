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

// DealStore persists deals and pipeline stages.
type DealStore struct {
	db *sqlx.DB
}

// NewDealStore creates a deal store over db.
func NewDealStore(db *sqlx.DB) *DealStore {
	return &DealStore{db: db}
}

// Create inserts a deal.
func (s *DealStore) Create(ctx context.Context, d *models.Deal) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO deals (id, title, value, stage_id, client_id, creator_id, custom_values, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.ID, d.Title, d.Value, d.StageID, d.ClientID, d.CreatorID, d.CustomValues, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert deal: %w", err)
	}
	return nil
}

// GetByID fetches one deal.
func (s *DealStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Deal, error) {
	var d models.Deal
	err := s.db.GetContext(ctx, &d, `SELECT * FROM deals WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("deal %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get deal: %w", err)
	}
	return &d, nil
}

// ListByStage returns the deals in one stage, newest first.
func (s *DealStore) ListByStage(ctx context.Context, stageID uuid.UUID) ([]*models.Deal, error) {
	var deals []*models.Deal
	err := s.db.SelectContext(ctx, &deals,
		`SELECT * FROM deals WHERE stage_id = $1 ORDER BY created_at DESC`, stageID)
	if err != nil {
		return nil, fmt.Errorf("list deals by stage: %w", err)
	}
	return deals, nil
}

// UpdateStage moves a deal to another pipeline stage.
func (s *DealStore) UpdateStage(ctx context.Context, id, stageID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE deals SET stage_id = $2, updated_at = now() WHERE id = $1`, id, stageID)
	if err != nil {
		return fmt.Errorf("update deal stage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("deal %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListStages returns the pipeline stages in board order.
func (s *DealStore) ListStages(ctx context.Context) ([]*models.PipelineStage, error) {
	var stages []*models.PipelineStage
	err := s.db.SelectContext(ctx, &stages, `SELECT * FROM pipeline_stages ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list pipeline stages: %w", err)
	}
	return stages, nil
}

// SeedStages inserts the default pipeline when the table is empty.
func (s *DealStore) SeedStages(ctx context.Context) error {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM pipeline_stages`); err != nil {
		return fmt.Errorf("count pipeline stages: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []string{"Lead", "Discovery", "Proposal", "Negotiation", "Closed Won", "Closed Lost"}
	for i, name := range defaults {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO pipeline_stages (id, name, position) VALUES ($1, $2, $3)`,
			uuid.New(), name, i+1)
		if err != nil {
			return fmt.Errorf("seed stage %q: %w", name, err)
		}
	}
	return nil
}
