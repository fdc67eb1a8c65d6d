package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rayroman1160/agencyos/internal/auth"
	"github.com/rayroman1160/agencyos/internal/models"
	"github.com/rayroman1160/agencyos/pkg/customfield"
)

// DealService covers the CRM board: deals, stage moves, and the typed
// custom-field values attached to deals.
type DealService struct {
	deals  DealStore
	fields FieldStore
	log    *logrus.Logger
}

// NewDealService creates a deal service.
func NewDealService(deals DealStore, fields FieldStore, log *logrus.Logger) *DealService {
	return &DealService{deals: deals, fields: fields, log: log}
}

// CreateDealInput is the payload for CreateDeal. CustomValues holds the raw
// decoded JSON payload keyed by field definition key.
type CreateDealInput struct {
	Title        string
	Value        float64
	StageID      uuid.UUID
	ClientID     *uuid.UUID
	CustomValues map[string]interface{}
}

// CreateDeal creates a deal after validating its custom-field values
// against the stored definitions for leads.
func (s *DealService) CreateDeal(ctx context.Context, actor auth.Actor, in CreateDealInput) (*models.Deal, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("deal title is required: %w", ErrInvalidInput)
	}
	if in.Value < 0 {
		return nil, fmt.Errorf("deal value must not be negative: %w", ErrInvalidInput)
	}
	if in.StageID == uuid.Nil {
		return nil, fmt.Errorf("stage id is required: %w", ErrInvalidInput)
	}

	typed := map[string]customfield.Value{}
	if len(in.CustomValues) > 0 {
		defs, err := s.fields.ListByEntity(ctx, customfield.EntityLead)
		if err != nil {
			return nil, err
		}
		typed, err = customfield.NewRegistry(defs).Validate(in.CustomValues)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, ErrInvalidInput)
		}
	}

	encoded, err := json.Marshal(typed)
	if err != nil {
		return nil, fmt.Errorf("encode custom values: %w", err)
	}

	now := time.Now().UTC()
	d := &models.Deal{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(in.Title),
		Value:        in.Value,
		StageID:      in.StageID,
		CreatorID:    actor.ID,
		CustomValues: encoded,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.ClientID != nil {
		d.ClientID = uuid.NullUUID{UUID: *in.ClientID, Valid: true}
	}

	if err := s.deals.Create(ctx, d); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"actor": actor.ID, "deal": d.ID}).Info("deal created")
	return d, nil
}

// MoveStage moves a deal to another pipeline stage.
func (s *DealService) MoveStage(ctx context.Context, actor auth.Actor, dealID, stageID uuid.UUID) error {
	if dealID == uuid.Nil || stageID == uuid.Nil {
		return fmt.Errorf("deal and stage ids are required: %w", ErrInvalidInput)
	}
	return s.deals.UpdateStage(ctx, dealID, stageID)
}

// ListStages returns the pipeline stages in board order.
func (s *DealService) ListStages(ctx context.Context) ([]*models.PipelineStage, error) {
	return s.deals.ListStages(ctx)
}

// ListByStage returns the deals in one stage.
func (s *DealService) ListByStage(ctx context.Context, stageID uuid.UUID) ([]*models.Deal, error) {
	return s.deals.ListByStage(ctx, stageID)
}

// FieldService manages custom-field definitions. Admin only.
type FieldService struct {
	fields FieldStore
}

// NewFieldService creates a field service.
func NewFieldService(fields FieldStore) *FieldService {
	return &FieldService{fields: fields}
}

// CreateField stores a new definition.
func (s *FieldService) CreateField(ctx context.Context, actor auth.Actor, def customfield.Definition) (*customfield.Definition, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("create custom field: %w", ErrUnauthorized)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}

	def.ID = uuid.New()
	def.CreatedAt = time.Now().UTC()
	if err := s.fields.Create(ctx, &def); err != nil {
		return nil, err
	}
	return &def, nil
}

// DeleteField removes a definition.
func (s *FieldService) DeleteField(ctx context.Context, actor auth.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("delete custom field: %w", ErrUnauthorized)
	}
	return s.fields.Delete(ctx, id)
}

// ListFields returns the definitions for one entity type.
func (s *FieldService) ListFields(ctx context.Context, entity customfield.EntityType) ([]customfield.Definition, error) {
	return s.fields.ListByEntity(ctx, entity)
}
