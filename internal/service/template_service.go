package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rayroman1160/agencyos/internal/auth"
	"github.com/rayroman1160/agencyos/internal/models"
)

// TemplateService manages service templates and materializes them into
// concrete tasks for a client.
type TemplateService struct {
	templates   TemplateStore
	tasks       TaskStore
	invalidator Invalidator
	log         *logrus.Logger
}

// NewTemplateService creates a template service.
func NewTemplateService(templates TemplateStore, tasks TaskStore, invalidator Invalidator, log *logrus.Logger) *TemplateService {
	return &TemplateService{
		templates:   templates,
		tasks:       tasks,
		invalidator: invalidator,
		log:         log,
	}
}

// CreateTemplateInput is the payload for CreateTemplate.
type CreateTemplateInput struct {
	Name        string
	Description string
}

// CreateTemplate creates an empty service template. Admin only.
func (s *TemplateService) CreateTemplate(ctx context.Context, actor auth.Actor, in CreateTemplateInput) (*models.ServiceTemplate, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("create template: %w", ErrUnauthorized)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("template name is required: %w", ErrInvalidInput)
	}

	t := &models.ServiceTemplate{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(in.Name),
		CreatedAt: time.Now().UTC(),
	}
	if in.Description != "" {
		t.Description = sql.NullString{String: in.Description, Valid: true}
	}

	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// AddBlueprintInput is the payload for AddBlueprint.
type AddBlueprintInput struct {
	Title           string
	Description     string
	RelativeDueDays int
	DefaultRole     string
}

// AddBlueprint appends a task blueprint to an existing template. Admin only.
func (s *TemplateService) AddBlueprint(ctx context.Context, actor auth.Actor, templateID uuid.UUID, in AddBlueprintInput) (*models.TemplateTask, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("add blueprint: %w", ErrUnauthorized)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("blueprint title is required: %w", ErrInvalidInput)
	}
	if in.RelativeDueDays < 0 {
		return nil, fmt.Errorf("relative due days must not be negative: %w", ErrInvalidInput)
	}
	if in.DefaultRole != "" && !models.ValidRole(in.DefaultRole) {
		return nil, fmt.Errorf("unknown role %q: %w", in.DefaultRole, ErrInvalidInput)
	}

	// Referential check before the insert so a bad template id surfaces as
	// not-found rather than a constraint violation.
	if _, err := s.templates.GetByID(ctx, templateID); err != nil {
		return nil, err
	}

	bp := &models.TemplateTask{
		ID:                uuid.New(),
		ServiceTemplateID: templateID,
		Title:             strings.TrimSpace(in.Title),
		RelativeDueDays:   in.RelativeDueDays,
	}
	if in.Description != "" {
		bp.Description = sql.NullString{String: in.Description, Valid: true}
	}
	if in.DefaultRole != "" {
		bp.DefaultRole = sql.NullString{String: in.DefaultRole, Valid: true}
	}

	if err := s.templates.AddTask(ctx, bp); err != nil {
		return nil, err
	}
	return bp, nil
}

// GetTemplate loads a template with its blueprints.
func (s *TemplateService) GetTemplate(ctx context.Context, id uuid.UUID) (*models.ServiceTemplate, error) {
	return s.templates.GetByID(ctx, id)
}

// ListTemplates lists all templates.
func (s *TemplateService) ListTemplates(ctx context.Context) ([]*models.ServiceTemplate, error) {
	return s.templates.List(ctx)
}

// ApplyTemplate materializes every blueprint of the template into a task for
// the client, due startDate + relativeDueDays, all inside one transaction.
// Created tasks start as TODO and unassigned; a blueprint's default role is
// not used for auto-assignment.
func (s *TemplateService) ApplyTemplate(ctx context.Context, actor auth.Actor, clientID, templateID uuid.UUID, startDate time.Time) error {
	if clientID == uuid.Nil || templateID == uuid.Nil {
		return fmt.Errorf("client and template ids are required: %w", ErrInvalidInput)
	}
	if startDate.IsZero() {
		return fmt.Errorf("start date is required: %w", ErrInvalidInput)
	}

	tpl, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return err
	}

	// Normalize to midnight UTC so AddDate is pure calendar arithmetic and
	// offsets never shift across DST boundaries.
	start := midnightUTC(startDate)
	now := time.Now().UTC()

	tasks := make([]*models.Task, 0, len(tpl.Tasks))
	for _, bp := range tpl.Tasks {
		tasks = append(tasks, &models.Task{
			ID:          uuid.New(),
			Title:       bp.Title,
			Description: bp.Description,
			ClientID:    clientID,
			Status:      models.TaskStatusTodo,
			DueDate:     start.AddDate(0, 0, bp.RelativeDueDays),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.tasks.CreateBatch(ctx, tasks); err != nil {
		return fmt.Errorf("apply template %q: %w", tpl.Name, err)
	}

	s.log.WithFields(logrus.Fields{
		"actor":    actor.ID,
		"client":   clientID,
		"template": tpl.Name,
		"tasks":    len(tasks),
	}).Info("applied service template")

	s.invalidator.ClientTasksChanged(clientID)
	return nil
}

// midnightUTC truncates t to its calendar date in UTC.
func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
