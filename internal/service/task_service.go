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

// TaskService covers ad hoc task creation and status changes.
type TaskService struct {
	tasks       TaskStore
	invalidator Invalidator
	log         *logrus.Logger
}

// NewTaskService creates a task service.
func NewTaskService(tasks TaskStore, invalidator Invalidator, log *logrus.Logger) *TaskService {
	return &TaskService{tasks: tasks, invalidator: invalidator, log: log}
}

// CreateTaskInput is the payload for CreateTask.
type CreateTaskInput struct {
	Title       string
	Description string
	ClientID    uuid.UUID
	DueDate     time.Time
	AssigneeID  *uuid.UUID
}

// CreateTask creates one task directly, outside any template.
func (s *TaskService) CreateTask(ctx context.Context, actor auth.Actor, in CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("task title is required: %w", ErrInvalidInput)
	}
	if in.ClientID == uuid.Nil {
		return nil, fmt.Errorf("client id is required: %w", ErrInvalidInput)
	}
	if in.DueDate.IsZero() {
		return nil, fmt.Errorf("due date is required: %w", ErrInvalidInput)
	}

	now := time.Now().UTC()
	t := &models.Task{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(in.Title),
		ClientID:  in.ClientID,
		Status:    models.TaskStatusTodo,
		DueDate:   midnightUTC(in.DueDate),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Description != "" {
		t.Description = sql.NullString{String: in.Description, Valid: true}
	}
	if in.AssigneeID != nil {
		t.AssigneeID = uuid.NullUUID{UUID: *in.AssigneeID, Valid: true}
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}

	s.invalidator.ClientTasksChanged(in.ClientID)
	return t, nil
}

// UpdateStatus moves a task to a new status.
func (s *TaskService) UpdateStatus(ctx context.Context, actor auth.Actor, taskID uuid.UUID, status string) error {
	if !models.ValidTaskStatus(status) {
		return fmt.Errorf("unknown status %q: %w", status, ErrInvalidInput)
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if err := s.tasks.UpdateStatus(ctx, taskID, status); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"actor":  actor.ID,
		"task":   taskID,
		"status": status,
	}).Info("task status updated")

	s.invalidator.ClientTasksChanged(task.ClientID)
	return nil
}

// ListByClient returns a client's tasks ordered by due date.
func (s *TaskService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Task, error) {
	return s.tasks.ListByClient(ctx, clientID)
}

// ListOverdue returns open assigned tasks past their due date.
func (s *TaskService) ListOverdue(ctx context.Context) ([]*models.Task, error) {
	return s.tasks.ListOverdue(ctx, time.Now().UTC())
}

// ClientService covers client records.
type ClientService struct {
	clients ClientStore
}

// NewClientService creates a client service.
func NewClientService(clients ClientStore) *ClientService {
	return &ClientService{clients: clients}
}

// CreateClient creates a client.
func (s *ClientService) CreateClient(ctx context.Context, actor auth.Actor, name, contactEmail string) (*models.Client, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("client name is required: %w", ErrInvalidInput)
	}

	now := time.Now().UTC()
	c := &models.Client{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if contactEmail != "" {
		c.ContactEmail = sql.NullString{String: contactEmail, Valid: true}
	}

	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetClient fetches one client.
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return s.clients.GetByID(ctx, id)
}

// ListClients returns all clients.
func (s *ClientService) ListClients(ctx context.Context) ([]*models.Client, error) {
	return s.clients.List(ctx)
}
