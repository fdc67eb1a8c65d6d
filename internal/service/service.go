// Package service holds the application core: template instantiation, the
// overdue notification sweep, and the surrounding task/CRM operations.
// Services depend on narrow collaborator interfaces so the store and the
// notifier can be swapped for fakes in tests.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rayroman1160/agencyos/internal/models"
	"github.com/rayroman1160/agencyos/internal/store"
	"github.com/rayroman1160/agencyos/pkg/customfield"
)

// ErrNotFound marks a missing record. Aliases the store sentinel so both
// layers agree on one error identity.
var ErrNotFound = store.ErrNotFound

// ErrInvalidInput marks a request rejected before any store access.
var ErrInvalidInput = errors.New("invalid input")

// ErrUnauthorized marks an actor lacking the role an operation requires.
var ErrUnauthorized = errors.New("unauthorized")

// TemplateStore is the persistence surface for service templates.
type TemplateStore interface {
	Create(ctx context.Context, t *models.ServiceTemplate) error
	AddTask(ctx context.Context, bp *models.TemplateTask) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceTemplate, error)
	List(ctx context.Context) ([]*models.ServiceTemplate, error)
}

// TaskStore is the persistence surface for tasks. CreateBatch must be
// atomic: either every task in the slice is committed or none are.
type TaskStore interface {
	Create(ctx context.Context, t *models.Task) error
	CreateBatch(ctx context.Context, tasks []*models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Task, error)
	ListOverdue(ctx context.Context, now time.Time) ([]*models.Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	SetLastNotified(ctx context.Context, id uuid.UUID, at time.Time) error
}

// UserStore resolves users for notification addressing.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ClientStore is the persistence surface for clients.
type ClientStore interface {
	Create(ctx context.Context, c *models.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	List(ctx context.Context) ([]*models.Client, error)
}

// DealStore is the persistence surface for the CRM board.
type DealStore interface {
	Create(ctx context.Context, d *models.Deal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Deal, error)
	ListByStage(ctx context.Context, stageID uuid.UUID) ([]*models.Deal, error)
	UpdateStage(ctx context.Context, id, stageID uuid.UUID) error
	ListStages(ctx context.Context) ([]*models.PipelineStage, error)
}

// FieldStore is the persistence surface for custom-field definitions.
type FieldStore interface {
	Create(ctx context.Context, d *customfield.Definition) error
	ListByEntity(ctx context.Context, entity customfield.EntityType) ([]customfield.Definition, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Invalidator is the fire-and-forget view-invalidation hook. The core calls
// it after a successful commit and ignores the outcome.
type Invalidator interface {
	ClientTasksChanged(clientID uuid.UUID)
}

// LogInvalidator logs invalidation signals; the presentation layer that
// would consume them is out of scope here.
type LogInvalidator struct {
	Log *logrus.Logger
}

// ClientTasksChanged logs the changed client.
func (l *LogInvalidator) ClientTasksChanged(clientID uuid.UUID) {
	l.Log.WithField("client_id", clientID).Debug("client task list changed")
}

// NopInvalidator discards invalidation signals.
type NopInvalidator struct{}

// ClientTasksChanged does nothing.
func (NopInvalidator) ClientTasksChanged(uuid.UUID) {}
