package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rayroman1160/agencyos/internal/models"
)

// In-memory collaborator fakes. They implement the same contracts the
// Postgres stores do, including atomic CreateBatch.

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeTemplateStore struct {
	templates map[uuid.UUID]*models.ServiceTemplate
}

func newFakeTemplateStore() *fakeTemplateStore {
	return &fakeTemplateStore{templates: make(map[uuid.UUID]*models.ServiceTemplate)}
}

func (f *fakeTemplateStore) Create(ctx context.Context, t *models.ServiceTemplate) error {
	f.templates[t.ID] = t
	return nil
}

func (f *fakeTemplateStore) AddTask(ctx context.Context, bp *models.TemplateTask) error {
	t, ok := f.templates[bp.ServiceTemplateID]
	if !ok {
		return fmt.Errorf("service template %s: %w", bp.ServiceTemplateID, ErrNotFound)
	}
	bp.Position = len(t.Tasks) + 1
	t.Tasks = append(t.Tasks, *bp)
	return nil
}

func (f *fakeTemplateStore) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceTemplate, error) {
	t, ok := f.templates[id]
	if !ok {
		return nil, fmt.Errorf("service template %s: %w", id, ErrNotFound)
	}
	return t, nil
}

func (f *fakeTemplateStore) List(ctx context.Context) ([]*models.ServiceTemplate, error) {
	out := make([]*models.ServiceTemplate, 0, len(f.templates))
	for _, t := range f.templates {
		out = append(out, t)
	}
	return out, nil
}

type fakeTaskStore struct {
	tasks map[uuid.UUID]*models.Task

	// batchErr forces CreateBatch to fail atomically: nothing is stored.
	batchErr error
	// stampErr forces SetLastNotified to fail.
	stampErr error
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[uuid.UUID]*models.Task)}
}

func (f *fakeTaskStore) Create(ctx context.Context, t *models.Task) error {
	copied := *t
	f.tasks[t.ID] = &copied
	return nil
}

func (f *fakeTaskStore) CreateBatch(ctx context.Context, tasks []*models.Task) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	for _, t := range tasks {
		copied := *t
		f.tasks[t.ID] = &copied
	}
	return nil
}

func (f *fakeTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, nil
}

func (f *fakeTaskStore) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Task, error) {
	var out []*models.Task
	for _, t := range f.tasks {
		if t.ClientID == clientID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) ListOverdue(ctx context.Context, now time.Time) ([]*models.Task, error) {
	var out []*models.Task
	for _, t := range f.tasks {
		if t.Overdue(now) && t.AssigneeID.Valid {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	t, ok := f.tasks[id]
	if !ok {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	t.Status = status
	return nil
}

func (f *fakeTaskStore) SetLastNotified(ctx context.Context, id uuid.UUID, at time.Time) error {
	if f.stampErr != nil {
		return f.stampErr
	}
	t, ok := f.tasks[id]
	if !ok {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	t.LastNotificationSentAt.Time = at
	t.LastNotificationSentAt.Valid = true
	return nil
}

type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return u, nil
}

type recordingInvalidator struct {
	changed []uuid.UUID
}

func (r *recordingInvalidator) ClientTasksChanged(clientID uuid.UUID) {
	r.changed = append(r.changed, clientID)
}
