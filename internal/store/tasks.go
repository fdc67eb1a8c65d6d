package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rayroman1160/agencyos/internal/models"
)

// TaskStore persists tasks.
type TaskStore struct {
	db *sqlx.DB
}

// NewTaskStore creates a task store over db.
func NewTaskStore(db *sqlx.DB) *TaskStore {
	return &TaskStore{db: db}
}

const insertTask = `
	INSERT INTO tasks (id, title, description, client_id, status, due_date, assignee_id, created_at, updated_at)
	VALUES (:id, :title, :description, :client_id, :status, :due_date, :assignee_id, :created_at, :updated_at)`

// Create inserts a single task.
func (s *TaskStore) Create(ctx context.Context, t *models.Task) error {
	if _, err := s.db.NamedExecContext(ctx, insertTask, t); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// CreateBatch inserts all tasks inside one transaction. Either every task
// is committed or none are.
func (s *TaskStore) CreateBatch(ctx context.Context, tasks []*models.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, t := range tasks {
		if _, err := tx.NamedExecContext(ctx, insertTask, t); err != nil {
			return rollback(tx, fmt.Errorf("insert task %q: %w", t.Title, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit task batch: %w", err)
	}
	return nil
}

// GetByID fetches one task.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var t models.Task
	err := s.db.GetContext(ctx, &t, `SELECT * FROM tasks WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// ListByClient returns a client's tasks ordered by due date.
func (s *TaskStore) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Task, error) {
	var tasks []*models.Task
	err := s.db.SelectContext(ctx, &tasks,
		`SELECT * FROM tasks WHERE client_id = $1 ORDER BY due_date, created_at`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list tasks for client: %w", err)
	}
	return tasks, nil
}

// ListOverdue returns open tasks with an assignee whose due date is strictly
// before now. Cooldown filtering happens in the sweep, not here.
func (s *TaskStore) ListOverdue(ctx context.Context, now time.Time) ([]*models.Task, error) {
	var tasks []*models.Task
	err := s.db.SelectContext(ctx, &tasks, `
		SELECT * FROM tasks
		WHERE status <> $1 AND due_date < $2 AND assignee_id IS NOT NULL
		ORDER BY due_date`,
		models.TaskStatusDone, now)
	if err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus moves a task to a new status.
func (s *TaskStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	return mustAffect(res, id)
}

// SetLastNotified stamps the notification timestamp after a successful send.
func (s *TaskStore) SetLastNotified(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET last_notification_sent_at = $2, updated_at = now() WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("stamp notification time: %w", err)
	}
	return mustAffect(res, id)
}

func mustAffect(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}
