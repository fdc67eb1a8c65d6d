package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Task status constants
const (
	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
)

// ValidTaskStatus reports whether s is one of the known task statuses.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task is a concrete, dated piece of work attached to a client. Tasks are
// created ad hoc or materialized from a service template.
type Task struct {
	ID                     uuid.UUID      `db:"id"`
	Title                  string         `db:"title"`
	Description            sql.NullString `db:"description"`
	ClientID               uuid.UUID      `db:"client_id"`
	Status                 string         `db:"status"`
	DueDate                time.Time      `db:"due_date"`
	AssigneeID             uuid.NullUUID  `db:"assignee_id"`
	LastNotificationSentAt sql.NullTime   `db:"last_notification_sent_at"`
	CreatedAt              time.Time      `db:"created_at"`
	UpdatedAt              time.Time      `db:"updated_at"`
}

// Overdue reports whether the task is still open and strictly past due.
func (t *Task) Overdue(now time.Time) bool {
	return t.Status != TaskStatusDone && t.DueDate.Before(now)
}
