package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// ServiceTemplate is a reusable checklist of task blueprints that can be
// applied to a client with a start date.
type ServiceTemplate struct {
	ID          uuid.UUID      `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`

	// Blueprints ordered by position. Position only affects display; the
	// due-day offset determines the effective schedule.
	Tasks []TemplateTask `db:"-"`
}

// TemplateTask is a single blueprint inside a service template. The due-day
// offset is counted in calendar days from the start date chosen at
// instantiation time.
type TemplateTask struct {
	ID                uuid.UUID      `db:"id"`
	ServiceTemplateID uuid.UUID      `db:"service_template_id"`
	Title             string         `db:"title"`
	Description       sql.NullString `db:"description"`
	RelativeDueDays   int            `db:"relative_due_days"`
	DefaultRole       sql.NullString `db:"default_role"`
	Position          int            `db:"position"`
}
