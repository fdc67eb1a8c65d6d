package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    role TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS clients (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    contact_email TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS service_templates (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS template_tasks (
    id UUID PRIMARY KEY,
    service_template_id UUID NOT NULL REFERENCES service_templates(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT,
    relative_due_days INT NOT NULL CHECK (relative_due_days >= 0),
    default_role TEXT,
    position INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tasks (
    id UUID PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    client_id UUID NOT NULL REFERENCES clients(id),
    status TEXT NOT NULL DEFAULT 'TODO',
    due_date DATE NOT NULL,
    assignee_id UUID REFERENCES users(id),
    last_notification_sent_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_tasks_client ON tasks (client_id);
CREATE INDEX IF NOT EXISTS idx_tasks_overdue ON tasks (status, due_date);

CREATE TABLE IF NOT EXISTS pipeline_stages (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    position INT NOT NULL
);

CREATE TABLE IF NOT EXISTS deals (
    id UUID PRIMARY KEY,
    title TEXT NOT NULL,
    value NUMERIC NOT NULL DEFAULT 0,
    stage_id UUID NOT NULL REFERENCES pipeline_stages(id),
    client_id UUID REFERENCES clients(id),
    creator_id UUID NOT NULL REFERENCES users(id),
    custom_values JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_deals_stage ON deals (stage_id);

CREATE TABLE IF NOT EXISTS custom_field_definitions (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    key TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL,
    entity_type TEXT NOT NULL,
    options TEXT[] NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate creates all tables and indexes if they are missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
