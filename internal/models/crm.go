package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PipelineStage is a named column on the CRM board.
type PipelineStage struct {
	ID       uuid.UUID `db:"id"`
	Name     string    `db:"name"`
	Position int       `db:"position"`
}

// Deal is a sales opportunity moving through the pipeline. CustomValues
// holds validated custom-field values serialized as JSON; see
// pkg/customfield for the value encoding.
type Deal struct {
	ID           uuid.UUID       `db:"id"`
	Title        string          `db:"title"`
	Value        float64         `db:"value"`
	StageID      uuid.UUID       `db:"stage_id"`
	ClientID     uuid.NullUUID   `db:"client_id"`
	CreatorID    uuid.UUID       `db:"creator_id"`
	CustomValues json.RawMessage `db:"custom_values"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}
