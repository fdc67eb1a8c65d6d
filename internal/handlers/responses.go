package handlers

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/rayroman1160/agencyos/internal/models"
	"github.com/rayroman1160/agencyos/pkg/customfield"
)

// dateFormat is the wire format for calendar dates.
const dateFormat = "2006-01-02"

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullableUUID(u uuid.NullUUID) *uuid.UUID {
	if !u.Valid {
		return nil
	}
	return &u.UUID
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

type taskResponse struct {
	ID                     uuid.UUID  `json:"id"`
	Title                  string     `json:"title"`
	Description            *string    `json:"description,omitempty"`
	ClientID               uuid.UUID  `json:"client_id"`
	Status                 string     `json:"status"`
	DueDate                string     `json:"due_date"`
	AssigneeID             *uuid.UUID `json:"assignee_id,omitempty"`
	LastNotificationSentAt *time.Time `json:"last_notification_sent_at,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func newTaskResponse(t *models.Task) taskResponse {
	return taskResponse{
		ID:                     t.ID,
		Title:                  t.Title,
		Description:            nullableString(t.Description),
		ClientID:               t.ClientID,
		Status:                 t.Status,
		DueDate:                t.DueDate.Format(dateFormat),
		AssigneeID:             nullableUUID(t.AssigneeID),
		LastNotificationSentAt: nullableTime(t.LastNotificationSentAt),
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
	}
}

func newTaskResponses(tasks []*models.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = newTaskResponse(t)
	}
	return out
}

type blueprintResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	RelativeDueDays int       `json:"relative_due_days"`
	DefaultRole     *string   `json:"default_role,omitempty"`
	Position        int       `json:"position"`
}

type templateResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	Tasks       []blueprintResponse `json:"tasks,omitempty"`
}

func newTemplateResponse(t *models.ServiceTemplate) templateResponse {
	resp := templateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: nullableString(t.Description),
		CreatedAt:   t.CreatedAt,
	}
	for _, bp := range t.Tasks {
		resp.Tasks = append(resp.Tasks, newBlueprintResponse(&bp))
	}
	return resp
}

func newBlueprintResponse(bp *models.TemplateTask) blueprintResponse {
	return blueprintResponse{
		ID:              bp.ID,
		Title:           bp.Title,
		Description:     nullableString(bp.Description),
		RelativeDueDays: bp.RelativeDueDays,
		DefaultRole:     nullableString(bp.DefaultRole),
		Position:        bp.Position,
	}
}

type clientResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func newClientResponse(c *models.Client) clientResponse {
	return clientResponse{
		ID:           c.ID,
		Name:         c.Name,
		ContactEmail: nullableString(c.ContactEmail),
		CreatedAt:    c.CreatedAt,
	}
}

type stageResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Position int       `json:"position"`
}

func newStageResponse(s *models.PipelineStage) stageResponse {
	return stageResponse{ID: s.ID, Name: s.Name, Position: s.Position}
}

type dealResponse struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Value        float64         `json:"value"`
	StageID      uuid.UUID       `json:"stage_id"`
	ClientID     *uuid.UUID      `json:"client_id,omitempty"`
	CreatorID    uuid.UUID       `json:"creator_id"`
	CustomValues json.RawMessage `json:"custom_values"`
	CreatedAt    time.Time       `json:"created_at"`
}

func newDealResponse(d *models.Deal) dealResponse {
	return dealResponse{
		ID:           d.ID,
		Title:        d.Title,
		Value:        d.Value,
		StageID:      d.StageID,
		ClientID:     nullableUUID(d.ClientID),
		CreatorID:    d.CreatorID,
		CustomValues: d.CustomValues,
		CreatedAt:    d.CreatedAt,
	}
}

type fieldResponse struct {
	ID         uuid.UUID              `json:"id"`
	Name       string                 `json:"name"`
	Key        string                 `json:"key"`
	Type       customfield.Type       `json:"type"`
	EntityType customfield.EntityType `json:"entity_type"`
	Options    []string               `json:"options"`
	CreatedAt  time.Time              `json:"created_at"`
}

func newFieldResponse(d *customfield.Definition) fieldResponse {
	return fieldResponse{
		ID:         d.ID,
		Name:       d.Name,
		Key:        d.Key,
		Type:       d.Type,
		EntityType: d.EntityType,
		Options:    d.Options,
		CreatedAt:  d.CreatedAt,
	}
}
