package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rayroman1160/agencyos/internal/service"
	"github.com/rayroman1160/agencyos/pkg/customfield"
)

type createDealRequest struct {
	Title        string                 `json:"title" validate:"required,min=1"`
	Value        float64                `json:"value" validate:"min=0"`
	StageID      string                 `json:"stage_id" validate:"required,uuid"`
	ClientID     string                 `json:"client_id" validate:"omitempty,uuid"`
	CustomValues map[string]interface{} `json:"custom_values"`
}

// CreateDeal creates a deal on the CRM board.
func (h *Handler) CreateDeal(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req createDealRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	stageID, err := bodyUUID(req.StageID, "stage_id")
	if err != nil {
		return h.fail(c, err)
	}

	in := service.CreateDealInput{
		Title:        req.Title,
		Value:        req.Value,
		StageID:      stageID,
		CustomValues: req.CustomValues,
	}
	if req.ClientID != "" {
		clientID, err := bodyUUID(req.ClientID, "client_id")
		if err != nil {
			return h.fail(c, err)
		}
		in.ClientID = &clientID
	}

	deal, err := h.deals.CreateDeal(c.UserContext(), actor, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newDealResponse(deal))
}

type moveDealStageRequest struct {
	StageID string `json:"stage_id" validate:"required,uuid"`
}

// MoveDealStage moves a deal to another pipeline stage.
func (h *Handler) MoveDealStage(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.fail(c, err)
	}

	dealID, err := pathUUID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	var req moveDealStageRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}
	stageID, err := bodyUUID(req.StageID, "stage_id")
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.deals.MoveStage(c.UserContext(), actor, dealID, stageID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "moved"})
}

// ListStages returns the pipeline stages in board order.
func (h *Handler) ListStages(c *fiber.Ctx) error {
	stages, err := h.deals.ListStages(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}

	out := make([]stageResponse, len(stages))
	for i, s := range stages {
		out[i] = newStageResponse(s)
	}
	return c.JSON(fiber.Map{"stages": out})
}

// ListStageDeals returns the deals in one stage.
func (h *Handler) ListStageDeals(c *fiber.Ctx) error {
	stageID, err := pathUUID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	deals, err := h.deals.ListByStage(c.UserContext(), stageID)
	if err != nil {
		return h.fail(c, err)
	}

	out := make([]dealResponse, len(deals))
	for i, d := range deals {
		out[i] = newDealResponse(d)
	}
	return c.JSON(fiber.Map{"deals": out})
}

type createFieldRequest struct {
	Name       string   `json:"name" validate:"required,min=1"`
	Key        string   `json:"key" validate:"required,min=1"`
	Type       string   `json:"type" validate:"required,oneof=TEXT CURRENCY SELECT MULTI_SELECT"`
	EntityType string   `json:"entity_type" validate:"required,oneof=LEAD CLIENT"`
	Options    []string `json:"options"`
}

// CreateField stores a custom-field definition.
func (h *Handler) CreateField(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req createFieldRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	def, err := h.fields.CreateField(c.UserContext(), actor, customfield.Definition{
		Name:       req.Name,
		Key:        req.Key,
		Type:       customfield.Type(req.Type),
		EntityType: customfield.EntityType(req.EntityType),
		Options:    req.Options,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newFieldResponse(def))
}

// ListFields returns the definitions for an entity type (query param
// "entity", defaulting to LEAD).
func (h *Handler) ListFields(c *fiber.Ctx) error {
	entity := customfield.EntityType(c.Query("entity", string(customfield.EntityLead)))

	defs, err := h.fields.ListFields(c.UserContext(), entity)
	if err != nil {
		return h.fail(c, err)
	}

	out := make([]fieldResponse, len(defs))
	for i := range defs {
		out[i] = newFieldResponse(&defs[i])
	}
	return c.JSON(fiber.Map{"fields": out})
}

// DeleteField removes a custom-field definition.
func (h *Handler) DeleteField(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.fail(c, err)
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.fields.DeleteField(c.UserContext(), actor, id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
