package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rayroman1160/agencyos/internal/service"
)

type createTemplateRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
}

// CreateTemplate creates an empty service template.
func (h *Handler) CreateTemplate(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req createTemplateRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	tpl, err := h.templates.CreateTemplate(c.UserContext(), actor, service.CreateTemplateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newTemplateResponse(tpl))
}

// ListTemplates lists all service templates.
func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.templates.ListTemplates(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}

	out := make([]templateResponse, len(templates))
	for i, t := range templates {
		out[i] = newTemplateResponse(t)
	}
	return c.JSON(fiber.Map{"templates": out})
}

// GetTemplate returns a template with its blueprints.
func (h *Handler) GetTemplate(c *fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	tpl, err := h.templates.GetTemplate(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(newTemplateResponse(tpl))
}

type addBlueprintRequest struct {
	Title           string `json:"title" validate:"required,min=1"`
	Description     string `json:"description"`
	RelativeDueDays int    `json:"relative_due_days" validate:"min=0"`
	DefaultRole     string `json:"default_role" validate:"omitempty,oneof=ADMIN PARTNER VA"`
}

// AddBlueprint appends a task blueprint to a template.
func (h *Handler) AddBlueprint(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.fail(c, err)
	}

	templateID, err := pathUUID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	var req addBlueprintRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	bp, err := h.templates.AddBlueprint(c.UserContext(), actor, templateID, service.AddBlueprintInput{
		Title:           req.Title,
		Description:     req.Description,
		RelativeDueDays: req.RelativeDueDays,
		DefaultRole:     req.DefaultRole,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newBlueprintResponse(bp))
}

type applyTemplateRequest struct {
	TemplateID string `json:"template_id" validate:"required,uuid"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

// ApplyTemplate instantiates a template's blueprints as tasks for the
// client in the path.
func (h *Handler) ApplyTemplate(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.fail(c, err)
	}

	clientID, err := pathUUID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	var req applyTemplateRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	templateID, err := bodyUUID(req.TemplateID, "template_id")
	if err != nil {
		return h.fail(c, err)
	}
	startDate, err := time.Parse(dateFormat, req.StartDate)
	if err != nil {
		return h.fail(c, fiber.NewError(fiber.StatusBadRequest, "invalid start_date"))
	}

	if err := h.templates.ApplyTemplate(c.UserContext(), actor, clientID, templateID, startDate); err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "applied"})
}
