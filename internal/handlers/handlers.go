// Package handlers wires the HTTP API to the service layer. Handlers only
// decode, validate, and translate errors; all behavior lives in the
// services.
package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rayroman1160/agencyos/internal/auth"
	"github.com/rayroman1160/agencyos/internal/service"
)

// Handler bundles the services behind the HTTP API.
type Handler struct {
	templates *service.TemplateService
	tasks     *service.TaskService
	clients   *service.ClientService
	deals     *service.DealService
	fields    *service.FieldService
	log       *logrus.Logger
	validate  *validator.Validate
}

// New creates the handler set.
func New(
	templates *service.TemplateService,
	tasks *service.TaskService,
	clients *service.ClientService,
	deals *service.DealService,
	fields *service.FieldService,
	log *logrus.Logger,
) *Handler {
	return &Handler{
		templates: templates,
		tasks:     tasks,
		clients:   clients,
		deals:     deals,
		fields:    fields,
		log:       log,
		validate:  validator.New(),
	}
}

// Register mounts all routes. authMW is the current-user middleware; it
// guards everything under /api/v1.
func (h *Handler) Register(app *fiber.App, authMW fiber.Handler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1", authMW)

	api.Post("/templates", auth.RequireAdmin(), h.CreateTemplate)
	api.Get("/templates", h.ListTemplates)
	api.Get("/templates/:id", h.GetTemplate)
	api.Post("/templates/:id/tasks", auth.RequireAdmin(), h.AddBlueprint)

	api.Post("/clients", h.CreateClient)
	api.Get("/clients", h.ListClients)
	api.Get("/clients/:id", h.GetClient)
	api.Get("/clients/:id/tasks", h.ListClientTasks)
	api.Post("/clients/:id/apply-template", h.ApplyTemplate)

	api.Post("/tasks", h.CreateTask)
	api.Get("/tasks/overdue", h.ListOverdueTasks)
	api.Patch("/tasks/:id/status", h.UpdateTaskStatus)

	api.Get("/stages", h.ListStages)
	api.Get("/stages/:id/deals", h.ListStageDeals)
	api.Post("/deals", h.CreateDeal)
	api.Patch("/deals/:id/stage", h.MoveDealStage)

	api.Post("/custom-fields", auth.RequireAdmin(), h.CreateField)
	api.Get("/custom-fields", h.ListFields)
	api.Delete("/custom-fields/:id", auth.RequireAdmin(), h.DeleteField)
}

// parseBody decodes and validates a JSON request body.
func (h *Handler) parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// fail maps service errors to HTTP responses.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	case errors.Is(err, service.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	default:
		h.log.WithError(err).Error("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

// actor returns the authenticated actor or a 401 error.
func (h *Handler) actor(c *fiber.Ctx) (auth.Actor, error) {
	a, ok := auth.ActorFromFiber(c)
	if !ok {
		return auth.Actor{}, fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	return a, nil
}

// bodyUUID parses a uuid field from a request body.
func bodyUUID(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// pathUUID parses a uuid path parameter.
func pathUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
