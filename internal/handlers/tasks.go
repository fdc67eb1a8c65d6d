package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rayroman1160/agencyos/internal/service"
)

type createTaskRequest struct {
	Title       string `json:"title" validate:"required,min=1"`
	Description string `json:"description"`
	ClientID    string `json:"client_id" validate:"required,uuid"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02"`
	AssigneeID  string `json:"assignee_id" validate:"omitempty,uuid"`
}

// CreateTask creates one ad hoc task.
func (h *Handler) CreateTask(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req createTaskRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	clientID, err := bodyUUID(req.ClientID, "client_id")
	if err != nil {
		return h.fail(c, err)
	}
	dueDate, err := time.Parse(dateFormat, req.DueDate)
	if err != nil {
		return h.fail(c, fiber.NewError(fiber.StatusBadRequest, "invalid due_date"))
	}

	in := service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ClientID:    clientID,
		DueDate:     dueDate,
	}
	if req.AssigneeID != "" {
		assigneeID, err := bodyUUID(req.AssigneeID, "assignee_id")
		if err != nil {
			return h.fail(c, err)
		}
		in.AssigneeID = &assigneeID
	}

	task, err := h.tasks.CreateTask(c.UserContext(), actor, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newTaskResponse(task))
}

type updateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
}

// UpdateTaskStatus moves a task to a new status.
func (h *Handler) UpdateTaskStatus(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.fail(c, err)
	}

	taskID, err := pathUUID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	var req updateTaskStatusRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	if err := h.tasks.UpdateStatus(c.UserContext(), actor, taskID, req.Status); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

// ListOverdueTasks lists open assigned tasks past their due date.
func (h *Handler) ListOverdueTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.ListOverdue(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"tasks": newTaskResponses(tasks)})
}

// ListClientTasks lists a client's tasks.
func (h *Handler) ListClientTasks(c *fiber.Ctx) error {
	clientID, err := pathUUID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	tasks, err := h.tasks.ListByClient(c.UserContext(), clientID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"tasks": newTaskResponses(tasks)})
}

type createClientRequest struct {
	Name         string `json:"name" validate:"required,min=1"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

// CreateClient creates a client record.
func (h *Handler) CreateClient(c *fiber.Ctx) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req createClientRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	client, err := h.clients.CreateClient(c.UserContext(), actor, req.Name, req.ContactEmail)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newClientResponse(client))
}

// GetClient returns one client.
func (h *Handler) GetClient(c *fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	client, err := h.clients.GetClient(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(newClientResponse(client))
}

// ListClients lists all clients.
func (h *Handler) ListClients(c *fiber.Ctx) error {
	clients, err := h.clients.ListClients(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}

	out := make([]clientResponse, len(clients))
	for i, cl := range clients {
		out[i] = newClientResponse(cl)
	}
	return c.JSON(fiber.Map{"clients": out})
}
