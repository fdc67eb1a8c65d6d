package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rayroman1160/agencyos/internal/models"
	"github.com/rayroman1160/agencyos/internal/store"
)

const actorLocal = "actor"

// UserLoader resolves a user id to a user record.
type UserLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Middleware resolves the X-User-ID header set by the authenticating proxy
// into an Actor and attaches it to the request. Requests without a valid
// user are rejected.
func Middleware(users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("X-User-ID")
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user identity"})
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid user identity"})
		}

		user, err := users.GetByID(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unknown user"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to resolve user"})
		}

		actor := Actor{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
		c.Locals(actorLocal, actor)
		c.SetUserContext(WithActor(c.UserContext(), actor))
		return c.Next()
	}
}

// RequireAdmin rejects requests whose actor is not an admin. Must run after
// Middleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromFiber(c)
		if !ok || !actor.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin role required"})
		}
		return c.Next()
	}
}

// ActorFromFiber returns the actor attached by Middleware.
func ActorFromFiber(c *fiber.Ctx) (Actor, bool) {
	a, ok := c.Locals(actorLocal).(Actor)
	return a, ok
}
