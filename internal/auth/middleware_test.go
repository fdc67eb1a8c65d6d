package auth

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayroman1160/agencyos/internal/models"
	"github.com/rayroman1160/agencyos/internal/store"
)

type fakeUserLoader struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUserLoader) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, store.ErrNotFound)
	}
	return u, nil
}

func newTestApp(loader *fakeUserLoader) *fiber.App {
	app := fiber.New()
	app.Use(Middleware(loader))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		actor, ok := ActorFromFiber(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"email": actor.Email, "admin": actor.IsAdmin()})
	})
	app.Get("/admin", RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestMiddleware(t *testing.T) {
	admin := &models.User{ID: uuid.New(), Email: "boss@agency.test", Role: models.RoleAdmin}
	va := &models.User{ID: uuid.New(), Email: "va@agency.test", Role: models.RoleVA}
	app := newTestApp(&fakeUserLoader{users: map[uuid.UUID]*models.User{admin.ID: admin, va.ID: va}})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed id is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("X-User-ID", "not-a-uuid")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown user is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("X-User-ID", uuid.NewString())
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("known user reaches the handler", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("X-User-ID", va.ID.String())
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("admin gate blocks non-admins", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("X-User-ID", va.ID.String())
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		req = httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("X-User-ID", admin.ID.String())
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestActorContext(t *testing.T) {
	actor := Actor{ID: uuid.New(), Email: "boss@agency.test", Role: models.RoleAdmin}
	ctx := WithActor(context.Background(), actor)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, actor, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}
