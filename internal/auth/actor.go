// Package auth supplies the authenticated actor to the rest of the system.
// Session handling lives upstream; this package only resolves the acting
// user and hands it to services as an explicit value, never through
// package-level state.
package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/rayroman1160/agencyos/internal/models"
)

// Actor is the authenticated user on whose behalf an operation runs.
type Actor struct {
	ID    uuid.UUID
	Email string
	Name  string
	Role  string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

type contextKey struct{}

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

// FromContext extracts the actor, if one was attached.
func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(contextKey{}).(Actor)
	return a, ok
}
