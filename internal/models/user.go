package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role constants
const (
	RoleAdmin   = "ADMIN"
	RolePartner = "PARTNER"
	RoleVA      = "VA"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RolePartner, RoleVA:
		return true
	}
	return false
}

// User is a member of the agency. Authentication is handled upstream; the
// core only needs identity, role, and a notification address.
type User struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Client is a customer of the agency. The core treats it as the owner of
// tasks and deals and nothing more.
type Client struct {
	ID           uuid.UUID      `db:"id"`
	Name         string         `db:"name"`
	ContactEmail sql.NullString `db:"contact_email"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
