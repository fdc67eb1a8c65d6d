package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rayroman1160/agencyos/internal/models"
)

// UserStore reads agency members. Account management lives upstream; the
// core only loads users for actor resolution and notification addresses.
type UserStore struct {
	db *sqlx.DB
}

// NewUserStore creates a user store over db.
func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// GetByID fetches one user.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// ClientStore reads and writes clients.
type ClientStore struct {
	db *sqlx.DB
}

// NewClientStore creates a client store over db.
func NewClientStore(db *sqlx.DB) *ClientStore {
	return &ClientStore{db: db}
}

// Create inserts a client.
func (s *ClientStore) Create(ctx context.Context, c *models.Client) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, contact_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.ContactEmail, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID fetches one client.
func (s *ClientStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var c models.Client
	err := s.db.GetContext(ctx, &c, `SELECT * FROM clients WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// List returns all clients by name.
func (s *ClientStore) List(ctx context.Context) ([]*models.Client, error) {
	var clients []*models.Client
	err := s.db.SelectContext(ctx, &clients, `SELECT * FROM clients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}
