package repository

import (
	"context"

	"docvault/internal/model"
)

// UserRepository defines data access for principals.
type UserRepository interface {
	// Create stores a new user. Returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// FindByEmail matches the email exactly (case-sensitive) or returns ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID returns a user by ID or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.User, error)
}
