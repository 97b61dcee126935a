package repository

import (
	"context"

	"github.com/alwaly/translation-validator/internal/model"
)

// UserRepository provides access to reviewer identities.
type UserRepository interface {
	// Create inserts a new user, assigning its ID.
	// Returns errs.ErrAlreadyExists when the name is taken.
	Create(ctx context.Context, u *model.User) error

	// List returns all users.
	List(ctx context.Context) ([]model.User, error)
}
