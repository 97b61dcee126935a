package service

import (
	"context"
	"errors"

	"github.com/alwaly/translation-validator/internal/errs"
	"github.com/alwaly/translation-validator/internal/model"
	"github.com/alwaly/translation-validator/internal/repository"
)

// bootstrapUsers is the fixed reviewer set seeded at startup.
var bootstrapUsers = []string{"Alwaly", "Serge", "Matar"}

// UserService exposes the reviewer directory.
type UserService interface {
	// List returns all reviewers.
	List(ctx context.Context) ([]model.User, error)
	// Seed inserts the bootstrap reviewers, skipping names already present.
	Seed(ctx context.Context) error
}

type UserServiceImpl struct {
	repo repository.UserRepository
}

// NewUserService constructs a UserService.
func NewUserService(repo repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{repo: repo}
}

// List returns all reviewers.
func (s *UserServiceImpl) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// Seed inserts the bootstrap reviewers. Safe to run on every start: a name
// that already exists is left untouched.
func (s *UserServiceImpl) Seed(ctx context.Context) error {
	for _, name := range bootstrapUsers {
		u := &model.User{Name: name}
		if err := s.repo.Create(ctx, u); err != nil {
			if errors.Is(err, errs.ErrAlreadyExists) {
				continue
			}
			return err
		}
	}
	return nil
}
