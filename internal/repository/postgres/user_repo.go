package postgres

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/alwaly/translation-validator/internal/errs"
	"github.com/alwaly/translation-validator/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row. The unique index on name makes repeated
// seeding a no-op surfaced as ErrAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	const q = `INSERT INTO users (id, name) VALUES ($1, $2)`
	_, err = r.db.Pool.Exec(ctx, q, id, u.Name)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// List returns all users.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	const q = `SELECT id, name FROM users`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
