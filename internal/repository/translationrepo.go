// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"
	"time"

	"github.com/alwaly/translation-validator/internal/model"
	"github.com/gofrs/uuid/v5"
)

// TranslationRepository provides access to stored sentence pairs.
// The backend enforces uniqueness of (french, wolof) atomically at insert.
type TranslationRepository interface {
	// Insert stores a new pair, assigning its ID.
	// Returns errs.ErrAlreadyExists on a duplicate (french, wolof) pair.
	Insert(ctx context.Context, t *model.Translation) error

	// List returns every stored pair in store-default order.
	List(ctx context.Context) ([]model.Translation, error)

	// ListByStatus returns pairs in the given review state.
	ListByStatus(ctx context.Context, status model.Status) ([]model.Translation, error)

	// SampleOne returns one uniformly random pair in the given state,
	// or errs.ErrNotFound when none exist.
	SampleOne(ctx context.Context, status model.Status) (*model.Translation, error)

	// Update applies a sparse field merge to a single record and stamps
	// last_updated with now. Returns the post-update record, or
	// errs.ErrNotFound for an unknown id.
	Update(ctx context.Context, id uuid.UUID, upd model.TranslationUpdate, now time.Time) (*model.Translation, error)

	// Count returns the total number of stored pairs.
	Count(ctx context.Context) (int64, error)
}
