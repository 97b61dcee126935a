// Package service implements the review workflow over repository interfaces.
package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/alwaly/translation-validator/internal/errs"
	"github.com/alwaly/translation-validator/internal/importer"
	"github.com/alwaly/translation-validator/internal/model"
	"github.com/alwaly/translation-validator/internal/repository"
)

// TranslationService defines operations over stored sentence pairs.
type TranslationService interface {
	// List returns every stored pair.
	List(ctx context.Context) ([]model.Translation, error)
	// ListByStatus returns pairs in the given review state.
	ListByStatus(ctx context.Context, status model.Status) ([]model.Translation, error)
	// PickRandomPending returns one random pending pair, or nil when none exist.
	PickRandomPending(ctx context.Context) (*model.Translation, error)
	// Update applies a sparse field merge and returns the post-update record.
	Update(ctx context.Context, id uuid.UUID, upd model.TranslationUpdate) (*model.Translation, error)
	// Import merges a pipe-delimited payload, returning the number of new pairs.
	Import(ctx context.Context, raw string) (int, error)
	// ExportValidated renders all validated pairs as CSV.
	ExportValidated(ctx context.Context) ([]byte, error)
	// Count returns the total number of pairs and whether the store is empty.
	Count(ctx context.Context) (int64, bool, error)
}

type TranslationServiceImpl struct {
	repo repository.TranslationRepository
	now  func() time.Time
}

// NewTranslationService constructs a TranslationService.
func NewTranslationService(repo repository.TranslationRepository) *TranslationServiceImpl {
	return &TranslationServiceImpl{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// List returns every stored pair in store-default order.
func (s *TranslationServiceImpl) List(ctx context.Context) ([]model.Translation, error) {
	return s.repo.List(ctx)
}

// ListByStatus returns pairs in the given review state.
func (s *TranslationServiceImpl) ListByStatus(ctx context.Context, status model.Status) ([]model.Translation, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("status %q: %w", status, errs.ErrInvalidArgument)
	}
	return s.repo.ListByStatus(ctx, status)
}

// PickRandomPending samples one pending pair. An empty pending set is not
// an error; it maps to a nil record.
func (s *TranslationServiceImpl) PickRandomPending(ctx context.Context) (*model.Translation, error) {
	t, err := s.repo.SampleOne(ctx, model.StatusPending)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Update applies a sparse merge. An empty update is rejected rather than
// silently accepted. The repository stamps last_updated with the current
// time on every successful update; callers cannot supply it. No transition
// rules are enforced here: reviewers decide when to bump the correction
// counter or set the reviewer fields.
func (s *TranslationServiceImpl) Update(
	ctx context.Context, id uuid.UUID, upd model.TranslationUpdate,
) (*model.Translation, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("empty id: %w", errs.ErrInvalidArgument)
	}
	if upd.IsEmpty() {
		return nil, fmt.Errorf("no update data provided: %w", errs.ErrInvalidArgument)
	}
	return s.repo.Update(ctx, id, upd, s.now())
}

// Import parses the payload and inserts each candidate as a pending pair.
// Duplicate pairs are skipped without aborting the rest, which makes
// re-importing the same payload a no-op. Other store failures abort and
// propagate with the count inserted so far.
func (s *TranslationServiceImpl) Import(ctx context.Context, raw string) (int, error) {
	now := s.now()
	inserted := 0
	for _, c := range importer.Parse(raw) {
		t := &model.Translation{
			French:        c.French,
			Wolof:         c.Wolof,
			Status:        model.StatusPending,
			OriginalWolof: c.Wolof,
			LastUpdated:   now,
		}
		if err := s.repo.Insert(ctx, t); err != nil {
			if errors.Is(err, errs.ErrAlreadyExists) {
				continue
			}
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// exportHeader is the fixed CSV column order of the validated export.
var exportHeader = []string{"Wolof", "French", "Status", "ValidatedBy", "CorrectedBy", "LastUpdated"}

// ExportValidated renders all validated pairs as CSV. Unset reviewer fields
// become empty cells, not a null literal.
func (s *TranslationServiceImpl) ExportValidated(ctx context.Context) ([]byte, error) {
	list, err := s.repo.ListByStatus(ctx, model.StatusValidated)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, t := range list {
		row := []string{
			t.Wolof,
			t.French,
			string(t.Status),
			strOrEmpty(t.ValidatedBy),
			strOrEmpty(t.CorrectedBy),
			t.LastUpdated.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Count reports the stored pair total.
func (s *TranslationServiceImpl) Count(ctx context.Context) (int64, bool, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, false, err
	}
	return n, n == 0, nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
