package postgres

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/alwaly/translation-validator/internal/errs"
	"github.com/alwaly/translation-validator/internal/model"
)

// translationCols is the scan order shared by every SELECT in this repo.
const translationCols = "id, french, wolof, status, validated_by, corrected_by, correction_count, original_wolof, last_updated"

// TranslationRepo implements TranslationRepository using PostgreSQL.
type TranslationRepo struct{ db *DB }

// NewTranslationRepo constructs a translation repository.
func NewTranslationRepo(db *DB) *TranslationRepo { return &TranslationRepo{db: db} }

// Insert stores a new pair. The unique index on (french, wolof) makes
// duplicate detection atomic; such failures surface as ErrAlreadyExists.
func (r *TranslationRepo) Insert(ctx context.Context, t *model.Translation) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	const q = `
INSERT INTO translations (id, french, wolof, status, validated_by, corrected_by, correction_count, original_wolof, last_updated)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`
	_, err = r.db.Pool.Exec(ctx, q,
		id, t.French, t.Wolof, t.Status, t.ValidatedBy, t.CorrectedBy,
		t.CorrectionCount, t.OriginalWolof, t.LastUpdated)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

// List returns all stored pairs.
func (r *TranslationRepo) List(ctx context.Context) ([]model.Translation, error) {
	const q = `SELECT ` + translationCols + ` FROM translations`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTranslations(rows)
}

// ListByStatus returns pairs in the given review state.
func (r *TranslationRepo) ListByStatus(ctx context.Context, status model.Status) ([]model.Translation, error) {
	const q = `SELECT ` + translationCols + ` FROM translations WHERE status=$1`
	rows, err := r.db.Pool.Query(ctx, q, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTranslations(rows)
}

// SampleOne returns one uniformly random pair in the given state.
func (r *TranslationRepo) SampleOne(ctx context.Context, status model.Status) (*model.Translation, error) {
	const q = `SELECT ` + translationCols + ` FROM translations WHERE status=$1 ORDER BY random() LIMIT 1`
	row := r.db.Pool.QueryRow(ctx, q, status)
	t, err := scanTranslation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Update applies a sparse merge in a single statement and returns the
// post-update row. last_updated is always set to now, never caller data.
func (r *TranslationRepo) Update(
	ctx context.Context, id uuid.UUID, upd model.TranslationUpdate, now time.Time,
) (*model.Translation, error) {
	b := sq.Update("translations").PlaceholderFormat(sq.Dollar)
	if upd.French != nil {
		b = b.Set("french", *upd.French)
	}
	if upd.Wolof != nil {
		b = b.Set("wolof", *upd.Wolof)
	}
	if upd.Status != nil {
		b = b.Set("status", *upd.Status)
	}
	if upd.ValidatedBy != nil {
		b = b.Set("validated_by", *upd.ValidatedBy)
	}
	if upd.CorrectedBy != nil {
		b = b.Set("corrected_by", *upd.CorrectedBy)
	}
	if upd.CorrectionCount != nil {
		b = b.Set("correction_count", *upd.CorrectionCount)
	}
	if upd.OriginalWolof != nil {
		b = b.Set("original_wolof", *upd.OriginalWolof)
	}
	b = b.Set("last_updated", now).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + translationCols)

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	row := r.db.Pool.QueryRow(ctx, sqlStr, args...)
	t, err := scanTranslation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errs.ErrAlreadyExists
		}
		return nil, err
	}
	return t, nil
}

// Count returns the total number of stored pairs.
func (r *TranslationRepo) Count(ctx context.Context) (int64, error) {
	const q = `SELECT COUNT(*) FROM translations`
	var n int64
	if err := r.db.Pool.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanTranslation(row pgx.Row) (*model.Translation, error) {
	var t model.Translation
	err := row.Scan(&t.ID, &t.French, &t.Wolof, &t.Status, &t.ValidatedBy,
		&t.CorrectedBy, &t.CorrectionCount, &t.OriginalWolof, &t.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTranslations(rows pgx.Rows) ([]model.Translation, error) {
	var out []model.Translation
	for rows.Next() {
		var t model.Translation
		if err := rows.Scan(&t.ID, &t.French, &t.Wolof, &t.Status, &t.ValidatedBy,
			&t.CorrectedBy, &t.CorrectionCount, &t.OriginalWolof, &t.LastUpdated); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
