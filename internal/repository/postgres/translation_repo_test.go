package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/alwaly/translation-validator/internal/errs"
	"github.com/alwaly/translation-validator/internal/model"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

var translationColNames = []string{
	"id", "french", "wolof", "status", "validated_by", "corrected_by",
	"correction_count", "original_wolof", "last_updated",
}

func TestTranslationRepo_Insert_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTranslationRepo(db)

	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO translations \(id, french, wolof, status, validated_by, corrected_by, correction_count, original_wolof, last_updated\)`).
		WithArgs(pgxmock.AnyArg(), "bonjour", "biir", model.StatusPending, (*string)(nil), (*string)(nil), 0, "biir", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tr := &model.Translation{
		French: "bonjour", Wolof: "biir", Status: model.StatusPending,
		OriginalWolof: "biir", LastUpdated: now,
	}
	require.NoError(t, r.Insert(ctx, tr))
	require.NotEqual(t, uuid.Nil, tr.ID)
}

func TestTranslationRepo_Insert_DuplicatePair(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTranslationRepo(db)

	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO translations`).
		WithArgs(pgxmock.AnyArg(), "bonjour", "biir", model.StatusPending, (*string)(nil), (*string)(nil), 0, "biir", now).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	tr := &model.Translation{
		French: "bonjour", Wolof: "biir", Status: model.StatusPending,
		OriginalWolof: "biir", LastUpdated: now,
	}
	require.ErrorIs(t, r.Insert(ctx, tr), errs.ErrAlreadyExists)
}

func TestTranslationRepo_List(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTranslationRepo(db)

	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	ts := time.Now().UTC()
	by := "Serge"

	rows := pgxmock.NewRows(translationColNames).
		AddRow(id, "bonjour", "biir", model.StatusValidated, &by, (*string)(nil), 0, "biir", ts)
	mock.ExpectQuery(`SELECT id, french, wolof, status, validated_by, corrected_by, correction_count, original_wolof, last_updated FROM translations`).
		WillReturnRows(rows)

	out, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "bonjour", out[0].French)
	require.Equal(t, &by, out[0].ValidatedBy)
	require.Nil(t, out[0].CorrectedBy)
}

func TestTranslationRepo_ListByStatus(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTranslationRepo(db)

	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	ts := time.Now().UTC()

	rows := pgxmock.NewRows(translationColNames).
		AddRow(id, "merci", "jërëjëf", model.StatusPending, (*string)(nil), (*string)(nil), 0, "jërëjëf", ts)
	mock.ExpectQuery(`SELECT .+ FROM translations WHERE status=\$1`).
		WithArgs(model.StatusPending).
		WillReturnRows(rows)

	out, err := r.ListByStatus(ctx, model.StatusPending)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, model.StatusPending, out[0].Status)
}

func TestTranslationRepo_SampleOne_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTranslationRepo(db)

	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	ts := time.Now().UTC()

	rows := pgxmock.NewRows(translationColNames).
		AddRow(id, "bonjour", "biir", model.StatusPending, (*string)(nil), (*string)(nil), 0, "biir", ts)
	mock.ExpectQuery(`SELECT .+ FROM translations WHERE status=\$1 ORDER BY random\(\) LIMIT 1`).
		WithArgs(model.StatusPending).
		WillReturnRows(rows)

	got, err := r.SampleOne(ctx, model.StatusPending)
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
}

func TestTranslationRepo_SampleOne_Empty(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTranslationRepo(db)

	mock.ExpectQuery(`SELECT .+ FROM translations WHERE status=\$1 ORDER BY random\(\) LIMIT 1`).
		WithArgs(model.StatusPending).
		WillReturnError(pgx.ErrNoRows)

	_, err := r.SampleOne(context.Background(), model.StatusPending)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTranslationRepo_Update_SetsOnlyProvidedFieldsAndTimestamp(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTranslationRepo(db)

	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	now := time.Now().UTC()
	by := "Alwaly"
	status := model.StatusValidated

	rows := pgxmock.NewRows(translationColNames).
		AddRow(id, "bonjour", "biir", status, &by, (*string)(nil), 0, "biir", now)
	mock.ExpectQuery(`UPDATE translations SET status = \$1, validated_by = \$2, last_updated = \$3 WHERE id = \$4 RETURNING id, french, wolof, status, validated_by, corrected_by, correction_count, original_wolof, last_updated`).
		WithArgs(status, by, now, id.String()).
		WillReturnRows(rows)

	got, err := r.Update(ctx, id, model.TranslationUpdate{Status: &status, ValidatedBy: &by}, now)
	require.NoError(t, err)
	require.Equal(t, status, got.Status)
	require.Equal(t, now, got.LastUpdated)
}

func TestTranslationRepo_Update_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTranslationRepo(db)

	id := uuid.Must(uuid.NewV4())
	now := time.Now().UTC()
	wolof := "biir bi"

	mock.ExpectQuery(`UPDATE translations SET wolof = \$1, last_updated = \$2 WHERE id = \$3 RETURNING`).
		WithArgs(wolof, now, id.String()).
		WillReturnError(pgx.ErrNoRows)

	_, err := r.Update(context.Background(), id, model.TranslationUpdate{Wolof: &wolof}, now)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTranslationRepo_Update_DuplicatePair(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTranslationRepo(db)

	id := uuid.Must(uuid.NewV4())
	now := time.Now().UTC()
	wolof := "biir"

	mock.ExpectQuery(`UPDATE translations SET wolof = \$1, last_updated = \$2 WHERE id = \$3 RETURNING`).
		WithArgs(wolof, now, id.String()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := r.Update(context.Background(), id, model.TranslationUpdate{Wolof: &wolof}, now)
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestTranslationRepo_Count(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTranslationRepo(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM translations`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	n, err := r.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
}

func TestTranslationRepo_List_QueryErr(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTranslationRepo(db)

	mock.ExpectQuery(`SELECT .+ FROM translations`).
		WillReturnError(errors.New("q-fail"))

	_, err := r.List(context.Background())
	require.Error(t, err)
}

func TestTranslationRepo_List_RowErr(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTranslationRepo(db)

	rows := pgxmock.NewRows(translationColNames).RowError(0, errors.New("row0"))
	mock.ExpectQuery(`SELECT .+ FROM translations`).WillReturnRows(rows)

	_, err := r.List(context.Background())
	require.Error(t, err)
}
