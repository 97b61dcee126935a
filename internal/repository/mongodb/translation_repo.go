package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alwaly/translation-validator/internal/errs"
	"github.com/alwaly/translation-validator/internal/model"
)

// translationDoc is the wire form of a Translation in the translations
// collection. IDs are UUID strings so both backends share one ID space.
type translationDoc struct {
	ID              string       `bson:"_id"`
	French          string       `bson:"french"`
	Wolof           string       `bson:"wolof"`
	Status          model.Status `bson:"status"`
	ValidatedBy     *string      `bson:"validatedBy"`
	CorrectedBy     *string      `bson:"correctedBy"`
	CorrectionCount int          `bson:"hasBeenCorrected"`
	OriginalWolof   string       `bson:"originalWolof"`
	LastUpdated     time.Time    `bson:"lastUpdated"`
}

func (d translationDoc) toModel() (*model.Translation, error) {
	id, err := uuid.FromString(d.ID)
	if err != nil {
		return nil, err
	}
	return &model.Translation{
		ID:              id,
		French:          d.French,
		Wolof:           d.Wolof,
		Status:          d.Status,
		ValidatedBy:     d.ValidatedBy,
		CorrectedBy:     d.CorrectedBy,
		CorrectionCount: d.CorrectionCount,
		OriginalWolof:   d.OriginalWolof,
		LastUpdated:     d.LastUpdated,
	}, nil
}

// TranslationRepo implements TranslationRepository using MongoDB.
type TranslationRepo struct{ coll *mongo.Collection }

// NewTranslationRepo constructs a translation repository.
func NewTranslationRepo(db *DB) *TranslationRepo {
	return &TranslationRepo{coll: db.Database.Collection("translations")}
}

// Insert stores a new pair. The compound unique index on (french, wolof)
// rejects duplicates atomically; those surface as ErrAlreadyExists.
func (r *TranslationRepo) Insert(ctx context.Context, t *model.Translation) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	doc := translationDoc{
		ID:              id.String(),
		French:          t.French,
		Wolof:           t.Wolof,
		Status:          t.Status,
		ValidatedBy:     t.ValidatedBy,
		CorrectedBy:     t.CorrectedBy,
		CorrectionCount: t.CorrectionCount,
		OriginalWolof:   t.OriginalWolof,
		LastUpdated:     t.LastUpdated,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.ErrAlreadyExists
		}
		return err
	}
	t.ID = id
	return nil
}

// List returns all stored pairs.
func (r *TranslationRepo) List(ctx context.Context) ([]model.Translation, error) {
	return r.find(ctx, bson.D{})
}

// ListByStatus returns pairs in the given review state.
func (r *TranslationRepo) ListByStatus(ctx context.Context, status model.Status) ([]model.Translation, error) {
	return r.find(ctx, bson.D{{Key: "status", Value: status}})
}

// SampleOne returns one uniformly random pair in the given state using a
// $match + $sample pipeline, so the filtered set is never loaded in full.
func (r *TranslationRepo) SampleOne(ctx context.Context, status model.Status) (*model.Translation, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "status", Value: status}}}},
		bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	var doc translationDoc
	if err := cur.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.toModel()
}

// Update applies a sparse $set merge and returns the post-update document.
// last_updated is always stamped with now, never caller data.
func (r *TranslationRepo) Update(
	ctx context.Context, id uuid.UUID, upd model.TranslationUpdate, now time.Time,
) (*model.Translation, error) {
	set := bson.D{{Key: "lastUpdated", Value: now}}
	if upd.French != nil {
		set = append(set, bson.E{Key: "french", Value: *upd.French})
	}
	if upd.Wolof != nil {
		set = append(set, bson.E{Key: "wolof", Value: *upd.Wolof})
	}
	if upd.Status != nil {
		set = append(set, bson.E{Key: "status", Value: *upd.Status})
	}
	if upd.ValidatedBy != nil {
		set = append(set, bson.E{Key: "validatedBy", Value: *upd.ValidatedBy})
	}
	if upd.CorrectedBy != nil {
		set = append(set, bson.E{Key: "correctedBy", Value: *upd.CorrectedBy})
	}
	if upd.CorrectionCount != nil {
		set = append(set, bson.E{Key: "hasBeenCorrected", Value: *upd.CorrectionCount})
	}
	if upd.OriginalWolof != nil {
		set = append(set, bson.E{Key: "originalWolof", Value: *upd.OriginalWolof})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id.String()}},
		bson.D{{Key: "$set", Value: set}},
		opts)

	var doc translationDoc
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, errs.ErrAlreadyExists
		}
		return nil, err
	}
	return doc.toModel()
}

// Count returns the total number of stored pairs.
func (r *TranslationRepo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}

func (r *TranslationRepo) find(ctx context.Context, filter bson.D) ([]model.Translation, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []model.Translation
	for cur.Next(ctx) {
		var doc translationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		t, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, cur.Err()
}
