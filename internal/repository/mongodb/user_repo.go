package mongodb

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/alwaly/translation-validator/internal/errs"
	"github.com/alwaly/translation-validator/internal/model"
)

type userDoc struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
}

// UserRepo implements UserRepository using MongoDB.
type UserRepo struct{ coll *mongo.Collection }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{coll: db.Database.Collection("users")}
}

// Create inserts a new user document. The unique name index makes repeated
// seeding a no-op surfaced as ErrAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, userDoc{ID: id.String(), Name: u.Name}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.ErrAlreadyExists
		}
		return err
	}
	u.ID = id
	return nil
}

// List returns all users.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []model.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		id, err := uuid.FromString(doc.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, model.User{ID: id, Name: doc.Name})
	}
	return out, cur.Err()
}
