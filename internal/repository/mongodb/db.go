// Package mongodb contains MongoDB implementations of repository interfaces.
package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DB bundles a connected client and the working database.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, uri, dbName string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &DB{Client: client, Database: client.Database(dbName)}, nil
}

// Close disconnects the client.
func (db *DB) Close(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes the data model depends on:
// the compound (french, wolof) pair index and the user name index.
// Safe to run on every startup; existing indexes are left alone.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	_, err := db.Database.Collection("translations").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "french", Value: 1}, {Key: "wolof", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = db.Database.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
