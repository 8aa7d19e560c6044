// Package mongostore implements the store interfaces on top of a
// MongoDB database.  Documents keep their ObjectID-hex id as a plain
// string in _id so identifiers stay opaque strings for every caller,
// the same shape the memory backend produces.
package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smarotkar/trek-booking/internal/store"
)

// Collection names used by this backend.
const (
	colUsers         = "users"
	colGuides        = "guides"
	colGuideRequests = "guide_requests"
	colEvents        = "events"
	colEventRequests = "event_requests"
	colAbout         = "about"
)

// Connect dials the document store and verifies the connection with a
// short ping.  A unique index on users.username backs the uniqueness
// invariant; index creation failure is not fatal since Create checks
// for duplicates before inserting anyway.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(dbName)
	_, _ = db.Collection(colUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return db, nil
}

// NewStore assembles the durable-backend store aggregate.
func NewStore(db *mongo.Database) *store.Store {
	return store.New(store.ModeMongo,
		NewUserStore(db),
		NewGuideStore(db),
		NewGuideRequestStore(db),
		NewEventStore(db),
		NewEventRequestStore(db),
		NewAboutStore(db),
	)
}
