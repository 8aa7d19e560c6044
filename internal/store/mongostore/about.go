package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smarotkar/trek-booking/internal/model"
)

// AboutStore persists the singleton about/contact record.
type AboutStore struct{ col *mongo.Collection }

func NewAboutStore(db *mongo.Database) *AboutStore {
	return &AboutStore{col: db.Collection(colAbout)}
}

// Get returns the record, seeding it with the default content on first
// read.
func (s *AboutStore) Get(ctx context.Context) (model.About, error) {
	var a model.About
	err := s.col.FindOne(ctx, bson.M{}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return s.Put(ctx, model.DefaultAboutContent)
	}
	return a, err
}

// Put replaces the content, creating the record if it does not exist.
func (s *AboutStore) Put(ctx context.Context, content string) (model.About, error) {
	a := model.About{
		ID:        primitive.NewObjectID().Hex(),
		Content:   content,
		UpdatedAt: time.Now().UTC(),
	}
	var out model.About
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{},
		bson.M{
			"$set":         bson.M{"content": a.Content, "updatedAt": a.UpdatedAt},
			"$setOnInsert": bson.M{"_id": a.ID},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return model.About{}, err
	}
	return out, nil
}
