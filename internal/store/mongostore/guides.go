package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smarotkar/trek-booking/internal/model"
	"github.com/smarotkar/trek-booking/internal/store"
)

// GuideStore persists the admin-curated guide roster.
type GuideStore struct{ col *mongo.Collection }

func NewGuideStore(db *mongo.Database) *GuideStore {
	return &GuideStore{col: db.Collection(colGuides)}
}

func (s *GuideStore) Insert(ctx context.Context, g *model.Guide) (string, error) {
	g.ID = primitive.NewObjectID().Hex()
	if _, err := s.col.InsertOne(ctx, g); err != nil {
		return "", err
	}
	return g.ID, nil
}

func (s *GuideStore) List(ctx context.Context) ([]model.Guide, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	guides := []model.Guide{}
	if err := cur.All(ctx, &guides); err != nil {
		return nil, err
	}
	return guides, nil
}

// Update replaces the editable fields of a roster entry.
func (s *GuideStore) Update(ctx context.Context, id string, g model.Guide) (model.Guide, error) {
	var out model.Guide
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":       g.Name,
			"email":      g.Email,
			"phone":      g.Phone,
			"experience": g.Experience,
			"rating":     g.Rating,
			"status":     g.Status,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return model.Guide{}, store.ErrNotFound
	}
	return out, err
}

func (s *GuideStore) Delete(ctx context.Context, id string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
