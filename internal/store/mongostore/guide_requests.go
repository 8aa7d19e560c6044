package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smarotkar/trek-booking/internal/model"
	"github.com/smarotkar/trek-booking/internal/store"
)

// GuideRequestStore persists guide-role petitions.
type GuideRequestStore struct{ col *mongo.Collection }

func NewGuideRequestStore(db *mongo.Database) *GuideRequestStore {
	return &GuideRequestStore{col: db.Collection(colGuideRequests)}
}

// Create inserts a pending request unless the user already has one
// pending.  Resolved requests do not block a new petition.
func (s *GuideRequestStore) Create(ctx context.Context, r *model.GuideRequest) (string, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"user": r.User, "status": model.GuideReqPending})
	if err != nil {
		return "", err
	}
	if n > 0 {
		return "", store.ErrPendingExists
	}
	r.ID = primitive.NewObjectID().Hex()
	if _, err := s.col.InsertOne(ctx, r); err != nil {
		return "", err
	}
	return r.ID, nil
}

func (s *GuideRequestStore) List(ctx context.Context) ([]model.GuideRequest, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	reqs := []model.GuideRequest{}
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// Decide moves a pending request to its terminal state and stamps
// decisionAt.  The pending precondition makes the decision one-shot.
func (s *GuideRequestStore) Decide(ctx context.Context, id, status string, at time.Time) (model.GuideRequest, error) {
	var r model.GuideRequest
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": model.GuideReqPending},
		bson.M{"$set": bson.M{"status": status, "decisionAt": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&r)
	if err == mongo.ErrNoDocuments {
		n, cErr := s.col.CountDocuments(ctx, bson.M{"_id": id})
		if cErr != nil {
			return model.GuideRequest{}, cErr
		}
		if n == 0 {
			return model.GuideRequest{}, store.ErrNotFound
		}
		return model.GuideRequest{}, store.ErrAlreadyDecided
	}
	return r, err
}
