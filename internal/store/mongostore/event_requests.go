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

// EventRequestStore persists event proposals awaiting admin review.
type EventRequestStore struct{ col *mongo.Collection }

func NewEventRequestStore(db *mongo.Database) *EventRequestStore {
	return &EventRequestStore{col: db.Collection(colEventRequests)}
}

func (s *EventRequestStore) Insert(ctx context.Context, r *model.EventRequest) (string, error) {
	r.ID = primitive.NewObjectID().Hex()
	if _, err := s.col.InsertOne(ctx, r); err != nil {
		return "", err
	}
	return r.ID, nil
}

func (s *EventRequestStore) GetByID(ctx context.Context, id string) (model.EventRequest, error) {
	var r model.EventRequest
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return model.EventRequest{}, store.ErrNotFound
	}
	return r, err
}

func (s *EventRequestStore) ListByRequester(ctx context.Context, userID string) ([]model.EventRequest, error) {
	return s.find(ctx, bson.M{"requestedBy": userID})
}

func (s *EventRequestStore) List(ctx context.Context) ([]model.EventRequest, error) {
	return s.find(ctx, bson.M{})
}

func (s *EventRequestStore) find(ctx context.Context, filter bson.M) ([]model.EventRequest, error) {
	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	reqs := []model.EventRequest{}
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// UpdateStatus decides a Pending request.  Decisions are one-shot: the
// Pending precondition lives in the filter.
func (s *EventRequestStore) UpdateStatus(ctx context.Context, id, status string) (model.EventRequest, error) {
	var r model.EventRequest
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": model.RequestPending},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&r)
	if err == mongo.ErrNoDocuments {
		n, cErr := s.col.CountDocuments(ctx, bson.M{"_id": id})
		if cErr != nil {
			return model.EventRequest{}, cErr
		}
		if n == 0 {
			return model.EventRequest{}, store.ErrNotFound
		}
		return model.EventRequest{}, store.ErrAlreadyDecided
	}
	return r, err
}
