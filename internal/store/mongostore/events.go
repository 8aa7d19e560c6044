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

// EventStore persists events in the events collection.
type EventStore struct{ col *mongo.Collection }

func NewEventStore(db *mongo.Database) *EventStore {
	return &EventStore{col: db.Collection(colEvents)}
}

func (s *EventStore) Insert(ctx context.Context, e *model.Event) (string, error) {
	e.ID = primitive.NewObjectID().Hex()
	if _, err := s.col.InsertOne(ctx, e); err != nil {
		return "", err
	}
	return e.ID, nil
}

func (s *EventStore) GetByID(ctx context.Context, id string) (model.Event, error) {
	var e model.Event
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return model.Event{}, store.ErrNotFound
	}
	return e, err
}

// List returns all events, or only those with the given status when
// the filter is non-empty.
func (s *EventStore) List(ctx context.Context, status string) ([]model.Event, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	events := []model.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateStatus transitions a pending event.  The pending precondition
// sits in the filter so a concurrent or repeated decision cannot win
// twice; a matched-but-not-pending document maps to ErrAlreadyDecided.
func (s *EventStore) UpdateStatus(ctx context.Context, id, status string) (model.Event, error) {
	var e model.Event
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": model.EventPending},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&e)
	if err == mongo.ErrNoDocuments {
		n, cErr := s.col.CountDocuments(ctx, bson.M{"_id": id})
		if cErr != nil {
			return model.Event{}, cErr
		}
		if n == 0 {
			return model.Event{}, store.ErrNotFound
		}
		return model.Event{}, store.ErrAlreadyDecided
	}
	return e, err
}
