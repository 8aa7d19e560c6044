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

// UserStore persists accounts in the users collection.
type UserStore struct{ col *mongo.Collection }

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection(colUsers)}
}

// Create inserts a user after checking that the username is free.  The
// unique index closes the race between check and insert; a duplicate
// key at insert time maps to the same sentinel.
func (s *UserStore) Create(ctx context.Context, u *model.User) (string, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"username": u.Username})
	if err != nil {
		return "", err
	}
	if n > 0 {
		return "", store.ErrUsernameExists
	}
	u.ID = primitive.NewObjectID().Hex()
	if _, err := s.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", store.ErrUsernameExists
		}
		return "", err
	}
	return u.ID, nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return model.User{}, store.ErrNotFound
	}
	return u, err
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := s.col.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return model.User{}, store.ErrNotFound
	}
	return u, err
}

func (s *UserStore) List(ctx context.Context) ([]model.User, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) UpdateProfile(ctx context.Context, id string, p model.Profile) (model.User, error) {
	var u model.User
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"profile": p}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return model.User{}, store.ErrNotFound
	}
	return u, err
}

func (s *UserStore) UpdateRole(ctx context.Context, id, role string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
