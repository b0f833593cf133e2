package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chirper/src/models"
)

type MongoNotificationStore struct {
	coll *mongo.Collection
}

func NewMongoNotificationStore(db *mongo.Database) *MongoNotificationStore {
	return &MongoNotificationStore{coll: db.Collection("notifications")}
}

func (s *MongoNotificationStore) Insert(ctx context.Context, n *models.Notification) error {
	if n.Id.IsZero() {
		n.Id = primitive.NewObjectID()
	}
	n.CreatedAt = time.Now()

	_, err := s.coll.InsertOne(ctx, n)
	return err
}

func (s *MongoNotificationStore) ListTo(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := s.coll.Find(ctx, bson.M{"to": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *MongoNotificationStore) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.coll.UpdateMany(ctx,
		bson.M{"to": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

func (s *MongoNotificationStore) DeleteAllTo(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"to": userID})
	return err
}
