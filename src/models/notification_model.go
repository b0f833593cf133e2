package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	Id        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	From      primitive.ObjectID `json:"from" bson:"from"`
	To        primitive.ObjectID `json:"to" bson:"to"`
	Type      NotificationType   `json:"type" bson:"type"`
	Read      bool               `json:"read" bson:"read"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

type NotificationType string

const (
	NotificationTypeLike   NotificationType = "like"
	NotificationTypeFollow NotificationType = "follow"
)

type NotificationDto struct {
	Id        primitive.ObjectID `json:"_id"`
	From      UserDto            `json:"from"`
	Type      NotificationType   `json:"type"`
	Read      bool               `json:"read"`
	CreatedAt time.Time          `json:"createdAt"`
}
