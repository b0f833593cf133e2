package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"chirper/src/models"
	"chirper/src/store"
)

// NotificationService derives notification records from follow and like
// transitions and serves the recipient-facing read/clear operations.
type NotificationService struct {
	notifications store.NotificationStore
	users         store.UserStore
	log           *logrus.Logger
}

func NewNotificationService(notifications store.NotificationStore, users store.UserStore, log *logrus.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, users: users, log: log}
}

// Record stores one notification for a qualifying transition. It is invoked
// by the follow and like paths only, never by their inverses; callers suppress
// self-notification before calling. Failures are logged and swallowed so they
// never fail the primary state change.
func (s *NotificationService) Record(ctx context.Context, from, to primitive.ObjectID, notificationType models.NotificationType) {
	err := s.notifications.Insert(ctx, &models.Notification{
		From: from,
		To:   to,
		Type: notificationType,
	})
	if err != nil {
		s.log.WithError(err).Error("failed to record notification")
	}
}

// List returns the user's notifications newest-first with sender identity
// resolved, then marks every unread one as read. A second immediate call
// returns the same set, all read.
func (s *NotificationService) List(ctx context.Context, userID primitive.ObjectID) ([]models.NotificationDto, error) {
	notifications, err := s.notifications.ListTo(ctx, userID)
	if err != nil {
		return nil, err
	}

	senderIDs := []primitive.ObjectID{}
	for _, n := range notifications {
		if !hasID(senderIDs, n.From) {
			senderIDs = append(senderIDs, n.From)
		}
	}
	senders, err := s.users.GetManyByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}
	senderByID := map[primitive.ObjectID]models.UserDto{}
	for i := range senders {
		senderByID[senders[i].Id] = senders[i].ToDto()
	}

	dtos := []models.NotificationDto{}
	for _, n := range notifications {
		from, ok := senderByID[n.From]
		if !ok {
			from = models.UserDto{Id: n.From}
		}
		dtos = append(dtos, models.NotificationDto{
			Id:        n.Id,
			From:      from,
			Type:      n.Type,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}

	if err := s.notifications.MarkAllRead(ctx, userID); err != nil {
		return nil, err
	}
	return dtos, nil
}

// Clear deletes every notification addressed to the user. Clearing an empty
// set is not an error.
func (s *NotificationService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return s.notifications.DeleteAllTo(ctx, userID)
}
