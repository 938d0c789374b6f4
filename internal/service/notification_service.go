package service

import (
	"errors"
	"time"

	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/apperr"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/redis"

	"gorm.io/gorm"
)

// NotificationService persists notifications and pushes them to live
// channels. The write is durable, the push is best-effort: a failed or lost
// push is never retried and never rolls the row back.
type NotificationService struct {
	store     NotificationStore
	publisher Publisher
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(store NotificationStore, publisher Publisher) *NotificationService {
	return &NotificationService{store: store, publisher: publisher}
}

// Send pushes an already-built notification to one recipient's channel.
// No persistence happens here.
func (s *NotificationService) Send(recipientID uint, n *model.Notification) {
	s.publisher.PublishToUser(recipientID, "notification", pushPayload(n))
}

// SendToMany pushes to each recipient in input order. An empty input is a
// no-op, not an error.
func (s *NotificationService) SendToMany(recipientIDs []uint, n *model.Notification) {
	for _, id := range recipientIDs {
		s.Send(id, n)
	}
}

// CreateAndSend persists a new notification and then pushes the stored row
// to the recipient. The pushed payload carries the persisted id.
func (s *NotificationService) CreateAndSend(userID uint, notifType, title, message, metadata string) (*model.Notification, error) {
	n := &model.Notification{
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Metadata:  metadata,
		Read:      false,
		CreatedAt: time.Now(),
	}
	if err := s.store.Create(n); err != nil {
		return nil, err
	}

	if redis.Ready() {
		_ = redis.IncrementUnreadCount(userID)
	}

	s.Send(userID, n)
	return n, nil
}

// List returns the user's newest notifications.
func (s *NotificationService) List(userID uint, limit int) ([]*model.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.store.ListByUser(userID, limit)
}

// MarkRead flips one notification to read. Only the target user may do it,
// and the flag never flips back.
func (s *NotificationService) MarkRead(callerID, notificationID uint) error {
	n, err := s.store.GetByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("notification %d not found", notificationID)
		}
		return err
	}
	if n.UserID != callerID {
		return apperr.Forbidden("notification %d does not belong to user %d", notificationID, callerID)
	}
	if n.Read {
		return nil
	}

	if err := s.store.MarkRead(notificationID); err != nil {
		return err
	}

	if redis.Ready() {
		_ = redis.DecrementUnreadCount(callerID)
	}
	return nil
}

// MarkAllRead flips every unread notification of the user.
func (s *NotificationService) MarkAllRead(userID uint) error {
	if err := s.store.MarkAllRead(userID); err != nil {
		return err
	}

	if redis.Ready() {
		_ = redis.ResetUnreadCount(userID)
	}
	return nil
}

// Delete removes one notification. Only the target user may do it.
func (s *NotificationService) Delete(callerID, notificationID uint) error {
	n, err := s.store.GetByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("notification %d not found", notificationID)
		}
		return err
	}
	if n.UserID != callerID {
		return apperr.Forbidden("notification %d does not belong to user %d", notificationID, callerID)
	}
	return s.store.Delete(notificationID)
}

// UnreadCount returns the unread badge, preferring the redis cache and
// falling back to (and reseeding from) the database.
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	if redis.Ready() {
		if count, err := redis.GetUnreadCount(userID); err == nil && count >= 0 {
			return count, nil
		}
	}

	count, err := s.store.CountUnread(userID)
	if err != nil {
		return 0, err
	}

	if redis.Ready() {
		_ = redis.SetUnreadCount(userID, count)
	}
	return count, nil
}

// pushPayload is the wire shape of a pushed notification.
func pushPayload(n *model.Notification) map[string]interface{} {
	return map[string]interface{}{
		"id":         n.ID,
		"user_id":    n.UserID,
		"type":       n.Type,
		"title":      n.Title,
		"message":    n.Message,
		"metadata":   n.Metadata,
		"read":       n.Read,
		"created_at": n.CreatedAt.Unix(),
	}
}
