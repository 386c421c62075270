package services

import (
	"context"
	"errors"
	"log"
	"time"

	"go-meal-delivery/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Read notifications are swept once their read timestamp is older than this.
const notificationRetention = 24 * time.Hour

// NotificationService appends and serves per-recipient messages. It is
// deliberately decoupled from the business writes that trigger it:
// callers invoke Create after their own commit and decide whether a
// failure is fatal (at most call sites it is logged and swallowed).
type NotificationService struct {
	store  NotificationStore
	pusher Pusher
}

func NewNotificationService(store NotificationStore, pusher Pusher) *NotificationService {
	return &NotificationService{store: store, pusher: pusher}
}

// Create inserts an unread notification for the recipient and pushes
// it to any live websocket connections. Duplicates are permitted; the
// caller is responsible for not over-notifying.
func (s *NotificationService) Create(ctx context.Context, recipientId string, message string) (string, error) {
	if recipientId == "" || message == "" {
		return "", errors.New("recipient id and message are required")
	}
	n := models.Notification{
		ID:              primitive.NewObjectID(),
		Notification_id: uuid.NewString(),
		Recipient_id:    recipientId,
		Message:         message,
		Is_read:         false,
		Created_at:      time.Now().UTC(),
	}
	if err := s.store.InsertNotification(ctx, n); err != nil {
		log.Printf("notification insert failed: %v", err)
		return "", ErrNotificationCreate
	}
	if s.pusher != nil {
		s.pusher.Push(recipientId, n)
	}
	return n.Notification_id, nil
}

// ListUnread returns the recipient's unread notifications, newest first.
func (s *NotificationService) ListUnread(ctx context.Context, recipientId string) ([]models.Notification, error) {
	return s.store.UnreadByRecipient(ctx, recipientId)
}

// MarkRead flags the notification as read and stamps the read time.
// Marking an already-read notification just re-stamps it.
func (s *NotificationService) MarkRead(ctx context.Context, notificationId string) error {
	return s.store.MarkNotificationRead(ctx, notificationId, time.Now().UTC())
}

// CleanupExpired deletes read notifications older than the retention
// window. Safe to call frequently and concurrently; deleting an
// already-deleted document is a no-op.
func (s *NotificationService) CleanupExpired(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-notificationRetention)
	deleted, err := s.store.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("notification cleanup removed %d expired notifications", deleted)
	}
	return nil
}
