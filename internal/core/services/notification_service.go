package services

import (
	"context"
	"fmt"
	"log"

	"langson-benefits/internal/adapters/persistence/models"
	"langson-benefits/internal/adapters/persistence/repositories"
	"langson-benefits/internal/core/domain"
)

// Notification service errors
var (
	ErrNotificationNotFound = fmt.Errorf("%w: notification not found", domain.ErrNotFound)
)

// NotificationService handles user notifications
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo *repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Notify creates a notification for a user. Failures are logged, not
// propagated: a lost notification must never fail the triggering operation.
func (s *NotificationService) Notify(ctx context.Context, userID uint, title, message, notifType string) {
	n := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️ Failed to create notification for user %d: %v", userID, err)
	}
}

// ListByUser lists a user's notifications, optionally filtered by read state
func (s *NotificationService) ListByUser(ctx context.Context, userID uint, isRead *bool) ([]*models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, isRead)
}

// UnreadCount counts the user's unread notifications
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one notification read, scoped to its owner
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	affected, err := s.notificationRepo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks all of the user's notifications read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
