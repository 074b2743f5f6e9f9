package repository

import (
	"context"
	"strings"

	"investkoree/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID uint) ([]*models.Notification, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	DeleteMatching(ctx context.Context, userID uint, term string, excludeID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkAllRead flips every unread notification for the user and reports how
// many rows actually changed.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

// DeleteMatching removes the user's notifications whose message contains term
// (case-insensitive), sparing excludeID. Used to clear stale accept/deny
// messages about the same business when a new decision lands.
func (r *notificationRepository) DeleteMatching(ctx context.Context, userID uint, term string, excludeID uint) error {
	pattern := "%" + strings.ToLower(term) + "%"
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("LOWER(message) LIKE ?", pattern)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	return q.Delete(&models.Notification{}).Error
}
