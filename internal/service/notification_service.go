package service

import (
	"context"

	"investkoree/internal/models"
	"investkoree/internal/notifications"
	"investkoree/internal/repository"
)

// NotificationService exposes the submitter-facing notification operations.
type NotificationService struct {
	repo       repository.NotificationRepository
	dispatcher *notifications.Dispatcher
}

func NewNotificationService(repo repository.NotificationRepository, dispatcher *notifications.Dispatcher) *NotificationService {
	return &NotificationService{repo: repo, dispatcher: dispatcher}
}

// ListForUser returns the user's notifications, newest first, and mirrors
// the list to every live session so multiple tabs converge on one view.
func (s *NotificationService) ListForUser(ctx context.Context, userID uint) ([]*models.Notification, error) {
	if userID == 0 {
		return nil, models.NewValidationError("userId is required")
	}
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, models.NewPersistenceError("notification list", err)
	}
	s.pushReadState(ctx, userID, list)
	return list, nil
}

func (s *NotificationService) pushReadState(ctx context.Context, userID uint, list []*models.Notification) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Emit(ctx, userID, notifications.EventNotificationsRead, map[string]interface{}{
		"userId":        userID,
		"notifications": list,
	})
}

// MarkAllRead flips every unread notification for the user, then re-fetches
// the full list, pushes it over the notifications-read event and returns it.
// Zero unread rows is reported as NothingToUpdate rather than success, which
// makes a repeated call observably different from the first.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) ([]*models.Notification, error) {
	if userID == 0 {
		return nil, models.NewValidationError("userId is required")
	}
	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, models.NewPersistenceError("notification update", err)
	}
	if updated == 0 {
		return nil, models.NewNothingToUpdateError("No unread notifications")
	}

	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, models.NewPersistenceError("notification list", err)
	}
	s.pushReadState(ctx, userID, list)
	return list, nil
}
