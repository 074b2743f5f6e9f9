package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"investkoree/internal/models"
	"investkoree/internal/notifications"
	"investkoree/internal/observability"
	"investkoree/internal/repository"

	"gorm.io/gorm"
)

// ModerationService drives the pending-post review workflow. A queue entry is
// either promoted into the published set (Accept) or destroyed (Deny); both
// outcomes are terminal and both leave the submitter a notification.
type ModerationService struct {
	pendingRepo      repository.PendingPostRepository
	founderRepo      repository.FounderPostRepository
	notificationRepo repository.NotificationRepository
	dispatcher       *notifications.Dispatcher
}

func NewModerationService(
	pendingRepo repository.PendingPostRepository,
	founderRepo repository.FounderPostRepository,
	notificationRepo repository.NotificationRepository,
	dispatcher *notifications.Dispatcher,
) *ModerationService {
	return &ModerationService{
		pendingRepo:      pendingRepo,
		founderRepo:      founderRepo,
		notificationRepo: notificationRepo,
		dispatcher:       dispatcher,
	}
}

// SubmitPending stores a new proposal in the moderation queue.
func (s *ModerationService) SubmitPending(ctx context.Context, post *models.PendingPost) (*models.PendingPost, error) {
	if post.BusinessName == "" {
		return nil, models.NewValidationError("businessName is required")
	}
	if post.UserID == 0 {
		return nil, models.NewValidationError("userId is required")
	}
	if err := s.pendingRepo.Create(ctx, post); err != nil {
		return nil, models.NewPersistenceError("pending post create", err)
	}
	return post, nil
}

// GetPending returns a single queue entry.
func (s *ModerationService) GetPending(ctx context.Context, id uint) (*models.PendingPost, error) {
	post, err := s.pendingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Pending post", id)
		}
		return nil, models.NewPersistenceError("pending post read", err)
	}
	return post, nil
}

// ListPending returns the moderation queue, newest first.
func (s *ModerationService) ListPending(ctx context.Context) ([]*models.PendingPost, error) {
	posts, err := s.pendingRepo.List(ctx)
	if err != nil {
		return nil, models.NewPersistenceError("pending post list", err)
	}
	return posts, nil
}

// Accept promotes a queue entry into the published set, removes it from the
// queue, and notifies the submitter. The promotion is not transactional: the
// publish lands before the queue delete, so an interruption can leave both
// records behind. Reconcile repairs that state.
func (s *ModerationService) Accept(ctx context.Context, postID, userID uint) (*models.FounderPost, error) {
	pending, err := s.GetPending(ctx, postID)
	if err != nil {
		observability.ModerationDecisions.WithLabelValues("accept", "not_found").Inc()
		return nil, err
	}

	founder := models.PromoteFromPending(pending, userID)
	if err := s.founderRepo.Create(ctx, founder); err != nil {
		observability.ModerationDecisions.WithLabelValues("accept", "error").Inc()
		return nil, models.NewPersistenceError("founder post create", err)
	}

	if err := s.pendingRepo.Delete(ctx, postID); err != nil {
		observability.ModerationDecisions.WithLabelValues("accept", "error").Inc()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A concurrent decision removed the entry first. The publish
			// already happened; Reconcile cleans up if needed.
			return nil, models.NewNotFoundError("Pending post", postID)
		}
		return nil, models.NewPersistenceError("pending post delete", err)
	}

	notification := &models.Notification{
		UserID:  founder.UserID,
		Message: fmt.Sprintf("Your post for %q has been accepted!", pending.BusinessName),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		observability.ModerationDecisions.WithLabelValues("accept", "error").Inc()
		return nil, models.NewPersistenceError("notification create", err)
	}

	if s.dispatcher != nil {
		s.dispatcher.Emit(ctx, founder.UserID, notifications.EventNotification, notification)
	}

	observability.ModerationDecisions.WithLabelValues("accept", "ok").Inc()
	return founder, nil
}

// AttachFiles re-attaches freshly stored document URLs to an already
// published post. Called after Accept when the admin supplied replacement
// files; a failure here must not undo the accept itself.
func (s *ModerationService) AttachFiles(ctx context.Context, founder *models.FounderPost, stored *StoredFiles) error {
	if stored.Empty() {
		return nil
	}
	if len(stored.BusinessPictures) > 0 {
		founder.BusinessPictures = stored.BusinessPictures
	}
	if stored.NidFile != "" {
		founder.NidFile = stored.NidFile
	}
	if stored.TinFile != "" {
		founder.TinFile = stored.TinFile
	}
	if stored.TaxFile != "" {
		founder.TaxFile = stored.TaxFile
	}
	if stored.TradeLicenseFile != "" {
		founder.TradeLicenseFile = stored.TradeLicenseFile
	}
	if stored.BankStatementFile != "" {
		founder.BankStatementFile = stored.BankStatementFile
	}
	if stored.SecurityFile != "" {
		founder.SecurityFile = stored.SecurityFile
	}
	if stored.FinancialFile != "" {
		founder.FinancialFile = stored.FinancialFile
	}
	if err := s.founderRepo.UpdateFiles(ctx, founder); err != nil {
		return models.NewPersistenceError("founder post file update", err)
	}
	return nil
}

// Deny destroys a queue entry and notifies the submitter. Stale notifications
// mentioning the same business name are cleared best-effort so the submitter
// does not see contradictory history.
func (s *ModerationService) Deny(ctx context.Context, postID, userID uint) (*models.Notification, error) {
	pending, err := s.GetPending(ctx, postID)
	if err != nil {
		observability.ModerationDecisions.WithLabelValues("deny", "not_found").Inc()
		return nil, err
	}

	recipient := pending.UserID
	if recipient == 0 {
		recipient = userID
	}

	notification := &models.Notification{
		UserID:  recipient,
		Message: fmt.Sprintf("Your post for %q has been denied.", pending.BusinessName),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		observability.ModerationDecisions.WithLabelValues("deny", "error").Inc()
		return nil, models.NewPersistenceError("notification create", err)
	}

	if err := s.pendingRepo.Delete(ctx, postID); err != nil {
		observability.ModerationDecisions.WithLabelValues("deny", "error").Inc()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Pending post", postID)
		}
		return nil, models.NewPersistenceError("pending post delete", err)
	}

	// Matching is by message substring, so an unrelated notification that
	// happens to mention the business name is collateral.
	if err := s.notificationRepo.DeleteMatching(ctx, recipient, pending.BusinessName, notification.ID); err != nil {
		slog.WarnContext(ctx, "stale notification cleanup failed",
			"user_id", recipient, "business", pending.BusinessName, "error", err)
	}

	if s.dispatcher != nil {
		s.dispatcher.Emit(ctx, recipient, notifications.EventNotification, notification)
	}

	observability.ModerationDecisions.WithLabelValues("deny", "ok").Inc()
	return notification, nil
}

// ReconcileReport summarizes a repair pass over the moderation queue.
type ReconcileReport struct {
	Checked int `json:"checked"`
	Removed int `json:"removed"`
}

// Reconcile deletes every queue entry that already has a published
// counterpart, repairing promotions interrupted between the publish and the
// queue delete. Safe to run repeatedly.
func (s *ModerationService) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	promotedIDs, err := s.founderRepo.SourcePendingIDs(ctx)
	if err != nil {
		return nil, models.NewPersistenceError("promotion scan", err)
	}

	report := &ReconcileReport{Checked: len(promotedIDs)}
	for _, id := range promotedIDs {
		err := s.pendingRepo.Delete(ctx, id)
		switch {
		case err == nil:
			report.Removed++
			slog.InfoContext(ctx, "removed already-promoted pending post", "pending_post_id", id)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Already clean.
		default:
			return nil, models.NewPersistenceError("pending post delete", err)
		}
	}
	return report, nil
}
