package service

import (
	"context"
	"errors"

	"investkoree/internal/models"
	"investkoree/internal/repository"

	"gorm.io/gorm"
)

// FounderPostService serves the public, read-only view of published posts.
type FounderPostService struct {
	repo repository.FounderPostRepository
}

func NewFounderPostService(repo repository.FounderPostRepository) *FounderPostService {
	return &FounderPostService{repo: repo}
}

// Latest returns all published posts, newest first.
func (s *FounderPostService) Latest(ctx context.Context) ([]*models.FounderPost, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, models.NewPersistenceError("founder post list", err)
	}
	return posts, nil
}

// ProjectDetail returns a single published post.
func (s *FounderPostService) ProjectDetail(ctx context.Context, id uint) (*models.FounderPost, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Project", id)
		}
		return nil, models.NewPersistenceError("founder post read", err)
	}
	return post, nil
}

// ListByUser returns a founder's own published posts, newest first.
func (s *FounderPostService) ListByUser(ctx context.Context, userID uint) ([]*models.FounderPost, error) {
	if userID == 0 {
		return nil, models.NewValidationError("userId is required")
	}
	posts, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewPersistenceError("founder post list", err)
	}
	return posts, nil
}
