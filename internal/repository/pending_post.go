// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"investkoree/internal/models"

	"gorm.io/gorm"
)

// PendingPostRepository defines the interface for moderation queue data operations
type PendingPostRepository interface {
	Create(ctx context.Context, post *models.PendingPost) error
	GetByID(ctx context.Context, id uint) (*models.PendingPost, error)
	List(ctx context.Context) ([]*models.PendingPost, error)
	Delete(ctx context.Context, id uint) error
}

type pendingPostRepository struct {
	db *gorm.DB
}

// NewPendingPostRepository creates a new pending post repository
func NewPendingPostRepository(db *gorm.DB) PendingPostRepository {
	return &pendingPostRepository{db: db}
}

func (r *pendingPostRepository) Create(ctx context.Context, post *models.PendingPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *pendingPostRepository) GetByID(ctx context.Context, id uint) (*models.PendingPost, error) {
	var post models.PendingPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *pendingPostRepository) List(ctx context.Context) ([]*models.PendingPost, error) {
	var posts []*models.PendingPost
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// Delete removes a queue entry. Zero rows affected reports ErrRecordNotFound
// so a concurrent decision on the same entry is observed by the loser.
func (r *pendingPostRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.PendingPost{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
