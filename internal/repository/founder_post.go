package repository

import (
	"context"

	"investkoree/internal/cache"
	"investkoree/internal/models"

	"gorm.io/gorm"
)

// FounderPostRepository defines the interface for published post data operations
type FounderPostRepository interface {
	Create(ctx context.Context, post *models.FounderPost) error
	GetByID(ctx context.Context, id uint) (*models.FounderPost, error)
	List(ctx context.Context) ([]*models.FounderPost, error)
	ListByUserID(ctx context.Context, userID uint) ([]*models.FounderPost, error)
	SourcePendingIDs(ctx context.Context) ([]uint, error)
	UpdateFiles(ctx context.Context, post *models.FounderPost) error
}

type founderPostRepository struct {
	db *gorm.DB
}

// NewFounderPostRepository creates a new founder post repository
func NewFounderPostRepository(db *gorm.DB) FounderPostRepository {
	return &founderPostRepository{db: db}
}

func (r *founderPostRepository) Create(ctx context.Context, post *models.FounderPost) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidateLatestPosts(ctx)
	}
	return err
}

func (r *founderPostRepository) GetByID(ctx context.Context, id uint) (*models.FounderPost, error) {
	var post models.FounderPost
	err := cache.Aside(ctx, cache.FounderPostKey(id), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).First(&post, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns all published posts, newest first.
func (r *founderPostRepository) List(ctx context.Context) ([]*models.FounderPost, error) {
	var posts []*models.FounderPost
	err := cache.Aside(ctx, cache.LatestPostsKey(), &posts, cache.LatestTTL, func() error {
		return r.db.WithContext(ctx).
			Order("created_at DESC").
			Find(&posts).Error
	})
	return posts, err
}

func (r *founderPostRepository) ListByUserID(ctx context.Context, userID uint) ([]*models.FounderPost, error) {
	var posts []*models.FounderPost
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// SourcePendingIDs returns the pending-queue IDs that already have a
// published counterpart. Used to repair interrupted promotions.
func (r *founderPostRepository) SourcePendingIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.FounderPost{}).
		Where("pending_post_id <> 0").
		Pluck("pending_post_id", &ids).Error
	return ids, err
}

// UpdateFiles persists the document URL columns after a post-promotion
// re-attach. Only file fields are touched so a concurrent edit to the
// business fields cannot be clobbered.
func (r *founderPostRepository) UpdateFiles(ctx context.Context, post *models.FounderPost) error {
	err := r.db.WithContext(ctx).
		Model(post).
		Select(
			"business_pictures",
			"nid_file",
			"tin_file",
			"tax_file",
			"trade_license_file",
			"bank_statement_file",
			"security_file",
			"financial_file",
		).
		Updates(post).Error
	if err == nil {
		cache.InvalidateFounderPost(ctx, post.ID)
	}
	return err
}
