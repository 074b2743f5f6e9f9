package repository

import (
	"context"
	"testing"

	"investkoree/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPendingPostRepository_DeleteMissingRowIsNotFound(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewPendingPostRepository(db)
	ctx := context.Background()

	post := &models.PendingPost{
		BusinessName:     "Acme",
		Email:            "a@e.com",
		Address:          "addr",
		Phone:            "0170",
		BusinessCategory: "SME",
		BusinessSector:   "Retail",
		UserID:           1,
	}
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, repo.Delete(ctx, post.ID))

	// Deleting the same row again surfaces the lost race.
	err := repo.Delete(ctx, post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFounderPostRepository_SourcePendingIDs(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewFounderPostRepository(db)
	ctx := context.Background()

	promoted := &models.FounderPost{BusinessName: "A", Email: "a@e.com", UserID: 1, PendingPostID: 11}
	require.NoError(t, repo.Create(ctx, promoted))
	seeded := &models.FounderPost{BusinessName: "B", Email: "b@e.com", UserID: 1}
	require.NoError(t, repo.Create(ctx, seeded))

	ids, err := repo.SourcePendingIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{11}, ids)
}
