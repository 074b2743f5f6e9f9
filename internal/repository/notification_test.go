package repository

import (
	"context"
	"testing"

	"investkoree/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PendingPost{},
		&models.FounderPost{},
		&models.Notification{},
	))
	return db
}

func TestNotificationRepository_MarkAllReadReportsRowCount(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: 1, Message: "a"}))
	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: 1, Message: "b"}))
	require.NoError(t, repo.Create(ctx, &models.Notification{UserID: 1, Message: "c", Read: true}))

	updated, err := repo.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	updated, err = repo.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestNotificationRepository_DeleteMatching(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	stale := &models.Notification{UserID: 1, Message: `Your post for "ACME Corp" has been accepted!`}
	require.NoError(t, repo.Create(ctx, stale))
	keepTerm := &models.Notification{UserID: 1, Message: `Your post for "acme corp" has been denied.`}
	require.NoError(t, repo.Create(ctx, keepTerm))
	unrelated := &models.Notification{UserID: 1, Message: "Welcome to the platform"}
	require.NoError(t, repo.Create(ctx, unrelated))
	otherUser := &models.Notification{UserID: 2, Message: `News about Acme Corp`}
	require.NoError(t, repo.Create(ctx, otherUser))

	// Case-insensitive match, sparing the excluded ID and other users.
	require.NoError(t, repo.DeleteMatching(ctx, 1, "Acme Corp", keepTerm.ID))

	var remaining []models.Notification
	require.NoError(t, db.Find(&remaining).Error)
	ids := make(map[uint]bool, len(remaining))
	for _, n := range remaining {
		ids[n.ID] = true
	}
	assert.False(t, ids[stale.ID], "stale notification should be deleted")
	assert.True(t, ids[keepTerm.ID], "excluded notification must survive")
	assert.True(t, ids[unrelated.ID])
	assert.True(t, ids[otherUser.ID])
}
