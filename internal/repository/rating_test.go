package repository

import (
	"context"
	"testing"

	"github.com/Levuisha/parfumerie/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRatingRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "rating@example.com")
	aventus := createFragrance(t, db, "Aventus")
	sauvage := createFragrance(t, db, "Sauvage")

	t.Run("Upsert then Get", func(t *testing.T) {
		err := repo.Upsert(ctx, &models.Rating{UserID: user.ID, FragranceID: aventus.ID, Score: 7})
		require.NoError(t, err)

		got, err := repo.Get(ctx, user.ID, aventus.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 7, got.Score)
	})

	t.Run("Upsert is last-write-wins", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, &models.Rating{UserID: user.ID, FragranceID: aventus.ID, Score: 9}))

		got, err := repo.Get(ctx, user.ID, aventus.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, got.Score)

		var count int64
		db.Model(&models.Rating{}).Where("user_id = ?", user.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Get returns nil when unrated", func(t *testing.T) {
		got, err := repo.Get(ctx, user.ID, sauvage.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ListByUser", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, &models.Rating{UserID: user.ID, FragranceID: sauvage.ID, Score: 4}))

		ratings, err := repo.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, ratings, 2)
	})

	t.Run("Delete clears the rating", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, user.ID, aventus.ID))

		got, err := repo.Get(ctx, user.ID, aventus.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
