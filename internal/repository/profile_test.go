package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/Levuisha/parfumerie/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "profile@example.com")

	t.Run("EnsureRow is idempotent", func(t *testing.T) {
		require.NoError(t, repo.EnsureRow(ctx, user.ID))
		require.NoError(t, repo.EnsureRow(ctx, user.ID))

		var count int64
		db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("EnsureRow never clobbers existing fields", func(t *testing.T) {
		profile, err := repo.GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		profile.Username = "wristfirst"
		profile.Bio = "Chasing the perfect iris."
		require.NoError(t, repo.Update(ctx, profile))

		require.NoError(t, repo.EnsureRow(ctx, user.ID))

		got, err := repo.GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "wristfirst", got.Username)
		assert.Equal(t, "Chasing the perfect iris.", got.Bio)
	})

	t.Run("GetByUsername is case-insensitive", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, "WRISTFIRST")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.UserID)
	})

	t.Run("GetByUsername returns nil on miss", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("GetByUserID not found", func(t *testing.T) {
		_, err := repo.GetByUserID(ctx, 9999)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("SearchByUsername matches substrings, skips blank usernames", func(t *testing.T) {
		for i, name := range []string{"ambergrincher", "amberlight", "vetivertim"} {
			u := createUser(t, db, fmt.Sprintf("search%d@example.com", i))
			require.NoError(t, db.Create(&models.Profile{UserID: u.ID, Username: name}).Error)
		}
		blank := createUser(t, db, "blank@example.com")
		require.NoError(t, repo.EnsureRow(ctx, blank.ID))

		got, err := repo.SearchByUsername(ctx, "AMBER", 20)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "ambergrincher", got[0].Username)
		assert.Equal(t, "amberlight", got[1].Username)
	})

	t.Run("SearchByUsername honors limit", func(t *testing.T) {
		got, err := repo.SearchByUsername(ctx, "amber", 1)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
