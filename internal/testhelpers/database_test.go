package testhelpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/resep-nusantara/internal/models"
)

func TestSetupTestDB(t *testing.T) {
	db := SetupTestDB(t)

	entry := models.FavoriteEntry{RecipeID: 7, Name: "Rendang", Category: models.CategoryFood}
	require.NoError(t, db.Create(&entry).Error)
	assert.NotZero(t, entry.ID)

	dup := models.FavoriteEntry{RecipeID: 7, Name: "Rendang"}
	assert.Error(t, db.Create(&dup).Error, "recipe_id is unique")

	profile := models.UserProfile{ID: models.LocalProfileID, Username: models.DefaultUsername}
	require.NoError(t, db.Create(&profile).Error)
}

func TestSetupTestRedis(t *testing.T) {
	client := SetupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "resep:ping", "pong", time.Minute).Err())
	val, err := client.Get(ctx, "resep:ping").Result()
	require.NoError(t, err)
	assert.Equal(t, "pong", val)
}
