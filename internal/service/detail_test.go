package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/resep-nusantara/internal/models"
	"github.com/pageza/resep-nusantara/internal/types"
)

func newTestDetail(t *testing.T, api *fakeRecipeAPI) (*DetailService, *FavoritesStore) {
	t.Helper()
	q, _ := newTestQueries(t, api, nil)
	favorites := newTestFavorites(t)
	return NewDetailService(q, favorites), favorites
}

func TestAssembleInvalidIDs(t *testing.T) {
	api := newFakeRecipeAPI()
	detail, _ := newTestDetail(t, api)

	for _, raw := range []string{"abc", "", "0", "-4", "7.5"} {
		view := detail.Assemble(context.Background(), raw, "http://localhost")
		assert.Equal(t, DetailNotFound, view.State, raw)
		assert.Nil(t, view.Recipe)
	}
	list, single, _ := api.calls()
	assert.Zero(t, list+single, "invalid ids fetch nothing")
}

func TestAssembleFromDefaultList(t *testing.T) {
	api := newFakeRecipeAPI()
	api.setList(types.RecipeQuery{}, rendang, soto)
	api.reviews = types.Ok([]models.Review{
		{RecipeID: 7, User: "Sari", Comment: "Enak"},
		{RecipeID: 8, User: "Budi", Comment: "Segar"},
	})
	detail, favorites := newTestDetail(t, api)
	_, err := favorites.ToggleFavorite(context.Background(), rendang)
	require.NoError(t, err)

	view := detail.Assemble(context.Background(), "7", "https://resep.example.com")
	require.Equal(t, DetailReady, view.State)
	assert.Equal(t, "Rendang", view.Recipe.Name)
	assert.True(t, view.Favorited)
	require.Len(t, view.Reviews, 1)
	assert.Equal(t, "Sari", view.Reviews[0].User)
	require.NotNil(t, view.Share)
	assert.Equal(t, "https://resep.example.com/recipe/7", view.Share.URL)

	_, single, _ := api.calls()
	assert.Zero(t, single, "recipe found in the list is not fetched again")
}

func TestAssembleFetchesMissingRecipe(t *testing.T) {
	api := newFakeRecipeAPI()
	api.setList(types.RecipeQuery{}, soto)
	api.setRecipe(cendol)
	detail, _ := newTestDetail(t, api)

	view := detail.Assemble(context.Background(), "9", "http://localhost")
	require.Equal(t, DetailReady, view.State)
	assert.Equal(t, "Es Cendol", view.Recipe.Name)
	assert.False(t, view.Favorited)
	assert.NotNil(t, view.Reviews)
}

func TestAssembleUnknownRecipe(t *testing.T) {
	api := newFakeRecipeAPI()
	detail, _ := newTestDetail(t, api)

	view := detail.Assemble(context.Background(), "404", "http://localhost")
	assert.Equal(t, DetailNotFound, view.State)
}

func TestAssembleFetchError(t *testing.T) {
	api := newFakeRecipeAPI()
	api.failList(types.RecipeQuery{}, "offline")
	api.recipes[77] = types.Err[models.Recipe]("offline")
	detail, _ := newTestDetail(t, api)

	view := detail.Assemble(context.Background(), "77", "http://localhost")
	assert.Equal(t, DetailError, view.State)
	assert.Equal(t, FetchErrorMessage, view.Error)
}

func TestAssembleReviewFailureShowsNoReviews(t *testing.T) {
	api := newFakeRecipeAPI()
	api.setList(types.RecipeQuery{}, rendang)
	api.reviews = types.Err[[]models.Review]("offline")
	detail, _ := newTestDetail(t, api)

	view := detail.Assemble(context.Background(), "7", "http://localhost")
	assert.Equal(t, DetailReady, view.State)
	assert.Empty(t, view.Reviews)
	assert.Empty(t, view.Error)
}
