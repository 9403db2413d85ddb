package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/resep-nusantara/internal/models"
	"github.com/pageza/resep-nusantara/internal/testhelpers"
)

func newTestFavorites(t *testing.T) *FavoritesStore {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	store := NewFavoritesStore(NewGormFavoriteRepository(db))
	require.NoError(t, store.Load(context.Background()))
	return store
}

func TestToggleFavoriteAddsSnapshot(t *testing.T) {
	store := newTestFavorites(t)

	favorited, err := store.ToggleFavorite(context.Background(), rendang)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.True(t, store.IsFavorited(rendang.ID))

	list := store.ListFavorites()
	require.Len(t, list, 1)
	assert.Equal(t, rendang.ID, list[0].RecipeID)
	assert.Equal(t, "Rendang", list[0].Name)
	assert.Equal(t, "Makanan", list[0].CategoryLabel())
	assert.Equal(t, 180, list[0].PrepTime)
}

func TestToggleFavoriteTwiceRestoresMembership(t *testing.T) {
	store := newTestFavorites(t)
	ctx := context.Background()

	_, err := store.ToggleFavorite(ctx, soto)
	require.NoError(t, err)
	before := store.IsFavorited(rendang.ID)

	_, err = store.ToggleFavorite(ctx, rendang)
	require.NoError(t, err)
	favorited, err := store.ToggleFavorite(ctx, rendang)
	require.NoError(t, err)

	assert.False(t, favorited)
	assert.Equal(t, before, store.IsFavorited(rendang.ID))
	assert.Equal(t, 1, store.Count())
}

func TestToggleFavoriteNeverDuplicates(t *testing.T) {
	store := newTestFavorites(t)
	ctx := context.Background()
	recipes := []models.Recipe{rendang, soto, cendol}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 60; i++ {
		_, err := store.ToggleFavorite(ctx, recipes[rng.Intn(len(recipes))])
		require.NoError(t, err)

		seen := map[int]bool{}
		for _, e := range store.ListFavorites() {
			assert.False(t, seen[e.RecipeID], "duplicate entry for recipe %d", e.RecipeID)
			seen[e.RecipeID] = true
		}
	}
}

func TestConcurrentTogglesResolveByParity(t *testing.T) {
	store := newTestFavorites(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.ToggleFavorite(context.Background(), rendang)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// an even number of toggles ends where it started
	assert.False(t, store.IsFavorited(rendang.ID))
	assert.Zero(t, store.Count())
}

func TestFavoritesSurviveReload(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	ctx := context.Background()

	first := NewFavoritesStore(NewGormFavoriteRepository(db))
	require.NoError(t, first.Load(ctx))
	_, err := first.ToggleFavorite(ctx, cendol)
	require.NoError(t, err)
	_, err = first.ToggleFavorite(ctx, rendang)
	require.NoError(t, err)

	second := NewFavoritesStore(NewGormFavoriteRepository(db))
	require.NoError(t, second.Load(ctx))

	list := second.ListFavorites()
	require.Len(t, list, 2)
	assert.Equal(t, cendol.ID, list[0].RecipeID, "insertion order is kept")
	assert.Equal(t, rendang.ID, list[1].RecipeID)
}

func TestToggleFavoritePersistFailure(t *testing.T) {
	repo := new(testhelpers.MockFavoriteRepository)
	repo.On("Load", mock.Anything).Return([]models.FavoriteEntry{models.NewFavoriteEntry(soto)}, nil)
	repo.On("Insert", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	repo.On("Delete", mock.Anything, soto.ID).Return(errors.New("disk full"))

	store := NewFavoritesStore(repo)
	require.NoError(t, store.Load(context.Background()))

	notified := 0
	unsubscribe := store.Subscribe(func(FavoriteChange) { notified++ })
	defer unsubscribe()

	favorited, err := store.ToggleFavorite(context.Background(), rendang)
	assert.ErrorIs(t, err, ErrPersistFailed)
	assert.False(t, favorited)
	assert.False(t, store.IsFavorited(rendang.ID))

	favorited, err = store.ToggleFavorite(context.Background(), soto)
	assert.ErrorIs(t, err, ErrPersistFailed)
	assert.True(t, favorited)
	assert.True(t, store.IsFavorited(soto.ID))

	assert.Equal(t, 1, store.Count())
	assert.Zero(t, notified)
	repo.AssertExpectations(t)
}

func TestLoadDropsDuplicateRows(t *testing.T) {
	repo := new(testhelpers.MockFavoriteRepository)
	repo.On("Load", mock.Anything).Return([]models.FavoriteEntry{
		models.NewFavoriteEntry(rendang),
		models.NewFavoriteEntry(rendang),
		models.NewFavoriteEntry(cendol),
	}, nil)

	store := NewFavoritesStore(repo)
	require.NoError(t, store.Load(context.Background()))
	assert.Equal(t, 2, store.Count())
}

func TestLoadFailure(t *testing.T) {
	repo := new(testhelpers.MockFavoriteRepository)
	repo.On("Load", mock.Anything).Return(nil, errors.New("no such table"))

	store := NewFavoritesStore(repo)
	assert.Error(t, store.Load(context.Background()))
	assert.Zero(t, store.Count())
}

func TestSubscribeSeesCommittedState(t *testing.T) {
	store := newTestFavorites(t)
	ctx := context.Background()

	var changes []FavoriteChange
	unsubscribe := store.Subscribe(func(c FavoriteChange) {
		// state is already updated when observers run
		assert.Equal(t, c.Favorited, store.IsFavorited(c.RecipeID))
		changes = append(changes, c)
	})

	_, err := store.ToggleFavorite(ctx, rendang)
	require.NoError(t, err)
	_, err = store.ToggleFavorite(ctx, rendang)
	require.NoError(t, err)

	require.Len(t, changes, 2)
	assert.True(t, changes[0].Favorited)
	assert.Equal(t, 1, changes[0].Count)
	assert.False(t, changes[1].Favorited)
	assert.Equal(t, "Rendang", changes[1].Entry.Name)
	assert.Zero(t, changes[1].Count)

	unsubscribe()
	unsubscribe()
	_, err = store.ToggleFavorite(ctx, rendang)
	require.NoError(t, err)
	assert.Len(t, changes, 2)
}

func TestWatchRecipeFiltersByID(t *testing.T) {
	store := newTestFavorites(t)
	ctx := context.Background()

	var states []bool
	stop := store.WatchRecipe(rendang.ID, func(favorited bool) { states = append(states, favorited) })
	defer stop()

	_, err := store.ToggleFavorite(ctx, soto)
	require.NoError(t, err)
	_, err = store.ToggleFavorite(ctx, rendang)
	require.NoError(t, err)

	assert.Equal(t, []bool{true}, states)
}

func TestListFavoritesReturnsCopy(t *testing.T) {
	store := newTestFavorites(t)
	_, err := store.ToggleFavorite(context.Background(), rendang)
	require.NoError(t, err)

	list := store.ListFavorites()
	list[0].Name = "changed"
	assert.Equal(t, "Rendang", store.ListFavorites()[0].Name)
}
