package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pageza/resep-nusantara/internal/metrics"
	"github.com/pageza/resep-nusantara/internal/models"
)

// FavoriteRepository is the durable storage behind the favorites store
type FavoriteRepository interface {
	Load(ctx context.Context) ([]models.FavoriteEntry, error)
	Insert(ctx context.Context, entry *models.FavoriteEntry) error
	Delete(ctx context.Context, recipeID int) error
}

// FavoriteChange describes one committed mutation
type FavoriteChange struct {
	RecipeID  int                  `json:"recipe_id"`
	Favorited bool                 `json:"favorited"`
	Entry     models.FavoriteEntry `json:"entry"`
	Count     int                  `json:"count"`
}

// FavoritesStore is the process-wide set of favorite recipes. Reads are
// served from memory; every mutation is written through to the repository
// before it becomes visible.
type FavoritesStore struct {
	repo   FavoriteRepository
	logger *slog.Logger

	// toggleMu serializes mutations so observers see them in commit order
	toggleMu sync.Mutex

	mu      sync.RWMutex
	entries []models.FavoriteEntry
	members map[int]struct{}
	subs    map[uint64]func(FavoriteChange)
	nextSub uint64
}

// NewFavoritesStore creates an empty store over repo. Call Load to hydrate it.
func NewFavoritesStore(repo FavoriteRepository) *FavoritesStore {
	return &FavoritesStore{
		repo:    repo,
		logger:  slog.Default().With(slog.String("component", "favorites")),
		members: make(map[int]struct{}),
		subs:    make(map[uint64]func(FavoriteChange)),
	}
}

// Load replaces the in-memory state with the persisted entries. Duplicate
// recipe ids keep their first entry.
func (s *FavoritesStore) Load(ctx context.Context) error {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	members := make(map[int]struct{}, len(entries))
	kept := make([]models.FavoriteEntry, 0, len(entries))
	for _, e := range entries {
		if _, dup := members[e.RecipeID]; dup {
			continue
		}
		members[e.RecipeID] = struct{}{}
		kept = append(kept, e)
	}

	s.toggleMu.Lock()
	defer s.toggleMu.Unlock()
	s.mu.Lock()
	s.entries = kept
	s.members = members
	s.mu.Unlock()

	metrics.Favorites.Set(float64(len(kept)))
	s.logger.Info("favorites loaded", slog.Int("count", len(kept)))
	return nil
}

// IsFavorited reports whether recipeID is in the set
func (s *FavoritesStore) IsFavorited(recipeID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[recipeID]
	return ok
}

// ListFavorites returns a copy of the entries in insertion order
func (s *FavoritesStore) ListFavorites() []models.FavoriteEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.FavoriteEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Count returns the number of favorites
func (s *FavoritesStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// ToggleFavorite removes recipe from the set if present and adds a snapshot
// of it otherwise. It returns the new membership once the change is
// persisted. On a persistence error nothing changes.
func (s *FavoritesStore) ToggleFavorite(ctx context.Context, recipe models.Recipe) (bool, error) {
	s.toggleMu.Lock()
	defer s.toggleMu.Unlock()

	if s.IsFavorited(recipe.ID) {
		if err := s.repo.Delete(ctx, recipe.ID); err != nil {
			metrics.FavoriteToggles.WithLabelValues("failed").Inc()
			s.logger.Error("failed to remove favorite", slog.Int("recipe_id", recipe.ID), slog.Any("error", err))
			return true, fmt.Errorf("%w: %v", ErrPersistFailed, err)
		}
		s.notify(s.remove(recipe.ID))
		metrics.FavoriteToggles.WithLabelValues("remove").Inc()
		return false, nil
	}

	entry := models.NewFavoriteEntry(recipe)
	if err := s.repo.Insert(ctx, &entry); err != nil {
		metrics.FavoriteToggles.WithLabelValues("failed").Inc()
		s.logger.Error("failed to add favorite", slog.Int("recipe_id", recipe.ID), slog.Any("error", err))
		return false, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	s.notify(s.add(entry))
	metrics.FavoriteToggles.WithLabelValues("add").Inc()
	return true, nil
}

func (s *FavoritesStore) add(entry models.FavoriteEntry) FavoriteChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	s.members[entry.RecipeID] = struct{}{}
	return FavoriteChange{RecipeID: entry.RecipeID, Favorited: true, Entry: entry, Count: len(s.entries)}
}

func (s *FavoritesStore) remove(recipeID int) FavoriteChange {
	s.mu.Lock()
	defer s.mu.Unlock()

	change := FavoriteChange{RecipeID: recipeID}
	kept := make([]models.FavoriteEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.RecipeID == recipeID {
			change.Entry = e
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	delete(s.members, recipeID)
	change.Count = len(kept)
	return change
}

// notify runs on the toggle path, so observers must not toggle synchronously
func (s *FavoritesStore) notify(change FavoriteChange) {
	metrics.Favorites.Set(float64(change.Count))

	s.mu.RLock()
	subs := make([]func(FavoriteChange), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(change)
	}
}

// Subscribe registers fn for every committed change and returns a function
// that removes it
func (s *FavoritesStore) Subscribe(fn func(FavoriteChange)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// WatchRecipe calls fn with the new membership whenever recipeID changes
func (s *FavoritesStore) WatchRecipe(recipeID int, fn func(favorited bool)) func() {
	return s.Subscribe(func(c FavoriteChange) {
		if c.RecipeID == recipeID {
			fn(c.Favorited)
		}
	})
}
