package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"

	"github.com/pageza/resep-nusantara/config"
	"github.com/pageza/resep-nusantara/internal/metrics"
	"github.com/pageza/resep-nusantara/internal/models"
	"github.com/pageza/resep-nusantara/internal/types"
)

// QueryOptions configures the recipe query cache
type QueryOptions struct {
	// StaleTime is how long a cached result is served without refetching
	StaleTime time.Duration
	// CacheTime is how long a result is retained at all
	CacheTime time.Duration
	// Size bounds the number of cached keys
	Size int
	// FetchTimeout bounds every fetch, including background refetches
	FetchTimeout time.Duration
}

// DefaultQueryOptions mirrors the cache windows of the web client
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		StaleTime:    2 * time.Minute,
		CacheTime:    5 * time.Minute,
		Size:         256,
		FetchTimeout: 15 * time.Second,
	}
}

// QueryOptionsFromConfig applies the configured cache windows and size to
// the defaults. Non-positive values keep the default.
func QueryOptionsFromConfig(cfg *config.Config) QueryOptions {
	opts := DefaultQueryOptions()
	if cfg.StaleTime > 0 {
		opts.StaleTime = cfg.StaleTime
	}
	if cfg.CacheTime > 0 {
		opts.CacheTime = cfg.CacheTime
	}
	if cfg.CacheSize > 0 {
		opts.Size = cfg.CacheSize
	}
	return opts
}

// RecipeList is the loading/error/data view of a list query
type RecipeList struct {
	Recipes    []models.Recipe   `json:"recipes"`
	Pagination *types.Pagination `json:"pagination"`
	// Loading means no data exists for this key yet. Recipes may then hold
	// the previous list so the page does not blank out.
	Loading bool `json:"loading"`
	// Fetching means a background refetch is in flight
	Fetching bool   `json:"fetching"`
	Error    string `json:"error,omitempty"`
}

// RecipeDetail is the loading/error/data view of a single recipe query
type RecipeDetail struct {
	Recipe   *models.Recipe `json:"recipe"`
	Loading  bool           `json:"loading"`
	Fetching bool           `json:"fetching"`
	Error    string         `json:"error,omitempty"`
	NotFound bool           `json:"not_found"`
	// Disabled means the id was absent or invalid and nothing was fetched
	Disabled bool `json:"disabled"`
}

// ReviewList is the view of the review query
type ReviewList struct {
	Reviews []models.Review `json:"reviews"`
	Error   string          `json:"error,omitempty"`
}

// SnapshotCache is an optional second cache tier shared between instances
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type cacheEntry struct {
	value     any
	fetchedAt time.Time
	seq       uint64
}

type snapshot[T any] struct {
	FetchedAt time.Time `json:"fetched_at"`
	Data      T         `json:"data"`
}

type fetchMode int

const (
	modeWait fetchMode = iota
	modePeek
	modeForce
)

// RecipeQueries caches recipe lists, recipes and reviews by key with a
// staleness window. Stale entries are served while a background refetch
// runs. Only the newest fetch per key may overwrite the cache.
type RecipeQueries struct {
	api    RecipeAPI
	opts   QueryOptions
	cache  *lru.Cache
	shared SnapshotCache
	group  singleflight.Group
	logger *slog.Logger
	now    func() time.Time

	// seq orders fetches across all keys. Entries keep the seq of the
	// fetch that wrote them, so no per-key state outlives its entry.
	mu            sync.Mutex
	seq           uint64
	inflight      map[string]int
	previous      *RecipePage
	invalidatedAt time.Time

	bg   context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup
}

// NewRecipeQueries creates the query layer over api. shared may be nil.
func NewRecipeQueries(api RecipeAPI, opts QueryOptions, shared SnapshotCache) *RecipeQueries {
	defaults := DefaultQueryOptions()
	if opts.StaleTime <= 0 {
		opts.StaleTime = defaults.StaleTime
	}
	if opts.CacheTime < opts.StaleTime {
		opts.CacheTime = opts.StaleTime
	}
	if opts.Size <= 0 {
		opts.Size = defaults.Size
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaults.FetchTimeout
	}

	// lru.New only fails for a non-positive size
	cache, _ := lru.New(opts.Size)
	bg, stop := context.WithCancel(context.Background())

	return &RecipeQueries{
		api:      api,
		opts:     opts,
		cache:    cache,
		shared:   shared,
		logger:   slog.Default().With(slog.String("component", "recipe_queries")),
		now:      time.Now,
		inflight: make(map[string]int),
		bg:       bg,
		stop:     stop,
	}
}

// GetRecipes returns the list for q, fetching on a miss and refreshing in
// the background when the cached list is stale
func (q *RecipeQueries) GetRecipes(ctx context.Context, params types.RecipeQuery) RecipeList {
	return q.list(ctx, params, modeWait)
}

// PeekRecipes never blocks. On a miss it returns the previous list with
// Loading set and starts the fetch in the background.
func (q *RecipeQueries) PeekRecipes(params types.RecipeQuery) RecipeList {
	return q.list(q.bg, params, modePeek)
}

// Refetch forces a network round-trip for q
func (q *RecipeQueries) Refetch(ctx context.Context, params types.RecipeQuery) RecipeList {
	return q.list(ctx, params, modeForce)
}

func (q *RecipeQueries) list(ctx context.Context, params types.RecipeQuery, mode fetchMode) RecipeList {
	key := params.Key()
	res, state := load(ctx, q, "list", key, mode, func(ctx context.Context) types.Result[RecipePage] {
		return q.api.GetRecipes(ctx, params)
	})

	if state.loading {
		out := RecipeList{Recipes: []models.Recipe{}, Loading: true, Fetching: true}
		q.mu.Lock()
		if q.previous != nil {
			out.Recipes = q.previous.Recipes
			out.Pagination = q.previous.Pagination
		}
		q.mu.Unlock()
		return out
	}

	page, ok := res.Value()
	if !ok {
		return RecipeList{Recipes: []models.Recipe{}, Error: FetchErrorMessage}
	}

	if page.Recipes == nil {
		page.Recipes = []models.Recipe{}
	}
	q.mu.Lock()
	q.previous = &page
	q.mu.Unlock()

	return RecipeList{
		Recipes:    page.Recipes,
		Pagination: page.Pagination,
		Fetching:   state.fetching,
	}
}

// GetRecipe returns the recipe with id. Ids that are not positive disable
// the query.
func (q *RecipeQueries) GetRecipe(ctx context.Context, id int) RecipeDetail {
	return q.detail(ctx, id, modeWait)
}

// RefetchRecipe forces a network round-trip for id
func (q *RecipeQueries) RefetchRecipe(ctx context.Context, id int) RecipeDetail {
	return q.detail(ctx, id, modeForce)
}

func (q *RecipeQueries) detail(ctx context.Context, id int, mode fetchMode) RecipeDetail {
	if id <= 0 {
		return RecipeDetail{Disabled: true}
	}

	key := "recipe:" + strconv.Itoa(id)
	res, state := load(ctx, q, "detail", key, mode, func(ctx context.Context) types.Result[models.Recipe] {
		return q.api.GetRecipeByID(ctx, id)
	})
	if state.loading {
		return RecipeDetail{Loading: true, Fetching: true}
	}

	recipe, ok := res.Value()
	switch {
	case ok:
		return RecipeDetail{Recipe: &recipe, Fetching: state.fetching}
	case res.IsNotFound():
		return RecipeDetail{NotFound: true}
	default:
		return RecipeDetail{Error: FetchErrorMessage}
	}
}

// GetReviews returns all reviews
func (q *RecipeQueries) GetReviews(ctx context.Context) ReviewList {
	res, _ := load(ctx, q, "reviews", "reviews", modeWait, q.api.GetReviews)
	reviews, ok := res.Value()
	if !ok {
		return ReviewList{Reviews: []models.Review{}, Error: FetchErrorMessage}
	}
	return ReviewList{Reviews: reviews}
}

// Invalidate drops every cached entry. Shared snapshots taken before the
// call are ignored from now on.
func (q *RecipeQueries) Invalidate() {
	q.mu.Lock()
	q.invalidatedAt = q.now()
	q.mu.Unlock()
	q.cache.Purge()
}

// Wait blocks until background fetches have finished
func (q *RecipeQueries) Wait() {
	q.wg.Wait()
}

// Close cancels background fetches and waits for them
func (q *RecipeQueries) Close() {
	q.stop()
	q.wg.Wait()
}

type loadState struct {
	loading  bool
	fetching bool
}

// load resolves key from the cache tiers or the fetch function according to mode
func load[T any](ctx context.Context, q *RecipeQueries, kind, key string, mode fetchMode, fn func(context.Context) types.Result[T]) (types.Result[T], loadState) {
	if mode != modeForce {
		if val, fetchedAt, ok := lookup[T](ctx, q, key); ok {
			if q.now().Sub(fetchedAt) <= q.opts.StaleTime {
				metrics.QueryCache.WithLabelValues(kind, "hit").Inc()
				return types.Ok(val), loadState{}
			}
			metrics.QueryCache.WithLabelValues(kind, "stale").Inc()
			background(q, key, fn)
			return types.Ok(val), loadState{fetching: true}
		}
	}

	if mode == modePeek {
		metrics.QueryCache.WithLabelValues(kind, "placeholder").Inc()
		background(q, key, fn)
		return types.Result[T]{}, loadState{loading: true}
	}

	metrics.QueryCache.WithLabelValues(kind, "miss").Inc()
	if mode == modeForce {
		// a forced fetch must not join an older in-flight request
		q.group.Forget(key)
	}
	return fetchKey(ctx, q, key, fn), loadState{}
}

// lookup reads the local tier, then the shared tier
func lookup[T any](ctx context.Context, q *RecipeQueries, key string) (T, time.Time, bool) {
	var zero T
	if raw, ok := q.cache.Get(key); ok {
		e := raw.(*cacheEntry)
		if q.now().Sub(e.fetchedAt) <= q.opts.CacheTime {
			if v, ok := e.value.(T); ok {
				return v, e.fetchedAt, true
			}
		}
		q.cache.Remove(key)
	}

	if q.shared == nil {
		return zero, time.Time{}, false
	}
	data, ok := q.shared.Get(ctx, key)
	if !ok {
		return zero, time.Time{}, false
	}
	var snap snapshot[T]
	if err := json.Unmarshal(data, &snap); err != nil {
		q.logger.Warn("discarding unreadable snapshot", slog.String("key", key), slog.Any("error", err))
		return zero, time.Time{}, false
	}

	q.mu.Lock()
	invalidatedAt := q.invalidatedAt
	q.mu.Unlock()
	if snap.FetchedAt.Before(invalidatedAt) || q.now().Sub(snap.FetchedAt) > q.opts.CacheTime {
		return zero, time.Time{}, false
	}

	q.commitLocal(key, snap.Data, snap.FetchedAt, 0)
	return snap.Data, snap.FetchedAt, true
}

func background[T any](q *RecipeQueries, key string, fn func(context.Context) types.Result[T]) {
	q.mu.Lock()
	busy := q.inflight[key] > 0
	q.mu.Unlock()
	if busy {
		return
	}

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		fetchKey(q.bg, q, key, fn)
	}()
}

// fetchKey runs fn once per key at a time and commits a successful result
// unless a newer fetch for the key has already committed
func fetchKey[T any](ctx context.Context, q *RecipeQueries, key string, fn func(context.Context) types.Result[T]) types.Result[T] {
	v, _, _ := q.group.Do(key, func() (any, error) {
		q.mu.Lock()
		q.seq++
		seq := q.seq
		q.inflight[key]++
		q.mu.Unlock()

		defer func() {
			q.mu.Lock()
			q.inflight[key]--
			if q.inflight[key] <= 0 {
				delete(q.inflight, key)
			}
			q.mu.Unlock()
		}()

		// the fetch outlives a cancelled caller so waiting callers and the
		// cache still get the result
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.opts.FetchTimeout)
		defer cancel()

		res := fn(fctx)
		if val, ok := res.Value(); ok {
			fetchedAt := q.now()
			if q.commitLocal(key, val, fetchedAt, seq) {
				q.commitShared(fctx, key, val, fetchedAt)
			}
		} else {
			q.logger.Warn("query failed", slog.String("key", key), slog.String("cause", res.Message()))
		}
		return res, nil
	})
	return v.(types.Result[T])
}

// commitLocal stores val unless an entry from a newer fetch exists. seq 0
// marks a value copied from the shared tier.
func (q *RecipeQueries) commitLocal(key string, val any, fetchedAt time.Time, seq uint64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if raw, ok := q.cache.Peek(key); ok {
		if existing := raw.(*cacheEntry); existing.seq > seq {
			return false
		}
	}
	q.cache.Add(key, &cacheEntry{value: val, fetchedAt: fetchedAt, seq: seq})
	return true
}

func (q *RecipeQueries) commitShared(ctx context.Context, key string, val any, fetchedAt time.Time) {
	if q.shared == nil {
		return
	}
	data, err := json.Marshal(snapshot[any]{FetchedAt: fetchedAt, Data: val})
	if err != nil {
		q.logger.Warn("failed to encode snapshot", slog.String("key", key), slog.Any("error", err))
		return
	}
	q.shared.Set(ctx, key, data, q.opts.CacheTime)
}
