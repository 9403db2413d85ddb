package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/pageza/resep-nusantara/internal/models"
	"github.com/pageza/resep-nusantara/internal/types"
)

// DetailState is the display state of a recipe detail page
type DetailState string

const (
	DetailLoading  DetailState = "loading"
	DetailError    DetailState = "error"
	DetailNotFound DetailState = "not_found"
	DetailReady    DetailState = "ready"
)

// DetailView is everything the recipe detail page renders
type DetailView struct {
	State     DetailState     `json:"state"`
	Recipe    *models.Recipe  `json:"recipe,omitempty"`
	Favorited bool            `json:"favorited"`
	Reviews   []models.Review `json:"reviews"`
	Share     *ShareLink      `json:"share,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// DetailService assembles the recipe detail view from the query layer
// and the favorites store
type DetailService struct {
	queries   *RecipeQueries
	favorites *FavoritesStore
}

// NewDetailService creates a new DetailService instance
func NewDetailService(queries *RecipeQueries, favorites *FavoritesStore) *DetailService {
	return &DetailService{queries: queries, favorites: favorites}
}

// ParseRecipeID parses a route id. Anything that is not a positive integer
// is rejected.
func ParseRecipeID(raw string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Assemble resolves rawID into a detail view. The recipe is looked up in
// the default list first and fetched on its own when absent there.
func (s *DetailService) Assemble(ctx context.Context, rawID, origin string) DetailView {
	id, ok := ParseRecipeID(rawID)
	if !ok {
		return DetailView{State: DetailNotFound, Reviews: []models.Review{}}
	}

	recipe, view := s.lookup(ctx, id)
	if recipe == nil {
		view.Reviews = []models.Review{}
		return view
	}

	share := BuildShareLink(origin, *recipe)
	return DetailView{
		State:     DetailReady,
		Recipe:    recipe,
		Favorited: s.favorites.IsFavorited(recipe.ID),
		Reviews:   s.reviewsFor(ctx, recipe.ID),
		Share:     &share,
	}
}

// Recipe returns the recipe with rawID when it can be resolved
func (s *DetailService) Recipe(ctx context.Context, rawID string) (*models.Recipe, DetailState) {
	id, ok := ParseRecipeID(rawID)
	if !ok {
		return nil, DetailNotFound
	}
	recipe, view := s.lookup(ctx, id)
	if recipe == nil {
		return nil, view.State
	}
	return recipe, DetailReady
}

func (s *DetailService) lookup(ctx context.Context, id int) (*models.Recipe, DetailView) {
	list := s.queries.GetRecipes(ctx, types.RecipeQuery{})
	for i := range list.Recipes {
		if list.Recipes[i].ID == id {
			r := list.Recipes[i]
			return &r, DetailView{}
		}
	}

	detail := s.queries.GetRecipe(ctx, id)
	switch {
	case detail.Recipe != nil:
		return detail.Recipe, DetailView{}
	case detail.Loading:
		return nil, DetailView{State: DetailLoading}
	case detail.NotFound, detail.Disabled:
		return nil, DetailView{State: DetailNotFound}
	default:
		return nil, DetailView{State: DetailError, Error: detail.Error}
	}
}

// reviewsFor never fails, a review outage shows no reviews
func (s *DetailService) reviewsFor(ctx context.Context, recipeID int) []models.Review {
	all := s.queries.GetReviews(ctx)
	out := make([]models.Review, 0)
	for _, r := range all.Reviews {
		if r.RecipeID == recipeID {
			out = append(out, r)
		}
	}
	return out
}
