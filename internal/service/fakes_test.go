package service

import (
	"context"
	"sync"

	"github.com/pageza/resep-nusantara/internal/models"
	"github.com/pageza/resep-nusantara/internal/types"
)

// fakeRecipeAPI serves canned results and counts calls per method
type fakeRecipeAPI struct {
	mu sync.Mutex

	lists   map[string]types.Result[RecipePage]
	recipes map[int]types.Result[models.Recipe]
	reviews types.Result[[]models.Review]

	// gate, when set, is received from before each list fetch returns
	gate chan struct{}

	listCalls   int
	detailCalls int
	reviewCalls int
}

func newFakeRecipeAPI() *fakeRecipeAPI {
	return &fakeRecipeAPI{
		lists:   make(map[string]types.Result[RecipePage]),
		recipes: make(map[int]types.Result[models.Recipe]),
		reviews: types.Ok([]models.Review{}),
	}
}

func (f *fakeRecipeAPI) setList(q types.RecipeQuery, recipes ...models.Recipe) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[q.Key()] = types.Ok(RecipePage{Recipes: recipes})
}

func (f *fakeRecipeAPI) failList(q types.RecipeQuery, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[q.Key()] = types.Err[RecipePage](message)
}

func (f *fakeRecipeAPI) setRecipe(r models.Recipe) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recipes[r.ID] = types.Ok(r)
}

func (f *fakeRecipeAPI) calls() (list, detail, reviews int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.detailCalls, f.reviewCalls
}

func (f *fakeRecipeAPI) GetRecipes(ctx context.Context, q types.RecipeQuery) types.Result[RecipePage] {
	f.mu.Lock()
	f.listCalls++
	res, ok := f.lists[q.Key()]
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if !ok {
		return types.Ok(RecipePage{Recipes: []models.Recipe{}})
	}
	return res
}

func (f *fakeRecipeAPI) GetRecipeByID(ctx context.Context, id int) types.Result[models.Recipe] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls++
	if res, ok := f.recipes[id]; ok {
		return res
	}
	return types.NotFound[models.Recipe](ErrRecipeNotFound.Error())
}

func (f *fakeRecipeAPI) GetReviews(ctx context.Context) types.Result[[]models.Review] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviewCalls++
	return f.reviews
}

var (
	rendang = models.Recipe{ID: 7, Name: "Rendang", Category: models.CategoryFood, PrepTime: 180, AverageRating: 4.8}
	soto    = models.Recipe{ID: 8, Name: "Soto Ayam", Category: models.CategoryFood, PrepTime: 60}
	cendol  = models.Recipe{ID: 9, Name: "Es Cendol", Category: models.CategoryDrink, PrepTime: 20}
)
