// Package fixtures serves a local stand-in for the remote recipe API. It is
// used by tests and by cmd/seed_recipes for local development.
package fixtures

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/pageza/resep-nusantara/internal/models"
	"github.com/pageza/resep-nusantara/internal/types"
)

const defaultLimit = 12

// API holds the fixture catalogue. It can be switched into a failing mode
// where every response carries success=false.
type API struct {
	mu      sync.RWMutex
	recipes []models.Recipe
	reviews []models.Review
	failing bool
	hits    map[string]int
}

// NewAPI creates a fixture API over recipes and reviews
func NewAPI(recipes []models.Recipe, reviews []models.Review) *API {
	return &API{recipes: recipes, reviews: reviews, hits: make(map[string]int)}
}

// NewDefaultAPI creates a fixture API with the sample catalogue
func NewDefaultAPI() *API {
	return NewAPI(Recipes(), Reviews())
}

// SetFailing toggles success=false responses
func (a *API) SetFailing(failing bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failing = failing
}

// SetRecipes replaces the catalogue
func (a *API) SetRecipes(recipes []models.Recipe) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recipes = recipes
}

// Hits returns how often the route was requested
func (a *API) Hits(route string) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.hits[route]
}

// Router returns the gin engine serving the recipe API contract
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), a.count, a.failure)

	r.GET("/recipes", a.listRecipes)
	r.GET("/recipes/:id", a.getRecipe)
	r.GET("/reviews", a.listReviews)
	return r
}

func (a *API) count(c *gin.Context) {
	a.mu.Lock()
	a.hits[c.FullPath()]++
	a.mu.Unlock()
	c.Next()
}

func (a *API) failure(c *gin.Context) {
	a.mu.RLock()
	failing := a.failing
	a.mu.RUnlock()
	if failing {
		// failures keep a 200 status, only the envelope says so
		c.AbortWithStatusJSON(http.StatusOK, gin.H{"success": false, "data": nil, "message": "layanan resep sedang gangguan"})
		return
	}
	c.Next()
}

func (a *API) listRecipes(c *gin.Context) {
	var q types.RecipeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	q = q.Normalize()

	a.mu.RLock()
	matched := make([]models.Recipe, 0, len(a.recipes))
	for _, r := range a.recipes {
		if q.Category != "" && r.Category != q.Category {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(q.Search)) {
			continue
		}
		matched = append(matched, r)
	}
	a.mu.RUnlock()

	sortRecipes(matched, q.Sort)

	limit := q.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	page := q.Page
	if page == 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	c.JSON(http.StatusOK, types.Envelope[[]models.Recipe]{
		Success: true,
		Data:    matched[start:end],
		Pagination: &types.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      len(matched),
			TotalPages: (len(matched) + limit - 1) / limit,
		},
	})
}

func sortRecipes(recipes []models.Recipe, by string) {
	switch by {
	case "name":
		sort.SliceStable(recipes, func(i, j int) bool { return recipes[i].Name < recipes[j].Name })
	case "rating":
		sort.SliceStable(recipes, func(i, j int) bool { return recipes[i].AverageRating > recipes[j].AverageRating })
	case "prep_time":
		sort.SliceStable(recipes, func(i, j int) bool { return recipes[i].PrepTime < recipes[j].PrepTime })
	}
}

func (a *API) getRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "resep tidak ditemukan"})
		return
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, r := range a.recipes {
		if r.ID == id {
			c.JSON(http.StatusOK, types.Envelope[models.Recipe]{Success: true, Data: r})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "resep tidak ditemukan"})
}

func (a *API) listReviews(c *gin.Context) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	c.JSON(http.StatusOK, types.Envelope[[]models.Review]{Success: true, Data: a.reviews})
}
