package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/resep-nusantara/internal/service"
)

// ListRecipes returns the current list view for the query. It never blocks
// on the remote service once a previous page is cached.
func (h *Handler) ListRecipes(c *gin.Context) {
	q := bindQuery(c)

	var list service.RecipeList
	switch {
	case c.Query("refetch") == "1":
		list = h.queries.Refetch(c.Request.Context(), q)
	case c.Query("wait") == "1":
		list = h.queries.GetRecipes(c.Request.Context(), q)
	default:
		list = h.queries.PeekRecipes(q)
	}

	status := http.StatusOK
	if list.Error != "" {
		status = http.StatusBadGateway
	}
	c.JSON(status, list)
}

// GetRecipe returns the assembled detail view
func (h *Handler) GetRecipe(c *gin.Context) {
	view := h.details.Assemble(c.Request.Context(), c.Param("id"), h.originFor(c))
	switch view.State {
	case service.DetailNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Resep tidak ditemukan"})
	case service.DetailError:
		c.JSON(http.StatusBadGateway, view)
	default:
		c.JSON(http.StatusOK, view)
	}
}

// ShareRecipe returns the share link and the share outcome
func (h *Handler) ShareRecipe(c *gin.Context) {
	recipe, state := h.details.Recipe(c.Request.Context(), c.Param("id"))
	if recipe == nil {
		h.lookupFailureJSON(c, state)
		return
	}
	c.JSON(http.StatusOK, h.shares.Share(c.Request.Context(), service.BuildShareLink(h.originFor(c), *recipe)))
}

// ListFavorites returns the favorites in insertion order
func (h *Handler) ListFavorites(c *gin.Context) {
	favorites := h.favorites.ListFavorites()
	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// ToggleFavorite flips the favorite state of a recipe
func (h *Handler) ToggleFavorite(c *gin.Context) {
	recipe, state := h.details.Recipe(c.Request.Context(), c.Param("id"))
	if recipe == nil {
		h.lookupFailureJSON(c, state)
		return
	}

	favorited, err := h.favorites.ToggleFavorite(c.Request.Context(), *recipe)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Gagal menyimpan favorit",
			"favorited": favorited,
			"count":     h.favorites.Count(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recipe_id": recipe.ID,
		"favorited": favorited,
		"count":     h.favorites.Count(),
	})
}

// GetProfile returns the local profile
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.GetProfile(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal memuat profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":         profile,
		"favorites_count": h.favorites.Count(),
	})
}

func (h *Handler) lookupFailureJSON(c *gin.Context, state service.DetailState) {
	if state == service.DetailNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resep tidak ditemukan"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": service.FetchErrorMessage})
}
