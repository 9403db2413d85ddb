package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/resep-nusantara/internal/models"
	"github.com/pageza/resep-nusantara/internal/service"
)

// Services are the process-wide services the handlers use
type Services struct {
	Queries   *service.RecipeQueries
	Favorites *service.FavoritesStore
	Details   *service.DetailService
	Profiles  *service.ProfileService
	Shares    *service.ShareService
}

// Handler serves the pages and the JSON API
type Handler struct {
	queries   *service.RecipeQueries
	favorites *service.FavoritesStore
	details   *service.DetailService
	profiles  *service.ProfileService
	shares    *service.ShareService
	origin    string
	health    func(context.Context) error
	logger    *slog.Logger
}

// NewHandler creates the handler. An empty origin derives share links from
// the request host. health may be nil.
func NewHandler(svc Services, origin string, health func(context.Context) error) *Handler {
	if health == nil {
		health = func(context.Context) error { return nil }
	}
	return &Handler{
		queries:   svc.Queries,
		favorites: svc.Favorites,
		details:   svc.Details,
		profiles:  svc.Profiles,
		shares:    svc.Shares,
		origin:    strings.TrimRight(origin, "/"),
		health:    health,
		logger:    slog.Default().With(slog.String("component", "api")),
	}
}

// HealthCheck returns the health status of the server
func (h *Handler) HealthCheck(c *gin.Context) {
	if err := h.health(c.Request.Context()); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"favorites": h.favorites.Count(),
	})
}

// NoRoute renders the not-found page, or a JSON error under /api
func (h *Handler) NoRoute(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.HTML(http.StatusNotFound, "not_found.html", messagePage{
		layout:  h.layout("Tidak ditemukan"),
		Message: "Halaman yang kamu cari tidak ada.",
	})
}

func (h *Handler) layout(title string) layout {
	return layout{Title: title, FavoriteCount: h.favorites.Count()}
}

// originFor returns the configured origin or the one the request came in on
func (h *Handler) originFor(c *gin.Context) string {
	if h.origin != "" {
		return h.origin
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}

// favoritedSet marks which of recipes are favorites
func (h *Handler) favoritedSet(recipes []models.Recipe) map[int]bool {
	set := make(map[int]bool, len(recipes))
	for _, r := range recipes {
		if h.favorites.IsFavorited(r.ID) {
			set[r.ID] = true
		}
	}
	return set
}

// safeRedirect accepts only local paths. Control characters are rejected
// since browsers drop them and "/\t/host" would become "//host".
func safeRedirect(target, fallback string) string {
	for i := 0; i < len(target); i++ {
		if target[i] < 0x20 || target[i] == 0x7f || target[i] == '\\' {
			return fallback
		}
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return fallback
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(target, "//") {
		return fallback
	}
	return target
}
