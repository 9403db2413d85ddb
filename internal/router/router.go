package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/resep-nusantara/internal/api"
	"github.com/pageza/resep-nusantara/internal/middleware"
)

// Options tune the router. A nil ToggleLimiter disables toggle rate limiting.
type Options struct {
	Origins       []string
	ToggleLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(h *api.Handler, opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.Origins...))

	router.SetHTMLTemplate(api.Templates())

	toggle := []gin.HandlerFunc{}
	if opts.ToggleLimiter != nil {
		toggle = append(toggle, opts.ToggleLimiter.Middleware())
	}

	router.GET("/healthz", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Pages
	router.GET("/", h.Home)
	recipe := router.Group("/recipe/:id")
	{
		recipe.GET("", h.RecipeDetail)
		recipe.GET("/share", h.SharePanel)
		recipe.POST("/favorite", append(toggle, h.ToggleFavoriteForm)...)
	}
	profile := router.Group("/profile")
	{
		profile.GET("", h.Profile)
		profile.POST("", h.UpdateProfile)
		profile.POST("/avatar", h.UpdateAvatar)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		recipes := v1.Group("/recipes")
		{
			recipes.GET("", h.ListRecipes)
			recipes.GET("/:id", h.GetRecipe)
			recipes.GET("/:id/share", h.ShareRecipe)
		}

		favorites := v1.Group("/favorites")
		{
			favorites.GET("", h.ListFavorites)
			favorites.GET("/events", h.FavoriteEvents)
			favorites.POST("/:id", append(toggle, h.ToggleFavorite)...)
		}

		v1.GET("/profile", h.GetProfile)
	}

	router.NoRoute(h.NoRoute)

	return router
}
