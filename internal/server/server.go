package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/resep-nusantara/config"
	"github.com/pageza/resep-nusantara/internal/api"
	"github.com/pageza/resep-nusantara/internal/database"
	"github.com/pageza/resep-nusantara/internal/middleware"
	"github.com/pageza/resep-nusantara/internal/router"
	"github.com/pageza/resep-nusantara/internal/service"
)

const shutdownTimeout = 5 * time.Second

// Server represents the HTTP server and the services behind it
type Server struct {
	cfg     *config.Config
	router  *gin.Engine
	db      *gorm.DB
	redis   *redis.Client
	queries *service.RecipeQueries
	logger  *slog.Logger
}

// New opens the local database, loads the favorites and wires the services.
// Redis and S3 are optional.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger := slog.Default().With(slog.String("component", "server"))
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	var (
		rdb     *redis.Client
		shared  service.SnapshotCache
		limiter *middleware.RateLimiter
	)
	if cfg.RedisEnabled() {
		rdb, err = database.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("redis unavailable, continuing without shared cache", slog.Any("error", err))
			rdb = nil
		} else {
			shared = service.NewRedisSnapshotCache(rdb)
			limiter = middleware.NewToggleRateLimiter(rdb, cfg.ToggleRateLimit, cfg.ToggleRateWindow)
		}
	}

	var avatars service.AvatarStore
	if cfg.AvatarBucket != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to configure avatar storage: %w", err)
		}
		avatars = service.NewS3AvatarStore(s3cfg)
	}

	client := service.NewRecipeClient(cfg.RecipeAPIURL, cfg.RecipeAPIKey, cfg.RecipeAPITimeout)
	queries := service.NewRecipeQueries(client, service.QueryOptionsFromConfig(cfg), shared)

	favorites := service.NewFavoritesStore(service.NewGormFavoriteRepository(db))
	if err := favorites.Load(ctx); err != nil {
		queries.Close()
		return nil, err
	}

	handler := api.NewHandler(api.Services{
		Queries:   queries,
		Favorites: favorites,
		Details:   service.NewDetailService(queries, favorites),
		Profiles:  service.NewProfileService(db, avatars),
		Shares:    service.NewShareService(),
	}, cfg.PublicOrigin, func(ctx context.Context) error {
		return database.HealthCheck(ctx, db)
	})

	engine := router.SetupRouter(handler, router.Options{
		Origins:       corsOrigins(cfg),
		ToggleLimiter: limiter,
	})

	return &Server{
		cfg:     cfg,
		router:  engine,
		db:      db,
		redis:   rdb,
		queries: queries,
		logger:  logger,
	}, nil
}

// corsOrigins allows the public origin, plus the dev servers outside
// production
func corsOrigins(cfg *config.Config) []string {
	var origins []string
	if cfg.PublicOrigin != "" {
		origins = append(origins, strings.TrimRight(cfg.PublicOrigin, "/"))
	}
	if cfg.Environment != config.Production {
		origins = append(origins, middleware.DevOrigins...)
	}
	return origins
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Close stops background fetches and closes the connections
func (s *Server) Close() error {
	s.queries.Close()
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if sqlDB, err := s.db.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	return errors.Join(errs...)
}
