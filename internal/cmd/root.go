package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/pageza/resep-nusantara/config"
	"github.com/pageza/resep-nusantara/internal/database"
	"github.com/pageza/resep-nusantara/internal/logging"
	"github.com/pageza/resep-nusantara/internal/models"
	"github.com/pageza/resep-nusantara/internal/service"
)

// Version is overridden at build time with -ldflags
var Version = "dev"

// clipboard is the primary copy capability of the share command
var clipboard = func() service.Copier { return service.NewCommandClipboard() }

// NewRootCmd builds the resep command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "resep",
		Short:         "Jelajahi Resep Nusantara dari terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newFavoritesCmd(), newShareCmd(), newVersionCmd())
	return root
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// app holds the services a command works with
type app struct {
	cfg       *config.Config
	db        *gorm.DB
	queries   *service.RecipeQueries
	favorites *service.FavoritesStore
	details   *service.DetailService
	shares    *service.ShareService
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	// commands print their own output, keep the log quiet
	if cfg.LogLevel == "info" {
		cfg.LogLevel = "warn"
	}
	logging.Setup(cfg)

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	client := service.NewRecipeClient(cfg.RecipeAPIURL, cfg.RecipeAPIKey, cfg.RecipeAPITimeout)
	queries := service.NewRecipeQueries(client, service.QueryOptionsFromConfig(cfg), nil)

	favorites := service.NewFavoritesStore(service.NewGormFavoriteRepository(db))
	if err := favorites.Load(ctx); err != nil {
		queries.Close()
		return nil, err
	}

	return &app{
		cfg:       cfg,
		db:        db,
		queries:   queries,
		favorites: favorites,
		details:   service.NewDetailService(queries, favorites),
		shares:    service.NewShareService(),
	}, nil
}

func (a *app) Close() {
	a.queries.Close()
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Warn("failed to close database", slog.Any("error", err))
		}
	}
}

// origin is used for share links outside of a request
func (a *app) origin() string {
	if a.cfg.PublicOrigin != "" {
		return a.cfg.PublicOrigin
	}
	return "http://localhost:" + a.cfg.ServerPort
}

// recipe resolves a recipe id argument
func (a *app) recipe(ctx context.Context, raw string) (*models.Recipe, error) {
	r, state := a.details.Recipe(ctx, raw)
	switch state {
	case service.DetailReady:
		return r, nil
	case service.DetailNotFound:
		return nil, fmt.Errorf("resep %q tidak ditemukan", raw)
	default:
		return nil, errors.New(service.FetchErrorMessage)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Tampilkan versi",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "resep %s\n", Version)
		},
	}
}
