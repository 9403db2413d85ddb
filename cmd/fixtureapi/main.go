// Command fixtureapi serves the sample recipe catalogue over the remote
// recipe API contract, for local development without the real service.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/resep-nusantara/internal/fixtures"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:9090", "listen address")
	failing := flag.Bool("failing", false, "answer every request with success=false")
	flag.Parse()

	gin.SetMode(gin.ReleaseMode)
	api := fixtures.NewDefaultAPI()
	api.SetFailing(*failing)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("serving fixture recipe api",
		slog.String("addr", *addr),
		slog.Int("recipes", len(fixtures.Recipes())),
		slog.Bool("failing", *failing))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("fixture api stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
