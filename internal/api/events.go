package api

import (
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/pageza/resep-nusantara/internal/service"
)

const eventBuffer = 16

// FavoriteEvents streams favorite changes as server-sent events. The first
// event is a snapshot of the current count.
func (h *Handler) FavoriteEvents(c *gin.Context) {
	events := make(chan service.FavoriteChange, eventBuffer)
	unsubscribe := h.favorites.Subscribe(func(change service.FavoriteChange) {
		select {
		case events <- change:
		default:
			h.logger.Warn("dropping favorite event for slow subscriber",
				slog.Int("recipe_id", change.RecipeID))
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("snapshot", gin.H{"count": h.favorites.Count()})
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case change := <-events:
			c.SSEvent("change", change)
			return true
		}
	})
}
