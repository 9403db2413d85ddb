package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

const errorPage = `<!doctype html><html lang="id"><head><meta charset="utf-8"><title>Terjadi kesalahan</title></head>` +
	`<body><main><h1>Terjadi kesalahan</h1><p>Silakan coba lagi beberapa saat lagi.</p><a href="/">Kembali ke beranda</a></main></body></html>`

// ErrorHandler recovers panics and turns errors attached with c.Error into
// a generic response. Error details are logged, never sent.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic while handling request",
					slog.String("path", c.Request.URL.Path),
					slog.Any("panic", rec),
					slog.String("request_id", c.GetString(RequestIDKey)))
				writeError(c, http.StatusInternalServerError)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			slog.Error("request failed",
				slog.String("path", c.Request.URL.Path),
				slog.Any("error", e.Err),
				slog.String("request_id", c.GetString(RequestIDKey)))
		}
		if !c.Writer.Written() {
			writeError(c, http.StatusInternalServerError)
		}
	}
}

func writeError(c *gin.Context, status int) {
	if wantsJSON(c) {
		c.AbortWithStatusJSON(status, ErrorResponse{Error: http.StatusText(status)})
		return
	}
	c.Abort()
	c.Data(status, "text/html; charset=utf-8", []byte(errorPage))
}

func wantsJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/") ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}
