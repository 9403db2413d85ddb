package api

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/pageza/resep-nusantara/internal/models"
	"github.com/pageza/resep-nusantara/internal/types"
)

// PlaceholderImage is shown until a lazy image scrolls into view
const PlaceholderImage = `data:image/svg+xml,%3Csvg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400 300"%3E%3Crect fill="%23e2e8f0" width="400" height="300"/%3E%3Ctext fill="%2394a3b8" font-family="sans-serif" font-size="20" dy="10.5" font-weight="bold" x="50%25" y="50%25" text-anchor="middle"%3ELoading...%3C/text%3E%3C/svg%3E`

// CountBadge formats a favorite count. Zero hides the badge.
func CountBadge(n int) string {
	switch {
	case n <= 0:
		return ""
	case n > 999:
		return "999+"
	default:
		return strconv.Itoa(n)
	}
}

func formatRating(r float64) string {
	return fmt.Sprintf("%.1f", r)
}

// pageURL links to another page of the same list query
func pageURL(q types.RecipeQuery, page int) string {
	q.Page = page
	v := q.Values()
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

func refetchURL(q types.RecipeQuery) string {
	v := q.Values()
	v.Set("refetch", "1")
	return "/?" + v.Encode()
}

// avatarURL lets stored data:image URLs through the template URL filter
func avatarURL(u string) template.URL {
	if strings.HasPrefix(u, "data:image/") || strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "http://") {
		return template.URL(u)
	}
	return ""
}

// favoriteState is the data of the favorite button partial
type favoriteState struct {
	ID        int
	Favorited bool
}

var funcMap = template.FuncMap{
	"countBadge":    CountBadge,
	"categoryLabel": models.CategoryLabel,
	"prepTime":      models.PrepTimeLabel,
	"rating":        formatRating,
	"pageURL":       pageURL,
	"refetchURL":    refetchURL,
	"avatar":        avatarURL,
	"add":           func(a, b int) int { return a + b },
	"placeholder": func() template.URL {
		return template.URL(PlaceholderImage)
	},
	"favorite": func(id int, favorited bool) favoriteState {
		return favoriteState{ID: id, Favorited: favorited}
	},
}
