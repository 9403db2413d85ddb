package api

import (
	"embed"
	"html/template"

	"github.com/pageza/resep-nusantara/internal/models"
	"github.com/pageza/resep-nusantara/internal/service"
	"github.com/pageza/resep-nusantara/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates
func Templates() *template.Template {
	return template.Must(template.New("pages").Funcs(funcMap).ParseFS(templateFS, "templates/*.html"))
}

// layout is shared by every page
type layout struct {
	Title         string
	FavoriteCount int
}

type homePage struct {
	layout
	Query      types.RecipeQuery
	List       service.RecipeList
	Favorited  map[int]bool
	Categories []string
}

type detailPage struct {
	layout
	View service.DetailView
	ID   string
}

type sharePage struct {
	layout
	Recipe models.Recipe
	Link   service.ShareLink
}

type profilePage struct {
	layout
	Profile   models.UserProfile
	Favorites []models.FavoriteEntry
	Editing   bool
	// Form values are kept when a save is rejected
	FormUsername string
	FormBio      string
	Notice       string
	Saved        string
}

type messagePage struct {
	layout
	Message string
}
