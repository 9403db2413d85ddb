package models

import "fmt"

// Recipe categories served by the remote API
const (
	CategoryFood  = "makanan"
	CategoryDrink = "minuman"
)

// Recipe is a read-only snapshot of a recipe owned by the remote API
type Recipe struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category"`
	PrepTime      int      `json:"prep_time"`
	Servings      int      `json:"servings,omitempty"`
	ImageURL      string   `json:"image_url"`
	AverageRating float64  `json:"average_rating"`
	Ingredients   []string `json:"ingredients"`
	Instructions  []string `json:"instructions"`
}

// CategoryLabel returns the display label for the recipe category
func (r Recipe) CategoryLabel() string {
	return CategoryLabel(r.Category)
}

// CategoryLabel maps a category value to its display label. Anything that
// is not food is shown as a drink.
func CategoryLabel(category string) string {
	if category == CategoryFood {
		return "Makanan"
	}
	return "Minuman"
}

// ValidCategory reports whether c is a known category
func ValidCategory(c string) bool {
	return c == CategoryFood || c == CategoryDrink
}

// PrepTimeLabel formats the preparation time in minutes
func PrepTimeLabel(minutes int) string {
	return fmt.Sprintf("%d min", minutes)
}
