package models

// Review is a read-only recipe review served by the remote API
type Review struct {
	RecipeID int     `json:"recipeId"`
	User     string  `json:"user"`
	Comment  string  `json:"comment"`
	Rating   float64 `json:"rating,omitempty"`
}
