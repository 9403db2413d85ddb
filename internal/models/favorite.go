package models

import "time"

// FavoriteEntry is a local bookmark of a recipe. The display fields are a
// snapshot taken when the recipe was favorited.
type FavoriteEntry struct {
	ID            uint      `gorm:"primarykey" json:"-"`
	RecipeID      int       `gorm:"not null;uniqueIndex:idx_favorite_recipe" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	ImageURL      string    `gorm:"size:500" json:"image_url"`
	Category      string    `gorm:"size:20" json:"category"`
	PrepTime      int       `json:"prep_time"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName returns the table name for the FavoriteEntry model
func (FavoriteEntry) TableName() string {
	return "favorite_entries"
}

// NewFavoriteEntry snapshots the display fields of r
func NewFavoriteEntry(r Recipe) FavoriteEntry {
	return FavoriteEntry{
		RecipeID:      r.ID,
		Name:          r.Name,
		ImageURL:      r.ImageURL,
		Category:      r.Category,
		PrepTime:      r.PrepTime,
		AverageRating: r.AverageRating,
	}
}

// CategoryLabel returns the display label for the entry category
func (f FavoriteEntry) CategoryLabel() string {
	return CategoryLabel(f.Category)
}
