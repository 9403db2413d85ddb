package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/pageza/resep-nusantara/internal/models"
)

// GormFavoriteRepository persists favorites in the favorite_entries table
type GormFavoriteRepository struct {
	db *gorm.DB
}

// Ensure GormFavoriteRepository implements FavoriteRepository
var _ FavoriteRepository = (*GormFavoriteRepository)(nil)

// NewGormFavoriteRepository creates a new GormFavoriteRepository instance
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Load returns every entry in insertion order
func (r *GormFavoriteRepository) Load(ctx context.Context) ([]models.FavoriteEntry, error) {
	var entries []models.FavoriteEntry
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Insert stores entry and fills its id
func (r *GormFavoriteRepository) Insert(ctx context.Context, entry *models.FavoriteEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Delete removes the entry for recipeID
func (r *GormFavoriteRepository) Delete(ctx context.Context, recipeID int) error {
	return r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&models.FavoriteEntry{}).Error
}
