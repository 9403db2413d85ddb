package testhelpers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/resep-nusantara/internal/models"
)

// MockFavoriteRepository is a mock implementation of the favorites repository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Load(ctx context.Context) ([]models.FavoriteEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FavoriteEntry), args.Error(1)
}

func (m *MockFavoriteRepository) Insert(ctx context.Context, entry *models.FavoriteEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, recipeID int) error {
	args := m.Called(ctx, recipeID)
	return args.Error(0)
}

// MockAvatarStore is a mock implementation of avatar storage
type MockAvatarStore struct {
	mock.Mock
}

func (m *MockAvatarStore) Save(ctx context.Context, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, contentType, data)
	return args.String(0), args.Error(1)
}
