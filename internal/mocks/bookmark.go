package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/cookatlas/backend/internal/models"
)

// MockBookmarkService is a mock implementation of service.IBookmarkService
type MockBookmarkService struct {
	mock.Mock
}

func (m *MockBookmarkService) AddBookmark(ctx context.Context, userID, recipeID uint) (*models.Bookmark, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bookmark), args.Error(1)
}

func (m *MockBookmarkService) IsBookmarked(ctx context.Context, userID, recipeID uint) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookmarkService) RemoveBookmark(ctx context.Context, userID, recipeID uint) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockBookmarkService) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bookmark), args.Error(1)
}

func (m *MockBookmarkService) BookmarkedRecipes(ctx context.Context, userID uint) ([]models.Recipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

// MockImageService is a mock implementation of service.IImageService
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) UploadRecipeImage(ctx context.Context, recipeID uint, contentType string, body io.Reader, size int64) (*models.Recipe, error) {
	args := m.Called(ctx, recipeID, contentType, body, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}
