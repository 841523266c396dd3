package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cookatlas/backend/internal/models"
	"github.com/cookatlas/backend/internal/search"
	"github.com/cookatlas/backend/internal/service"
)

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) recipes(args mock.Arguments) ([]models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockRecipeService) recipe(args mock.Arguments) (*models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, f search.Filter) ([]models.Recipe, error) {
	return m.recipes(m.Called(ctx, f))
}

func (m *MockRecipeService) SearchRecipes(ctx context.Context, f search.Filter) ([]models.Recipe, error) {
	return m.recipes(m.Called(ctx, f))
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, id))
}

func (m *MockRecipeService) ListByCreator(ctx context.Context, creatorID uint) ([]models.Recipe, error) {
	return m.recipes(m.Called(ctx, creatorID))
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, in service.RecipeInput) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, in))
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id uint, u service.RecipeUpdate) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, id, u))
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
