package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cookatlas/backend/internal/models"
	"github.com/cookatlas/backend/internal/search"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db       *gorm.DB
	executor *search.Executor
	logger   *zap.Logger
}

// NewRecipeService creates a RecipeService whose searches run on the same
// connection pool as db.
func NewRecipeService(db *gorm.DB, logger *zap.Logger) (*RecipeService, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	dialect := search.DialectFor(db.Dialector.Name())
	return &RecipeService{
		db:       db,
		executor: search.NewExecutor(sqlDB, dialect, logger),
		logger:   logger,
	}, nil
}

// RecipeInput carries the fields of a new recipe.
type RecipeInput struct {
	CreatorID      *uint   `json:"creator_id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	CookTime       *int    `json:"cook_time"`
	PrepTime       *int    `json:"prep_time"`
	SkillLevel     string  `json:"skill_level"`
	SourcePlatform string  `json:"source_platform"`
	SourceURL      string  `json:"source_url"`
	ImageURL       *string `json:"image_url"`
	InstructionsMD *string `json:"instructions_md"`
}

// RecipeUpdate is a partial update; nil fields keep their stored value.
type RecipeUpdate struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	CookTime       *int    `json:"cook_time"`
	PrepTime       *int    `json:"prep_time"`
	SkillLevel     *string `json:"skill_level"`
	SourcePlatform *string `json:"source_platform"`
	SourceURL      *string `json:"source_url"`
	ImageURL       *string `json:"image_url"`
	InstructionsMD *string `json:"instructions_md"`
}

func (u RecipeUpdate) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	set := func(name string, ok bool, v interface{}) {
		if ok {
			cols[name] = v
		}
	}
	set("title", u.Title != nil, u.Title)
	set("description", u.Description != nil, u.Description)
	set("cook_time", u.CookTime != nil, u.CookTime)
	set("prep_time", u.PrepTime != nil, u.PrepTime)
	set("skill_level", u.SkillLevel != nil, u.SkillLevel)
	set("source_platform", u.SourcePlatform != nil, u.SourcePlatform)
	set("source_url", u.SourceURL != nil, u.SourceURL)
	set("image_url", u.ImageURL != nil, u.ImageURL)
	set("instructions_md", u.InstructionsMD != nil, u.InstructionsMD)
	return cols
}

// ListRecipes returns the recipes matching f in ascending id order.
func (s *RecipeService) ListRecipes(ctx context.Context, f search.Filter) ([]models.Recipe, error) {
	return s.executor.Search(ctx, f, search.Ascending)
}

// SearchRecipes returns the recipes matching f, newest id first.
func (s *RecipeService) SearchRecipes(ctx context.Context, f search.Filter) ([]models.Recipe, error) {
	return s.executor.Search(ctx, f, search.Descending)
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "recipe_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &recipe, nil
}

// ListByCreator returns the recipes created by a user, newest first.
func (s *RecipeService) ListByCreator(ctx context.Context, creatorID uint) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	err := s.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("recipe_id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// CreateRecipe creates a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, in RecipeInput) (*models.Recipe, error) {
	recipe := models.Recipe{
		CreatorID:      in.CreatorID,
		Title:          in.Title,
		Description:    in.Description,
		CookTime:       in.CookTime,
		PrepTime:       in.PrepTime,
		SkillLevel:     in.SkillLevel,
		SourcePlatform: in.SourcePlatform,
		SourceURL:      in.SourceURL,
		ImageURL:       in.ImageURL,
		InstructionsMD: in.InstructionsMD,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	s.logger.Info("Recipe created", zap.Uint("recipe_id", recipe.ID))
	return &recipe, nil
}

// UpdateRecipe applies the non-nil fields of u.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uint, u RecipeUpdate) (*models.Recipe, error) {
	cols := u.columns()
	if len(cols) == 0 {
		return s.GetRecipe(ctx, id)
	}

	result := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("recipe_id = ?", id).Updates(cols)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetRecipe(ctx, id)
}

// SetImageURL records the location of a recipe's uploaded image.
func (s *RecipeService) SetImageURL(ctx context.Context, id uint, url string) (*models.Recipe, error) {
	return s.UpdateRecipe(ctx, id, RecipeUpdate{ImageURL: &url})
}

// recipeDependents are the tables whose rows reference a recipe.
var recipeDependents = []interface{}{
	&models.Bookmark{},
	&models.RecipeTag{},
	&models.RecipeIngredient{},
	&models.MealPlanRecipe{},
	&models.Rating{},
	&models.Engagement{},
}

// DeleteRecipe removes a recipe and every row that references it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dep := range recipeDependents {
			if err := tx.Where("recipe_id = ?", id).Delete(dep).Error; err != nil {
				return err
			}
		}
		result := tx.Where("recipe_id = ?", id).Delete(&models.Recipe{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("Recipe deleted", zap.Uint("recipe_id", id))
	return nil
}
