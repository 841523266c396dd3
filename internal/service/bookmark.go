package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/cookatlas/backend/internal/models"
)

// BookmarkService manages users' saved recipes.
type BookmarkService struct {
	db *gorm.DB
}

func NewBookmarkService(db *gorm.DB) *BookmarkService {
	return &BookmarkService{db: db}
}

// AddBookmark saves recipeID for userID. A second bookmark of the same
// recipe returns ErrAlreadyBookmarked.
func (s *BookmarkService) AddBookmark(ctx context.Context, userID, recipeID uint) (*models.Bookmark, error) {
	bookmarked, err := s.IsBookmarked(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if bookmarked {
		return nil, ErrAlreadyBookmarked
	}

	bookmark := models.Bookmark{UserID: userID, RecipeID: recipeID}
	if err := s.db.WithContext(ctx).Create(&bookmark).Error; err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (s *BookmarkService) IsBookmarked(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

func (s *BookmarkService) RemoveBookmark(ctx context.Context, userID, recipeID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBookmarks returns every bookmark in id order.
func (s *BookmarkService) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	bookmarks := []models.Bookmark{}
	if err := s.db.WithContext(ctx).Order("bookmark_id ASC").Find(&bookmarks).Error; err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// BookmarkedRecipes returns the recipes userID bookmarked, highest recipe
// id first.
func (s *BookmarkService) BookmarkedRecipes(ctx context.Context, userID uint) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	err := s.db.WithContext(ctx).
		Joins("JOIN bookmark ON bookmark.recipe_id = recipes.recipe_id").
		Where("bookmark.user_id = ?", userID).
		Order("recipes.recipe_id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}
