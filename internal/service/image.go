package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cookatlas/backend/internal/models"
)

// MaxImageSize bounds uploaded recipe images.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ObjectStore puts an object and returns the URL it is served from.
// *config.S3Config implements it.
type ObjectStore interface {
	PutObject(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// ImageService stores recipe images in object storage.
type ImageService struct {
	store   ObjectStore
	recipes *RecipeService
	logger  *zap.Logger
}

// NewImageService returns an ImageService. store may be nil, in which case
// uploads fail with ErrStorageUnavailable.
func NewImageService(store ObjectStore, recipes *RecipeService, logger *zap.Logger) *ImageService {
	return &ImageService{store: store, recipes: recipes, logger: logger}
}

// UploadRecipeImage stores the image and points the recipe's image_url at it.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uint, contentType string, body io.Reader, size int64) (*models.Recipe, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported content type %q", ErrInvalidImage, contentType)
	}
	if size <= 0 || size > MaxImageSize {
		return nil, fmt.Errorf("%w: size must be between 1 and %d bytes", ErrInvalidImage, MaxImageSize)
	}

	if _, err := s.recipes.GetRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	key := path.Join("recipes", fmt.Sprint(recipeID), uuid.NewString()+ext)
	url, err := s.store.PutObject(ctx, key, contentType, body, size)
	if err != nil {
		s.logger.Error("Failed to upload recipe image", zap.Uint("recipe_id", recipeID), zap.Error(err))
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return s.recipes.SetImageURL(ctx, recipeID, url)
}
