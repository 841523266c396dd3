package service

import (
	"context"
	"io"

	"github.com/cookatlas/backend/internal/models"
	"github.com/cookatlas/backend/internal/search"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, f search.Filter) ([]models.Recipe, error)
	SearchRecipes(ctx context.Context, f search.Filter) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id uint) (*models.Recipe, error)
	ListByCreator(ctx context.Context, creatorID uint) ([]models.Recipe, error)
	CreateRecipe(ctx context.Context, in RecipeInput) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id uint, u RecipeUpdate) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id uint) error
}

// IUserService defines the interface for account operations
type IUserService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id uint, u UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// IBookmarkService defines the interface for bookmark operations
type IBookmarkService interface {
	AddBookmark(ctx context.Context, userID, recipeID uint) (*models.Bookmark, error)
	IsBookmarked(ctx context.Context, userID, recipeID uint) (bool, error)
	RemoveBookmark(ctx context.Context, userID, recipeID uint) error
	ListBookmarks(ctx context.Context) ([]models.Bookmark, error)
	BookmarkedRecipes(ctx context.Context, userID uint) ([]models.Recipe, error)
}

// IImageService defines the interface for recipe image uploads
type IImageService interface {
	UploadRecipeImage(ctx context.Context, recipeID uint, contentType string, body io.Reader, size int64) (*models.Recipe, error)
}

// IEmailService defines the interface for email operations
type IEmailService interface {
	SendEmail(to, subject, body string) error
	SendPasswordResetEmail(user *models.User, link string) error
}

// ITokenService validates session tokens.
type ITokenService interface {
	Validate(tokenString string) (*SessionClaims, error)
}

var (
	_ IRecipeService   = (*RecipeService)(nil)
	_ IUserService     = (*UserService)(nil)
	_ IBookmarkService = (*BookmarkService)(nil)
	_ IImageService    = (*ImageService)(nil)
	_ IEmailService    = (*EmailService)(nil)
	_ ITokenService    = (*TokenService)(nil)
)
