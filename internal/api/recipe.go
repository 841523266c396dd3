package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cookatlas/backend/internal/middleware"
	"github.com/cookatlas/backend/internal/search"
	"github.com/cookatlas/backend/internal/service"
)

// RecipeHandler serves the recipe catalog.
type RecipeHandler struct {
	recipes service.IRecipeService
	images  service.IImageService
	logger  *zap.Logger

	// strict rejects malformed numeric search parameters instead of
	// ignoring them.
	strict bool

	creationLimiter     *middleware.RateLimiter
	modificationLimiter *middleware.RateLimiter
}

func NewRecipeHandler(recipes service.IRecipeService, images service.IImageService, strict bool, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		images:  images,
		strict:  strict,
		logger:  logger,
	}
}

// WithRateLimits limits creation per user and modification per user and
// recipe. Either limiter may be nil.
func (h *RecipeHandler) WithRateLimits(creation, modification *middleware.RateLimiter) *RecipeHandler {
	h.creationLimiter = creation
	h.modificationLimiter = modification
	return h
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	create := []gin.HandlerFunc{middleware.RequireUser()}
	if h.creationLimiter != nil {
		create = append(create, h.creationLimiter.RateLimitMiddleware())
	}
	modify := []gin.HandlerFunc{middleware.RequireUser()}
	if h.modificationLimiter != nil {
		modify = append(modify, h.modificationLimiter.PerRecipeRateLimitMiddleware())
	}

	router.GET("/search", h.SearchRecipes)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchRecipes)
		recipes.GET("/user/:user_id", h.ListByCreator)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", chain(create, h.CreateRecipe)...)
		recipes.PUT("/:id", chain(modify, h.UpdateRecipe)...)
		recipes.DELETE("/:id", chain(modify, h.DeleteRecipe)...)
		recipes.POST("/:id/image", chain(modify, h.UploadImage)...)
	}
}

func (h *RecipeHandler) filter(c *gin.Context) (search.Filter, bool) {
	params := search.ParamsFromValues(c.Request.URL.Query())
	if !h.strict {
		return search.ParseFilter(params), true
	}
	f, err := search.ParseFilterStrict(params)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid search parameter", err)
		return search.Filter{}, false
	}
	return f, true
}

// ListRecipes returns the catalog in ascending id order, narrowed by any
// search parameters present.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	f, ok := h.filter(c)
	if !ok {
		return
	}
	recipes, err := h.recipes.ListRecipes(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.logger, err, "Recipe not found", "Failed to fetch recipes")
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// SearchRecipes returns the matching recipes, newest first.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	f, ok := h.filter(c)
	if !ok {
		return
	}
	recipes, err := h.recipes.SearchRecipes(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.logger, err, "Recipe not found", "Search failed")
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Recipe not found", "Failed to fetch recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) ListByCreator(c *gin.Context) {
	id, ok := pathID(c, "user_id", "User not found")
	if !ok {
		return
	}
	recipes, err := h.recipes.ListByCreator(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "User not found", "Failed to fetch recipes")
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// CreateRecipe stores a new recipe. The creator defaults to the caller.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req service.RecipeInput
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		errorJSON(c, http.StatusBadRequest, "Title and description are required", nil)
		return
	}
	if req.CreatorID == nil {
		if user, ok := middleware.CurrentUser(c); ok {
			req.CreatorID = &user.ID
		}
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Recipe not found", "Failed to create recipe")
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe changes only the fields present in the body.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	var req service.RecipeUpdate
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, err, "Recipe not found", "Failed to update recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "Recipe not found", "Failed to delete recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

// UploadImage accepts a multipart "image" field and stores it as the
// recipe's picture.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := pathID(c, "id", "Recipe not found")
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxImageSize+1<<20)

	header, err := c.FormFile("image")
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "Image file is required", err)
		return
	}
	file, err := header.Open()
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "Image file is required", err)
		return
	}
	defer file.Close()

	recipe, err := h.images.UploadRecipeImage(c.Request.Context(), id, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		respondError(c, h.logger, err, "Recipe not found", "Failed to upload image")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// chain returns a fresh handler list ending in h.
func chain(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	return append(append(out, mw...), h)
}

// pathID parses a numeric path parameter. Anything else cannot name a row,
// so it is answered with 404.
func pathID(c *gin.Context, name, notFound string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		errorJSON(c, http.StatusNotFound, notFound, nil)
		return 0, false
	}
	return uint(id), true
}
