package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cookatlas/backend/internal/service"
)

type BookmarkHandler struct {
	bookmarks service.IBookmarkService
	logger    *zap.Logger
}

func NewBookmarkHandler(bookmarks service.IBookmarkService, logger *zap.Logger) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks, logger: logger}
}

func (h *BookmarkHandler) RegisterRoutes(router *gin.RouterGroup) {
	bookmarks := router.Group("/bookmarks")
	{
		bookmarks.GET("", h.ListBookmarks)
		bookmarks.POST("", h.AddBookmark)
		bookmarks.GET("/check", h.CheckBookmark)
		bookmarks.DELETE("", h.RemoveBookmark)
	}
	router.GET("/users/:id/bookmarks", h.UserBookmarks)
}

type BookmarkRequest struct {
	UserID   uint `json:"user_id"`
	RecipeID uint `json:"recipe_id"`
}

func (h *BookmarkHandler) AddBookmark(c *gin.Context) {
	var req BookmarkRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.UserID == 0 || req.RecipeID == 0 {
		errorJSON(c, http.StatusBadRequest, "User ID and Recipe ID are required", nil)
		return
	}

	bookmark, err := h.bookmarks.AddBookmark(c.Request.Context(), req.UserID, req.RecipeID)
	if err != nil {
		respondError(c, h.logger, err, "Bookmark not found", "Failed to add bookmark")
		return
	}
	c.JSON(http.StatusCreated, bookmark)
}

// queryPair reads the user_id and recipe_id query parameters.
func queryPair(c *gin.Context) (userID, recipeID uint, ok bool) {
	u, errU := strconv.ParseUint(c.Query("user_id"), 10, 64)
	r, errR := strconv.ParseUint(c.Query("recipe_id"), 10, 64)
	if errU != nil || errR != nil || u == 0 || r == 0 {
		errorJSON(c, http.StatusBadRequest, "User ID and Recipe ID are required", nil)
		return 0, 0, false
	}
	return uint(u), uint(r), true
}

func (h *BookmarkHandler) CheckBookmark(c *gin.Context) {
	userID, recipeID, ok := queryPair(c)
	if !ok {
		return
	}
	bookmarked, err := h.bookmarks.IsBookmarked(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, h.logger, err, "Bookmark not found", "Failed to check bookmark")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

func (h *BookmarkHandler) RemoveBookmark(c *gin.Context) {
	userID, recipeID, ok := queryPair(c)
	if !ok {
		return
	}
	if err := h.bookmarks.RemoveBookmark(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, h.logger, err, "Bookmark not found", "Failed to remove bookmark")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bookmark removed successfully"})
}

func (h *BookmarkHandler) ListBookmarks(c *gin.Context) {
	bookmarks, err := h.bookmarks.ListBookmarks(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Bookmark not found", "Failed to fetch bookmarks")
		return
	}
	c.JSON(http.StatusOK, bookmarks)
}

// UserBookmarks lists the recipes a user bookmarked, newest recipe first.
func (h *BookmarkHandler) UserBookmarks(c *gin.Context) {
	id, ok := pathID(c, "id", "User not found")
	if !ok {
		return
	}
	recipes, err := h.bookmarks.BookmarkedRecipes(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "User not found", "Failed to fetch bookmarks")
		return
	}
	c.JSON(http.StatusOK, recipes)
}
