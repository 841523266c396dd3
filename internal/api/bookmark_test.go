package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cookatlas/backend/internal/middleware"
	"github.com/cookatlas/backend/internal/models"
	"github.com/cookatlas/backend/internal/service"
)

func TestAddBookmark(t *testing.T) {
	router, deps := setupTestRouter(t, Options{})
	deps.bookmarks.On("AddBookmark", mock.Anything, testUser.ID, uint(3)).
		Return(&models.Bookmark{ID: 1, UserID: testUser.ID, RecipeID: 3}, nil).Once()
	deps.bookmarks.On("AddBookmark", mock.Anything, testUser.ID, uint(4)).
		Return(nil, service.ErrAlreadyBookmarked).Once()

	w := PerformRequest(router, http.MethodPost, "/api/v1/bookmarks", gin.H{"user_id": testUser.ID, "recipe_id": 3}, 0)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(3), decode[models.Bookmark](t, w).RecipeID)

	w = PerformRequest(router, http.MethodPost, "/api/v1/bookmarks", gin.H{"user_id": testUser.ID, "recipe_id": 4}, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Recipe already bookmarked", decode[middleware.ErrorResponse](t, w).Message)

	w = PerformRequest(router, http.MethodPost, "/api/v1/bookmarks", gin.H{"recipe_id": 4}, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User ID and Recipe ID are required", decode[middleware.ErrorResponse](t, w).Message)
}

func TestCheckAndRemoveBookmark(t *testing.T) {
	router, deps := setupTestRouter(t, Options{})
	deps.bookmarks.On("IsBookmarked", mock.Anything, testUser.ID, uint(3)).Return(true, nil)
	deps.bookmarks.On("RemoveBookmark", mock.Anything, testUser.ID, uint(3)).Return(nil)
	deps.bookmarks.On("RemoveBookmark", mock.Anything, testUser.ID, uint(9)).Return(service.ErrNotFound)

	w := PerformRequest(router, http.MethodGet, "/api/v1/bookmarks/check?user_id=2&recipe_id=3", nil, 0)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"bookmarked":true}`, w.Body.String())

	w = PerformRequest(router, http.MethodGet, "/api/v1/bookmarks/check?user_id=2", nil, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = PerformRequest(router, http.MethodDelete, "/api/v1/bookmarks?user_id=2&recipe_id=3", nil, 0)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Bookmark removed successfully"}`, w.Body.String())

	w = PerformRequest(router, http.MethodDelete, "/api/v1/bookmarks?user_id=2&recipe_id=9", nil, 0)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Bookmark not found", decode[middleware.ErrorResponse](t, w).Message)
}

func TestListBookmarks(t *testing.T) {
	router, deps := setupTestRouter(t, Options{})
	deps.bookmarks.On("ListBookmarks", mock.Anything).Return([]models.Bookmark{{ID: 1}, {ID: 2}}, nil)
	deps.bookmarks.On("BookmarkedRecipes", mock.Anything, testUser.ID).Return([]models.Recipe{{ID: 4}, {ID: 1}}, nil)

	w := PerformRequest(router, http.MethodGet, "/api/v1/bookmarks", nil, 0)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Bookmark](t, w), 2)

	w = PerformRequest(router, http.MethodGet, "/api/v1/users/2/bookmarks", nil, 0)
	require.Equal(t, http.StatusOK, w.Code)
	recipes := decode[[]models.Recipe](t, w)
	require.Len(t, recipes, 2)
	assert.Equal(t, uint(4), recipes[0].ID)
}
