package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cookatlas/backend/config"
	"github.com/cookatlas/backend/internal/models"
	"github.com/cookatlas/backend/internal/server"
	"github.com/cookatlas/backend/internal/testhelpers"
)

// setupServer runs the whole HTTP stack against PostgreSQL with the SQL
// migrations applied.
func setupServer(t *testing.T) (http.Handler, *gorm.DB, []models.Recipe) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	recipes := testhelpers.SeedCatalog(t, db)

	cfg := config.Default()
	cfg.JWTSecret = "integration-secret"

	srv, err := server.New(context.Background(), cfg, db, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	return srv.Handler(), db, recipes
}

func get(t *testing.T, h http.Handler, path string) []models.Recipe {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var recipes []models.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipes))
	return recipes
}

func titles(recipes []models.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Title)
	}
	return out
}

func TestSearchOnPostgres(t *testing.T) {
	h, _, _ := setupServer(t)

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"empty filter lists everything ascending", "/api/v1/recipes", []string{"Vegan Curry", "Quick Pasta", "Sunday Roast", "Choco Brownies"}},
		{"search is newest first", "/api/v1/recipes/search", []string{"Choco Brownies", "Sunday Roast", "Quick Pasta", "Vegan Curry"}},
		{"query", "/api/v1/search?query=roast", []string{"Sunday Roast"}},
		{"query is case insensitive", "/api/v1/search?query=ROAST", []string{"Sunday Roast"}},
		{"tags are conjunctive", "/api/v1/search?tags=vegan,quick", []string{}},
		{"tag matches platform", "/api/v1/search?tags=YouTube", []string{"Quick Pasta"}},
		{"cook time range", "/api/v1/search?min_cook_time=25&max_cook_time=45", []string{"Choco Brownies", "Vegan Curry"}},
		{"malformed bound ignored", "/api/v1/search?min_cook_time=abc&query=roast", []string{"Sunday Roast"}},
		{"skill level is exact", "/api/v1/search?skill_level=Beginner", []string{"Quick Pasta"}},
		{"wildcards are literal", "/api/v1/search?query=%25", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(get(t, h, tt.path)))
		})
	}
}

func TestRecipeLifecycleOnPostgres(t *testing.T) {
	h, db, recipes := setupServer(t)
	user := testhelpers.CreateUser(t, db, "integration", models.RoleRegistered)

	require.NoError(t, db.Create(&models.Bookmark{UserID: user.ID, RecipeID: recipes[0].ID}).Error)

	body, _ := json.Marshal(gin.H{"user_id": user.ID, "title": "Lentil Soup", "description": "Hearty lentil soup", "cook_time": 35})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotNil(t, created.CreatorID)
	assert.Equal(t, user.ID, *created.CreatorID)
	assert.Equal(t, []string{"Lentil Soup"}, titles(get(t, h, "/api/v1/search?query=lentil")))

	// Deleting a bookmarked recipe removes the bookmark with it.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/recipes/"+itoa(recipes[0].ID), nil)
	req.Header.Set("X-User-ID", itoa(user.ID))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var bookmarks int64
	require.NoError(t, db.Model(&models.Bookmark{}).Count(&bookmarks).Error)
	assert.Zero(t, bookmarks)
	assert.Empty(t, get(t, h, "/api/v1/users/"+itoa(user.ID)+"/bookmarks"))
}
