package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookatlas/backend/internal/models"
)

func TestSetupSQLiteIsolated(t *testing.T) {
	a := SetupSQLite(t)
	b := SetupSQLite(t)

	SeedCatalog(t, a)

	var count int64
	require.NoError(t, a.Model(&models.Recipe{}).Count(&count).Error)
	assert.EqualValues(t, 4, count)
	require.NoError(t, b.Model(&models.Recipe{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSetupTestDatabase(t *testing.T) {
	db := SetupTestDatabase(t)

	user := CreateUser(t, db, "pgcook", models.RoleRegistered)
	recipe := CreateRecipe(t, db, models.Recipe{Title: "Stew", CreatorID: &user.ID, CookTime: IntPtr(60)})
	assert.NotZero(t, recipe.ID)

	var got models.Recipe
	require.NoError(t, db.First(&got, recipe.ID).Error)
	assert.Equal(t, "Stew", got.Title)
	assert.Equal(t, 60, *got.CookTime)
}
