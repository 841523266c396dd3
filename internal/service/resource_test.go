package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookatlas/backend/internal/models"
	"github.com/cookatlas/backend/internal/service"
	"github.com/cookatlas/backend/internal/testhelpers"
)

func TestResourceCRUD(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	catalog := service.NewCatalog(db)
	ctx := context.Background()

	for _, name := range []string{"vegan", "quick"} {
		require.NoError(t, catalog.Tags.Create(ctx, &models.Tag{Name: name}))
	}

	tags, err := catalog.Tags.List(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "vegan", tags[0].Name)

	updated, err := catalog.Tags.Update(ctx, tags[1].ID, map[string]interface{}{"name": "fast"})
	require.NoError(t, err)
	assert.Equal(t, "fast", updated.Name)

	_, err = catalog.Tags.Update(ctx, tags[1].ID, map[string]interface{}{"tag_id": 99})
	assert.ErrorIs(t, err, service.ErrInvalidField)

	_, err = catalog.Tags.Update(ctx, 404, map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, catalog.Tags.Delete(ctx, tags[0].ID))
	assert.ErrorIs(t, catalog.Tags.Delete(ctx, tags[0].ID), service.ErrNotFound)

	_, err = catalog.Tags.Get(ctx, tags[0].ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestRatingScoreBounds(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	catalog := service.NewCatalog(db)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, db, "critic", models.RoleRegistered)
	recipe := testhelpers.CreateRecipe(t, db, models.Recipe{Title: "Soup"})

	rating := models.Rating{UserID: user.ID, RecipeID: recipe.ID, Score: 4, Comment: "good"}
	require.NoError(t, catalog.Ratings.Create(ctx, &rating))

	assert.Error(t, catalog.Ratings.Create(ctx, &models.Rating{UserID: user.ID, RecipeID: recipe.ID, Score: 6}))

	updated, err := catalog.Ratings.Update(ctx, rating.ID, map[string]interface{}{"score": 5})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Score)
	assert.Equal(t, "good", updated.Comment)
}

func TestLinks(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	catalog := service.NewCatalog(db)
	ctx := context.Background()

	recipe := testhelpers.CreateRecipe(t, db, models.Recipe{Title: "Salad"})
	tag := models.Tag{Name: "fresh"}
	require.NoError(t, catalog.Tags.Create(ctx, &tag))

	link, err := catalog.RecipeTags.Create(ctx, recipe.ID, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RecipeTag{RecipeID: recipe.ID, TagID: tag.ID}, *link)

	_, err = catalog.RecipeTags.Create(ctx, recipe.ID, tag.ID)
	assert.ErrorIs(t, err, service.ErrAlreadyExists)

	got, err := catalog.RecipeTags.Get(ctx, recipe.ID, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, tag.ID, got.TagID)

	all, err := catalog.RecipeTags.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	left, right := catalog.RecipeTags.Columns()
	assert.Equal(t, "recipe_id", left)
	assert.Equal(t, "tag_id", right)

	require.NoError(t, catalog.RecipeTags.Delete(ctx, recipe.ID, tag.ID))
	assert.ErrorIs(t, catalog.RecipeTags.Delete(ctx, recipe.ID, tag.ID), service.ErrNotFound)
	_, err = catalog.RecipeTags.Get(ctx, recipe.ID, tag.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
