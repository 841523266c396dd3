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

func TestBookmarks(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewBookmarkService(db)
	ctx := context.Background()

	user := testhelpers.CreateUser(t, db, "saver", models.RoleRegistered)
	recipes := testhelpers.SeedCatalog(t, db)

	bookmarked, err := svc.IsBookmarked(ctx, user.ID, recipes[0].ID)
	require.NoError(t, err)
	assert.False(t, bookmarked)

	first, err := svc.AddBookmark(ctx, user.ID, recipes[0].ID)
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	_, err = svc.AddBookmark(ctx, user.ID, recipes[2].ID)
	require.NoError(t, err)

	_, err = svc.AddBookmark(ctx, user.ID, recipes[0].ID)
	assert.ErrorIs(t, err, service.ErrAlreadyBookmarked)

	bookmarked, err = svc.IsBookmarked(ctx, user.ID, recipes[0].ID)
	require.NoError(t, err)
	assert.True(t, bookmarked)

	saved, err := svc.BookmarkedRecipes(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sunday Roast", "Vegan Curry"}, recipeTitles(saved))

	all, err := svc.ListBookmarks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.RemoveBookmark(ctx, user.ID, recipes[0].ID))
	assert.ErrorIs(t, svc.RemoveBookmark(ctx, user.ID, recipes[0].ID), service.ErrNotFound)

	saved, err = svc.BookmarkedRecipes(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Empty(t, saved)
}
