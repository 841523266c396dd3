package search

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookatlas/backend/internal/models"
	"github.com/cookatlas/backend/internal/testhelpers"
)

func newCatalog(t *testing.T) (*Executor, []models.Recipe, *sql.DB) {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	seeded := testhelpers.SeedCatalog(t, db)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	return NewExecutor(sqlDB, SQLite, nil), seeded, sqlDB
}

func titles(recipes []models.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}

func search(t *testing.T, e *Executor, params map[string]string, order Order) []string {
	t.Helper()
	got, err := e.Search(context.Background(), ParseFilter(params), order)
	require.NoError(t, err)
	require.NotNil(t, got)
	return titles(got)
}

func TestSearchScenarios(t *testing.T) {
	e, _, _ := newCatalog(t)

	tests := []struct {
		name   string
		params map[string]string
		want   []string
	}{
		{"query in title", map[string]string{"query": "roast"}, []string{"Sunday Roast"}},
		{"query is case-insensitive", map[string]string{"query": "ROAST"}, []string{"Sunday Roast"}},
		{"query in description", map[string]string{"query": "chocolate"}, []string{"Choco Brownies"}},
		{"tags must all match", map[string]string{"tags": "vegan,quick"}, []string{}},
		{"single tag", map[string]string{"tags": "vegan"}, []string{"Vegan Curry"}},
		{"tag on source platform", map[string]string{"tags": "tube"}, []string{"Quick Pasta"}},
		{"tag on skill level", map[string]string{"tags": "advanced"}, []string{"Sunday Roast"}},
		{"tag on different fields", map[string]string{"tags": "beginner,tok"}, []string{"Choco Brownies"}},
		{"tag does not search title", map[string]string{"tags": "brownies"}, []string{}},
		{"cook time range", map[string]string{"min_cook_time": "25", "max_cook_time": "45"}, []string{"Vegan Curry", "Choco Brownies"}},
		{"prep time range", map[string]string{"min_prep_time": "15", "max_prep_time": "20"}, []string{"Vegan Curry", "Choco Brownies"}},
		{"skill level is exact", map[string]string{"skill_level": "Beginner"}, []string{"Quick Pasta"}},
		{"skill level lower case", map[string]string{"skill_level": "beginner"}, []string{"Choco Brownies"}},
		{"skill level upper case", map[string]string{"skill_level": "BEGINNER"}, []string{}},
		{"malformed bound ignored", map[string]string{"query": "roast", "min_cook_time": "abc"}, []string{"Sunday Roast"}},
		{"combined", map[string]string{"query": "a", "tags": "blog", "max_cook_time": "60"}, []string{"Vegan Curry"}},
		{"percent is literal", map[string]string{"query": "%"}, []string{}},
		{"underscore is literal", map[string]string{"query": "_"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, search(t, e, tt.params, Ascending))
		})
	}
}

func TestSearchEmptyFilterReturnsEverything(t *testing.T) {
	e, seeded, _ := newCatalog(t)

	asc := search(t, e, map[string]string{}, Ascending)
	assert.Equal(t, titles(seeded), asc)

	desc := search(t, e, map[string]string{}, Descending)
	assert.Equal(t, []string{"Choco Brownies", "Sunday Roast", "Quick Pasta", "Vegan Curry"}, desc)
}

func TestSearchNullTimesFailBounds(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	testhelpers.CreateRecipe(t, db, models.Recipe{Title: "Mystery Stew"})
	testhelpers.CreateRecipe(t, db, models.Recipe{Title: "Timed Stew", CookTime: testhelpers.IntPtr(10)})
	sqlDB, err := db.DB()
	require.NoError(t, err)
	e := NewExecutor(sqlDB, SQLite, nil)

	assert.Equal(t, []string{"Timed Stew"}, search(t, e, map[string]string{"min_cook_time": "0"}, Ascending))
	assert.Equal(t, []string{"Mystery Stew", "Timed Stew"}, search(t, e, map[string]string{"query": "stew"}, Ascending))
}

func TestSearchLiteralMetacharacters(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	testhelpers.CreateRecipe(t, db, models.Recipe{Title: "100% Rye", Description: "dense"})
	testhelpers.CreateRecipe(t, db, models.Recipe{Title: "Rye", Description: "light"})
	sqlDB, err := db.DB()
	require.NoError(t, err)
	e := NewExecutor(sqlDB, SQLite, nil)

	assert.Equal(t, []string{"100% Rye"}, search(t, e, map[string]string{"query": "0% r"}, Ascending))
}

func TestSearchFoldsNonASCIICase(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	testhelpers.CreateRecipe(t, db, models.Recipe{Title: "CRÈME Brûlée", Description: "custard"})
	testhelpers.CreateRecipe(t, db, models.Recipe{Title: "Jalapeño Poppers", Description: "spicy", SourcePlatform: "ÉPICERIE"})
	sqlDB, err := db.DB()
	require.NoError(t, err)
	e := NewExecutor(sqlDB, SQLite, nil)

	for _, q := range []string{"crème", "CRÈME", "brûlée", "BRÛLÉE"} {
		assert.Equal(t, []string{"CRÈME Brûlée"}, search(t, e, map[string]string{"query": q}, Ascending), q)
	}
	assert.Equal(t, []string{"Jalapeño Poppers"}, search(t, e, map[string]string{"query": "JALAPEÑO"}, Ascending))
	assert.Equal(t, []string{"Jalapeño Poppers"}, search(t, e, map[string]string{"tags": "épicerie"}, Ascending))
}

func TestSearchScansAllColumns(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	user := testhelpers.CreateUser(t, db, "chef", models.RoleRegistered)
	created := testhelpers.CreateRecipe(t, db, models.Recipe{
		CreatorID:      &user.ID,
		Title:          "Focaccia",
		Description:    "Olive oil bread",
		CookTime:       testhelpers.IntPtr(25),
		PrepTime:       testhelpers.IntPtr(120),
		SkillLevel:     "Intermediate",
		SourcePlatform: "blog",
		SourceURL:      "https://example.com/focaccia",
		ImageURL:       testhelpers.StrPtr("https://cdn.example.com/f.jpg"),
		InstructionsMD: testhelpers.StrPtr("# Knead"),
	})
	sqlDB, err := db.DB()
	require.NoError(t, err)

	got, err := NewExecutor(sqlDB, SQLite, nil).Search(context.Background(), Filter{}, Descending)
	require.NoError(t, err)
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, created.ID, r.ID)
	assert.Equal(t, user.ID, *r.CreatorID)
	assert.Equal(t, "Olive oil bread", r.Description)
	assert.Equal(t, 25, *r.CookTime)
	assert.Equal(t, 120, *r.PrepTime)
	assert.Equal(t, "https://example.com/focaccia", r.SourceURL)
	assert.Equal(t, "# Knead", *r.InstructionsMD)
	assert.False(t, r.CreatedAt.IsZero())
}

type failingStore struct{ err error }

func (s failingStore) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, s.err
}

func TestSearchStoreFailure(t *testing.T) {
	cause := errors.New("connection refused")
	e := NewExecutor(failingStore{err: cause}, Postgres, nil)

	got, err := e.Search(context.Background(), Filter{Query: "x"}, Descending)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrSearchFailed)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSearchClosedDatabase(t *testing.T) {
	e, _, sqlDB := newCatalog(t)
	require.NoError(t, sqlDB.Close())

	_, err := e.Search(context.Background(), Filter{}, Ascending)
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestSearchCanceledContext(t *testing.T) {
	e, _, _ := newCatalog(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Search(ctx, Filter{}, Ascending)
	assert.ErrorIs(t, err, ErrSearchFailed)
}

func TestSearchConcurrent(t *testing.T) {
	e, _, _ := newCatalog(t)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f := Filter{Query: "roast"}
			if i%2 == 0 {
				f = Filter{MinCookTime: intp(25), MaxCookTime: intp(45)}
			}
			got, err := e.Search(context.Background(), f, Descending)
			if err == nil && len(got) == 0 {
				err = errors.New("no results")
			}
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestStatement(t *testing.T) {
	e := NewExecutor(failingStore{}, Postgres, nil)

	stmt, args := e.Statement(Filter{SkillLevel: "Advanced"}, Descending)
	assert.True(t, strings.HasPrefix(stmt, "SELECT recipe_id, creator_id, title,"))
	assert.Contains(t, stmt, "FROM recipes WHERE skill_level = $1 ORDER BY recipe_id DESC")
	assert.Equal(t, []any{"Advanced"}, args)

	stmt, args = e.Statement(Filter{}, Ascending)
	assert.True(t, strings.HasSuffix(stmt, "WHERE 1=1 ORDER BY recipe_id ASC"))
	assert.Empty(t, args)
}
