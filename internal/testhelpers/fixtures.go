package testhelpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/cookatlas/backend/internal/models"
)

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// CreateRecipe inserts r and returns it with its assigned ID.
func CreateRecipe(t *testing.T, db *gorm.DB, r models.Recipe) models.Recipe {
	t.Helper()
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("failed to create recipe %q: %v", r.Title, err)
	}
	return r
}

// CreateUser inserts a user with an unusable password hash.
func CreateUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	u := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-hash",
		Role:         role,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return u
}

// SeedCatalog inserts four recipes covering free text, tags, cook times and
// skill levels, in this order: Vegan Curry, Quick Pasta, Sunday Roast,
// Choco Brownies.
func SeedCatalog(t *testing.T, db *gorm.DB) []models.Recipe {
	t.Helper()
	fixtures := []models.Recipe{
		{
			Title:          "Vegan Curry",
			Description:    "A fragrant vegan chickpea curry",
			CookTime:       IntPtr(40),
			PrepTime:       IntPtr(15),
			SkillLevel:     "Intermediate",
			SourcePlatform: "blog",
		},
		{
			Title:          "Quick Pasta",
			Description:    "Quick garlic pasta for busy nights",
			CookTime:       IntPtr(20),
			PrepTime:       IntPtr(5),
			SkillLevel:     "Beginner",
			SourcePlatform: "youtube",
		},
		{
			Title:          "Sunday Roast",
			Description:    "Slow cooked beef with vegetables",
			CookTime:       IntPtr(90),
			PrepTime:       IntPtr(30),
			SkillLevel:     "Advanced",
			SourcePlatform: "cookbook",
		},
		{
			Title:          "Choco Brownies",
			Description:    "Fudgy chocolate squares",
			CookTime:       IntPtr(30),
			PrepTime:       IntPtr(20),
			SkillLevel:     "beginner",
			SourcePlatform: "tiktok",
		},
	}
	for i := range fixtures {
		fixtures[i] = CreateRecipe(t, db, fixtures[i])
	}
	return fixtures
}
