package service

import (
	"gorm.io/gorm"

	"github.com/cookatlas/backend/internal/models"
)

// Catalog groups the plain CRUD resources and link tables.
type Catalog struct {
	Tags          *Resource[models.Tag]
	Ingredients   *Resource[models.Ingredient]
	Ratings       *Resource[models.Rating]
	MealPlans     *Resource[models.MealPlan]
	ShoppingLists *Resource[models.ShoppingList]
	Engagements   *Resource[models.Engagement]

	RecipeTags              *Link[models.RecipeTag]
	RecipeIngredients       *Link[models.RecipeIngredient]
	MealPlanRecipes         *Link[models.MealPlanRecipe]
	ShoppingListIngredients *Link[models.ShoppingListIngredient]
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{
		Tags:          NewResource[models.Tag](db, "tag_id", "name"),
		Ingredients:   NewResource[models.Ingredient](db, "ingredient_id", "name"),
		Ratings:       NewResource[models.Rating](db, "rating_id", "score", "comment"),
		MealPlans:     NewResource[models.MealPlan](db, "meal_plan_id", "name", "description"),
		ShoppingLists: NewResource[models.ShoppingList](db, "shopping_list_id", "user_id"),
		Engagements:   NewResource[models.Engagement](db, "engagement_id", "type"),

		RecipeTags: NewLink(db, "recipe_id", "tag_id", func(a, b uint) models.RecipeTag {
			return models.RecipeTag{RecipeID: a, TagID: b}
		}),
		RecipeIngredients: NewLink(db, "recipe_id", "ingredient_id", func(a, b uint) models.RecipeIngredient {
			return models.RecipeIngredient{RecipeID: a, IngredientID: b}
		}),
		MealPlanRecipes: NewLink(db, "meal_plan_id", "recipe_id", func(a, b uint) models.MealPlanRecipe {
			return models.MealPlanRecipe{MealPlanID: a, RecipeID: b}
		}),
		ShoppingListIngredients: NewLink(db, "shopping_list_id", "ingredient_id", func(a, b uint) models.ShoppingListIngredient {
			return models.ShoppingListIngredient{ShoppingListID: a, IngredientID: b}
		}),
	}
}
