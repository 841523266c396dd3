package models

import (
	"time"
)

type MealPlan struct {
	ID          uint      `gorm:"column:meal_plan_id;primaryKey;autoIncrement" json:"meal_plan_id"`
	UserID      uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (MealPlan) TableName() string {
	return "meal_plan"
}

type MealPlanRecipe struct {
	MealPlanID uint `gorm:"column:meal_plan_id;primaryKey" json:"meal_plan_id"`
	RecipeID   uint `gorm:"column:recipe_id;primaryKey" json:"recipe_id"`
}

func (MealPlanRecipe) TableName() string {
	return "meal_plan_recipe"
}

type ShoppingList struct {
	ID        uint      `gorm:"column:shopping_list_id;primaryKey;autoIncrement" json:"shopping_list_id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ShoppingList) TableName() string {
	return "shopping_list"
}

type ShoppingListIngredient struct {
	ShoppingListID uint `gorm:"column:shopping_list_id;primaryKey" json:"shopping_list_id"`
	IngredientID   uint `gorm:"column:ingredient_id;primaryKey" json:"ingredient_id"`
}

func (ShoppingListIngredient) TableName() string {
	return "shopping_list_ingredient"
}

// All lists every model managed by auto-migration, parents first.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Recipe{},
		&Bookmark{},
		&Tag{},
		&Ingredient{},
		&RecipeTag{},
		&RecipeIngredient{},
		&Rating{},
		&Engagement{},
		&MealPlan{},
		&MealPlanRecipe{},
		&ShoppingList{},
		&ShoppingListIngredient{},
	}
}
