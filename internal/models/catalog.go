package models

import (
	"time"
)

type Tag struct {
	ID   uint   `gorm:"column:tag_id;primaryKey;autoIncrement" json:"tag_id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (Tag) TableName() string {
	return "tag"
}

type Ingredient struct {
	ID   uint   `gorm:"column:ingredient_id;primaryKey;autoIncrement" json:"ingredient_id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (Ingredient) TableName() string {
	return "ingredient"
}

type Rating struct {
	ID        uint      `gorm:"column:rating_id;primaryKey;autoIncrement" json:"rating_id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	RecipeID  uint      `gorm:"column:recipe_id;not null;index" json:"recipe_id"`
	Score     int       `gorm:"not null;check:score >= 1 AND score <= 5" json:"score"`
	Comment   string    `gorm:"type:text;not null;default:''" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func (Rating) TableName() string {
	return "rating"
}

// Engagement records a user interaction with a recipe (view, share, cook...).
type Engagement struct {
	ID        uint      `gorm:"column:engagement_id;primaryKey;autoIncrement" json:"engagement_id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	RecipeID  uint      `gorm:"column:recipe_id;not null;index" json:"recipe_id"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func (Engagement) TableName() string {
	return "engagement"
}

type RecipeTag struct {
	RecipeID uint `gorm:"column:recipe_id;primaryKey" json:"recipe_id"`
	TagID    uint `gorm:"column:tag_id;primaryKey" json:"tag_id"`
}

func (RecipeTag) TableName() string {
	return "recipe_tag"
}

type RecipeIngredient struct {
	RecipeID     uint `gorm:"column:recipe_id;primaryKey" json:"recipe_id"`
	IngredientID uint `gorm:"column:ingredient_id;primaryKey" json:"ingredient_id"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredient"
}
