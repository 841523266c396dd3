package models

import (
	"time"
)

type Bookmark struct {
	ID        uint      `gorm:"column:bookmark_id;primaryKey;autoIncrement" json:"bookmark_id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_bookmark_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"column:recipe_id;not null;uniqueIndex:idx_bookmark_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Bookmark) TableName() string {
	return "bookmark"
}
