package models

import (
	"time"
)

// Recipe is a catalog entry. Timing fields are minutes; nil means unknown.
type Recipe struct {
	ID             uint      `gorm:"column:recipe_id;primaryKey;autoIncrement" json:"recipe_id"`
	CreatorID      *uint     `gorm:"column:creator_id;index" json:"creator_id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Description    string    `gorm:"type:text;not null;default:''" json:"description"`
	CookTime       *int      `gorm:"column:cook_time;check:cook_time >= 0" json:"cook_time"`
	PrepTime       *int      `gorm:"column:prep_time;check:prep_time >= 0" json:"prep_time"`
	SkillLevel     string    `gorm:"size:50;not null;default:''" json:"skill_level"`
	SourcePlatform string    `gorm:"size:100;not null;default:''" json:"source_platform"`
	SourceURL      string    `gorm:"column:source_url;size:500;not null;default:''" json:"source_url"`
	ImageURL       *string   `gorm:"column:image_url;size:500" json:"image_url"`
	InstructionsMD *string   `gorm:"column:instructions_md;type:text" json:"instructions_md"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeColumns lists the recipes columns in the order ScanDest expects them.
var RecipeColumns = []string{
	"recipe_id",
	"creator_id",
	"title",
	"description",
	"cook_time",
	"prep_time",
	"skill_level",
	"source_platform",
	"source_url",
	"image_url",
	"instructions_md",
	"created_at",
	"updated_at",
}

// ScanDest returns scan destinations matching RecipeColumns.
func (r *Recipe) ScanDest() []any {
	return []any{
		&r.ID,
		&r.CreatorID,
		&r.Title,
		&r.Description,
		&r.CookTime,
		&r.PrepTime,
		&r.SkillLevel,
		&r.SourcePlatform,
		&r.SourceURL,
		&r.ImageURL,
		&r.InstructionsMD,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}
