package models

import (
	"time"
)

const (
	RoleRegistered = "registered"
	RoleAdmin      = "admin"
)

type User struct {
	ID            uint       `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Username      string     `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email         string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash  string     `gorm:"column:password_hash;not null" json:"-"`
	Role          string     `gorm:"size:20;not null;default:'registered'" json:"role"`
	PwResetToken  *string    `gorm:"column:pw_reset_token;size:64;index" json:"-"`
	PwTokenExpiry *time.Time `gorm:"column:pw_token_expiry" json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
