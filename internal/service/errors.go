package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and contain both letters and numbers")
	ErrInvalidResetToken  = errors.New("invalid reset token")
	ErrResetTokenExpired  = errors.New("reset token expired")
	ErrInvalidToken       = errors.New("invalid token")
	ErrStorageUnavailable = errors.New("object storage is not configured")
	ErrInvalidImage       = errors.New("invalid image")
	ErrInvalidField       = errors.New("field cannot be updated")

	ErrEmailInUse        = fmt.Errorf("email %w", ErrAlreadyExists)
	ErrUsernameInUse     = fmt.Errorf("username %w", ErrAlreadyExists)
	ErrAlreadyBookmarked = fmt.Errorf("bookmark %w", ErrAlreadyExists)
)

// notFound maps gorm's missing-row error onto ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
