package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cookatlas/backend/internal/models"
)

const (
	bcryptCost        = 10
	minPasswordLength = 8
	maxPasswordLength = 100
	resetTokenBytes   = 32
	resetTokenTTL     = time.Hour
)

// UserService handles registration, login, password resets and user
// management.
type UserService struct {
	db          *gorm.DB
	tokens      *TokenService
	email       IEmailService
	frontendURL string
	logger      *zap.Logger
	now         func() time.Time
}

func NewUserService(db *gorm.DB, tokens *TokenService, email IEmailService, frontendURL string, logger *zap.Logger) *UserService {
	return &UserService{
		db:          db,
		tokens:      tokens,
		email:       email,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		logger:      logger,
		now:         time.Now,
	}
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserUpdate is a partial profile update.
type UserUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// ValidatePassword enforces length and a mix of letters and digits.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrWeakPassword
	}
	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return ErrWeakPassword
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *UserService) ensureUnique(tx *gorm.DB, column, value string, exceptID uint, conflict error) error {
	var count int64
	q := tx.Model(&models.User{}).Where(column+" = ?", value)
	if exceptID != 0 {
		q = q.Where("user_id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return conflict
	}
	return nil
}

// Register creates a user. Only "admin" and "registered" are accepted roles;
// anything else becomes "registered".
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	db := s.db.WithContext(ctx)
	if err := s.ensureUnique(db, "email", in.Email, 0, ErrEmailInUse); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(db, "username", in.Username, 0, ErrUsernameInUse); err != nil {
		return nil, err
	}
	if err := ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := models.RoleRegistered
	if in.Role == models.RoleAdmin {
		role = models.RoleAdmin
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.Uint("user_id", user.ID), zap.String("role", role))
	return &user, nil
}

// Login checks credentials and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(&user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}
	return &user, token, nil
}

// RequestPasswordReset stores a one-hour reset token for the user with the
// given email, mails the reset link and returns it.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", notFound(err)
	}

	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)
	expiry := s.now().Add(resetTokenTTL)

	err := s.db.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"pw_reset_token":  token,
		"pw_token_expiry": expiry,
	}).Error
	if err != nil {
		return "", err
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, token)
	if err := s.email.SendPasswordResetEmail(&user, link); err != nil {
		s.logger.Error("Failed to send password reset email", zap.Uint("user_id", user.ID), zap.Error(err))
		return "", err
	}
	return link, nil
}

// ResetPassword sets a new password for the holder of a valid reset token
// and clears the token.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	var user models.User
	if err := s.db.WithContext(ctx).Where("pw_reset_token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if user.PwTokenExpiry == nil || !user.PwTokenExpiry.After(s.now()) {
		return ErrResetTokenExpired
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"password_hash":   hash,
		"pw_reset_token":  nil,
		"pw_token_expiry": nil,
	}).Error
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "user_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Order("user_id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser changes username and/or email, keeping both unique.
func (s *UserService) UpdateUser(ctx context.Context, id uint, u UserUpdate) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	cols := map[string]interface{}{}
	db := s.db.WithContext(ctx)
	if u.Username != nil && *u.Username != user.Username {
		if err := s.ensureUnique(db, "username", *u.Username, id, ErrUsernameInUse); err != nil {
			return nil, err
		}
		cols["username"] = *u.Username
	}
	if u.Email != nil && *u.Email != user.Email {
		if err := s.ensureUnique(db, "email", *u.Email, id, ErrEmailInUse); err != nil {
			return nil, err
		}
		cols["email"] = *u.Email
	}
	if len(cols) == 0 {
		return user, nil
	}

	if err := db.Model(user).Updates(cols).Error; err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes a user with everything they own. Recipes they created
// are kept without a creator.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		planIDs := tx.Model(&models.MealPlan{}).Select("meal_plan_id").Where("user_id = ?", id)
		if err := tx.Where("meal_plan_id IN (?)", planIDs).Delete(&models.MealPlanRecipe{}).Error; err != nil {
			return err
		}
		listIDs := tx.Model(&models.ShoppingList{}).Select("shopping_list_id").Where("user_id = ?", id)
		if err := tx.Where("shopping_list_id IN (?)", listIDs).Delete(&models.ShoppingListIngredient{}).Error; err != nil {
			return err
		}
		for _, owned := range []interface{}{
			&models.Bookmark{},
			&models.Rating{},
			&models.Engagement{},
			&models.MealPlan{},
			&models.ShoppingList{},
		} {
			if err := tx.Where("user_id = ?", id).Delete(owned).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Recipe{}).Where("creator_id = ?", id).Update("creator_id", nil).Error; err != nil {
			return err
		}

		result := tx.Where("user_id = ?", id).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
