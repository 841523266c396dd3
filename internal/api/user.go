package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cookatlas/backend/internal/middleware"
	"github.com/cookatlas/backend/internal/models"
	"github.com/cookatlas/backend/internal/service"
)

// UserHandler serves accounts and authentication.
type UserHandler struct {
	users  service.IUserService
	logger *zap.Logger

	// exposeResetLink returns the password reset link in the response,
	// for development without a mail server.
	exposeResetLink bool
}

func NewUserHandler(users service.IUserService, exposeResetLink bool, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, exposeResetLink: exposeResetLink, logger: logger}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/users/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}

	users := router.Group("/users")
	{
		users.GET("", middleware.AdminOnly(), h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", middleware.RequireUser(), h.UpdateUser)
		users.DELETE("/:id", middleware.AdminOnly(), h.DeleteUser)
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterInput
	if !bindJSON(c, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		errorJSON(c, http.StatusBadRequest, "Username, email, and password are required", nil)
		return
	}
	if req.Role == models.RoleAdmin {
		if caller, _ := middleware.CurrentUser(c); !caller.IsAdmin() {
			errorJSON(c, http.StatusForbidden, "Admin access required", nil)
			return
		}
	}

	user, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "User not found", "Registration failed")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		errorJSON(c, http.StatusBadRequest, "Email and password are required", nil)
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		respondError(c, h.logger, err, "User not found", "Login failed")
		return
	}
	c.JSON(http.StatusOK, LoginResponse{User: user, Token: token})
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		errorJSON(c, http.StatusBadRequest, "Email is required", nil)
		return
	}

	link, err := h.users.RequestPasswordReset(c.Request.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		respondError(c, h.logger, err, "User not found", "Failed to process password reset request")
		return
	}

	resp := gin.H{"message": "Password reset link sent to your email"}
	if h.exposeResetLink {
		resp["resetLink"] = link
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		errorJSON(c, http.StatusBadRequest, "Token and new password are required", nil)
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		respondError(c, h.logger, err, "User not found", "Failed to reset password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully"})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "User not found", "Server error")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id", "User not found")
	if !ok {
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "User not found", "Failed to fetch user profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser lets users change their own profile; admins may change any.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id", "User not found")
	if !ok {
		return
	}
	if caller, _ := middleware.CurrentUser(c); caller.ID != id && !caller.IsAdmin() {
		errorJSON(c, http.StatusForbidden, "You can only update your own profile", nil)
		return
	}

	var req service.UserUpdate
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.users.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, err, "User not found", "Failed to update user profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id", "User not found")
	if !ok {
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "User not found", "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
