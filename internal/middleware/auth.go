package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/cookatlas/backend/internal/models"
	"github.com/cookatlas/backend/internal/service"
)

// Context keys set by Identify.
const (
	ContextUserID = "user_id"
	ContextUser   = "user"
)

// HeaderUserID identifies the caller when no session token is sent.
const HeaderUserID = "X-User-ID"

// TokenValidator validates session tokens.
type TokenValidator interface {
	Validate(token string) (*service.SessionClaims, error)
}

// UserLookup loads the identified user.
type UserLookup interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// Identify resolves the caller from a Bearer session token, the X-User-ID
// header, a user_id query parameter or a user_id field of a JSON body, in
// that order. Requests without any of them continue anonymously; a bad
// token or an unknown user is rejected with 401.
func Identify(tokens TokenValidator, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := callerID(c, tokens)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized", "error": err.Error()})
			return
		}
		if id == 0 {
			c.Next()
			return
		}

		user, err := users.GetUser(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized", "error": "unknown user"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUser, user)
		c.Next()
	}
}

func callerID(c *gin.Context, tokens TokenValidator) (uint, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return 0, errors.New("invalid authorization header format")
		}
		claims, err := tokens.Validate(parts[1])
		if err != nil {
			return 0, err
		}
		return claims.UserID, nil
	}

	if raw := c.GetHeader(HeaderUserID); raw != "" {
		return parseID(raw)
	}
	if raw := c.Query("user_id"); raw != "" {
		return parseID(raw)
	}

	if c.ContentType() == binding.MIMEJSON && c.Request.ContentLength != 0 {
		var body struct {
			UserID *uint `json:"user_id"`
		}
		// The body is cached so handlers can bind it again with
		// ShouldBindBodyWith.
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err == nil && body.UserID != nil {
			return *body.UserID, nil
		}
	}
	return 0, nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid user id")
	}
	return uint(id), nil
}

// CurrentUser returns the user set by Identify.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// RequireUser rejects anonymous requests.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		c.Next()
	}
}

// AdminOnly rejects anonymous requests with 401 and non-admins with 403.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}
		c.Next()
	}
}
