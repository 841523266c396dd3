package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cookatlas/backend/internal/mocks"
	"github.com/cookatlas/backend/internal/models"
	"github.com/cookatlas/backend/internal/service"
)

func identifyRouter(tokens *mocks.MockTokenService, users *mocks.MockUserService, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(Identify(tokens, users))
	handlers := append(extra, func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, user.Username)
	})
	r.Any("/", handlers...)
	return r
}

func TestIdentify(t *testing.T) {
	alice := &models.User{ID: 7, Username: "alice", Role: models.RoleRegistered}

	tests := []struct {
		name     string
		prepare  func(req *http.Request)
		setup    func(tokens *mocks.MockTokenService, users *mocks.MockUserService)
		method   string
		body     string
		wantCode int
		wantBody string
	}{
		{
			name:     "anonymous",
			method:   http.MethodGet,
			wantCode: http.StatusOK,
			wantBody: "anonymous",
		},
		{
			name:   "bearer token",
			method: http.MethodGet,
			prepare: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer good")
			},
			setup: func(tokens *mocks.MockTokenService, users *mocks.MockUserService) {
				tokens.On("Validate", "good").Return(&service.SessionClaims{UserID: 7}, nil)
				users.On("GetUser", mock.Anything, uint(7)).Return(alice, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "alice",
		},
		{
			name:   "bad token",
			method: http.MethodGet,
			prepare: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer bad")
			},
			setup: func(tokens *mocks.MockTokenService, users *mocks.MockUserService) {
				tokens.On("Validate", "bad").Return(nil, service.ErrInvalidToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "malformed authorization header",
			method: http.MethodGet,
			prepare: func(req *http.Request) {
				req.Header.Set("Authorization", "Token abc")
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "user id header",
			method: http.MethodGet,
			prepare: func(req *http.Request) {
				req.Header.Set(HeaderUserID, "7")
			},
			setup: func(tokens *mocks.MockTokenService, users *mocks.MockUserService) {
				users.On("GetUser", mock.Anything, uint(7)).Return(alice, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "alice",
		},
		{
			name:   "user id query",
			method: http.MethodGet,
			prepare: func(req *http.Request) {
				req.URL.RawQuery = "user_id=7"
			},
			setup: func(tokens *mocks.MockTokenService, users *mocks.MockUserService) {
				users.On("GetUser", mock.Anything, uint(7)).Return(alice, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "alice",
		},
		{
			name:   "user id in json body",
			method: http.MethodPost,
			body:   `{"user_id":7,"title":"Soup"}`,
			setup: func(tokens *mocks.MockTokenService, users *mocks.MockUserService) {
				users.On("GetUser", mock.Anything, uint(7)).Return(alice, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "alice",
		},
		{
			name:   "invalid user id header",
			method: http.MethodGet,
			prepare: func(req *http.Request) {
				req.Header.Set(HeaderUserID, "abc")
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "unknown user",
			method: http.MethodGet,
			prepare: func(req *http.Request) {
				req.Header.Set(HeaderUserID, "99")
			},
			setup: func(tokens *mocks.MockTokenService, users *mocks.MockUserService) {
				users.On("GetUser", mock.Anything, uint(99)).Return(nil, service.ErrNotFound)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "lookup failure",
			method: http.MethodGet,
			prepare: func(req *http.Request) {
				req.Header.Set(HeaderUserID, "7")
			},
			setup: func(tokens *mocks.MockTokenService, users *mocks.MockUserService) {
				users.On("GetUser", mock.Anything, uint(7)).Return(nil, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := new(mocks.MockTokenService)
			users := new(mocks.MockUserService)
			if tt.setup != nil {
				tt.setup(tokens, users)
			}

			req := httptest.NewRequest(tt.method, "/", strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			if tt.prepare != nil {
				tt.prepare(req)
			}
			w := httptest.NewRecorder()
			identifyRouter(tokens, users).ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
			tokens.AssertExpectations(t)
			users.AssertExpectations(t)
		})
	}
}

func TestIdentifyKeepsBodyForHandlers(t *testing.T) {
	tokens := new(mocks.MockTokenService)
	users := new(mocks.MockUserService)
	users.On("GetUser", mock.Anything, uint(7)).Return(&models.User{ID: 7, Username: "alice"}, nil)

	r := gin.New()
	r.Use(Identify(tokens, users))
	r.POST("/", func(c *gin.Context) {
		var req struct {
			Title string `json:"title"`
		}
		require.NoError(t, c.ShouldBindBodyWith(&req, binding.JSON))
		c.String(http.StatusOK, req.Title)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"user_id":7,"title":"Soup"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Soup", w.Body.String())
}

func TestRequireUserAndAdminOnly(t *testing.T) {
	users := new(mocks.MockUserService)
	users.On("GetUser", mock.Anything, uint(1)).Return(&models.User{ID: 1, Username: "root", Role: models.RoleAdmin}, nil)
	users.On("GetUser", mock.Anything, uint(2)).Return(&models.User{ID: 2, Username: "bob", Role: models.RoleRegistered}, nil)

	tests := []struct {
		name     string
		guard    gin.HandlerFunc
		userID   string
		wantCode int
	}{
		{"require user anonymous", RequireUser(), "", http.StatusUnauthorized},
		{"require user registered", RequireUser(), "2", http.StatusOK},
		{"admin only anonymous", AdminOnly(), "", http.StatusUnauthorized},
		{"admin only registered", AdminOnly(), "2", http.StatusForbidden},
		{"admin only admin", AdminOnly(), "1", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := identifyRouter(new(mocks.MockTokenService), users, tt.guard)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.userID != "" {
				req.Header.Set(HeaderUserID, tt.userID)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
