package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/cookatlas/backend/internal/models"
)

// MockEmailService is a mock implementation of service.IEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

func (m *MockEmailService) SendPasswordResetEmail(user *models.User, link string) error {
	return m.Called(user, link).Error(0)
}

// MockObjectStore is a mock implementation of service.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) PutObject(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, key, contentType, body, size)
	return args.String(0), args.Error(1)
}
