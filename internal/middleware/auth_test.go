package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/service"
)

// MockAuthService is a mock implementation of service.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.LoginOutput, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginOutput), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, rawToken string) error {
	args := m.Called(ctx, rawToken)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, rawToken string) (*model.User, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) EnsureDefaultAdmin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestAdminAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	admin := &model.User{ID: uuid.New(), Username: "admin", IsAdmin: true}
	viewer := &model.User{ID: uuid.New(), Username: "viewer", IsAdmin: false}

	tests := []struct {
		name           string
		authHeader     string
		setup          func(*MockAuthService)
		expectedStatus int
	}{
		{
			name:           "missing header",
			authHeader:     "",
			setup:          func(svc *MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic abc123",
			setup:          func(svc *MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer ark_session_bogus",
			setup: func(svc *MockAuthService) {
				svc.On("Authenticate", mock.Anything, "ark_session_bogus").
					Return(nil, service.ErrUnauthorized)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "non-admin user",
			authHeader: "Bearer ark_session_viewer",
			setup: func(svc *MockAuthService) {
				svc.On("Authenticate", mock.Anything, "ark_session_viewer").
					Return(viewer, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:       "admin user passes",
			authHeader: "Bearer ark_session_good",
			setup: func(svc *MockAuthService) {
				svc.On("Authenticate", mock.Anything, "ark_session_good").
					Return(admin, nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAuthService{}
			tt.setup(svc)

			r := gin.New()
			r.GET("/admin/ping", AdminAuth(svc), func(c *gin.Context) {
				user := c.MustGet("user").(*model.User)
				c.JSON(http.StatusOK, gin.H{"username": user.Username})
			})

			req := httptest.NewRequest("GET", "/admin/ping", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
