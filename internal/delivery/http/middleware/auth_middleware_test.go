package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"espacestage-backend/internal/delivery/http/middleware"
	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/auth"
)

type stubAuthUsecase struct {
	mock.Mock
}

func (m *stubAuthUsecase) Register(ctx context.Context, email, password string, role domain.Role) (*domain.Account, error) {
	args := m.Called(ctx, email, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *stubAuthUsecase) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}
func (m *stubAuthUsecase) GetCurrentAccount(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// whoami mounts a route behind OptionalAuth that echoes the resolved
// account ID, zero when anonymous.
func whoamiRouter(tokens *auth.TokenService, authUC domain.AuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", middleware.OptionalAuth(tokens, authUC), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"account_id": c.GetInt64(string(domain.KeyAccountID))})
	})
	return r
}

func TestOptionalAuth(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	student := &domain.Account{ID: 7, Email: "lea@example.com", Role: domain.RoleStudent, Status: domain.AccountActive}

	t.Run("Should resolve the account from the auth_token cookie", func(t *testing.T) {
		token, _, err := tokens.Generate(student.ID, student.Email, string(student.Role))
		assert.NoError(t, err)

		authUC := new(stubAuthUsecase)
		authUC.On("GetCurrentAccount", mock.Anything, int64(7)).Return(student, nil)

		r := whoamiRouter(tokens, authUC)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"account_id":7`)
	})

	t.Run("Should resolve the account from the bearer header", func(t *testing.T) {
		token, _, err := tokens.Generate(student.ID, student.Email, string(student.Role))
		assert.NoError(t, err)

		authUC := new(stubAuthUsecase)
		authUC.On("GetCurrentAccount", mock.Anything, int64(7)).Return(student, nil)

		r := whoamiRouter(tokens, authUC)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"account_id":7`)
	})

	t.Run("Should pass anonymous requests through unauthenticated", func(t *testing.T) {
		authUC := new(stubAuthUsecase)

		r := whoamiRouter(tokens, authUC)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"account_id":0`)
		authUC.AssertNotCalled(t, "GetCurrentAccount", mock.Anything, mock.Anything)
	})

	t.Run("Should treat a garbage token as anonymous", func(t *testing.T) {
		authUC := new(stubAuthUsecase)

		r := whoamiRouter(tokens, authUC)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "not-a-token"})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"account_id":0`)
	})
}
