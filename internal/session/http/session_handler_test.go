package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	authzHTTP "github.com/ovationhq/ovation/internal/authz/http"
	sessionDomain "github.com/ovationhq/ovation/internal/session/domain"
	sessionUseCase "github.com/ovationhq/ovation/internal/session/usecase"
	"github.com/ovationhq/ovation/internal/testutil"
	userDomain "github.com/ovationhq/ovation/internal/user/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockSessionUseCase is a mock implementation of the session UseCase for testing.
type mockSessionUseCase struct {
	mock.Mock
}

func (m *mockSessionUseCase) Login(ctx context.Context, input sessionUseCase.LoginInput) (*sessionUseCase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sessionUseCase.LoginOutput), args.Error(1)
}

func (m *mockSessionUseCase) Logout(ctx context.Context, plainToken string) error {
	args := m.Called(ctx, plainToken)
	return args.Error(0)
}

func (m *mockSessionUseCase) Authenticate(ctx context.Context, plainToken string) (*userDomain.User, error) {
	args := m.Called(ctx, plainToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockSessionUseCase) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newSessionRegistry(t *testing.T) *authzDomain.SchemaRegistry {
	t.Helper()
	registry := authzDomain.NewSchemaRegistry(authzDomain.DefaultCatalog())
	sessionDomain.RegisterSchemas(registry)
	return registry
}

func TestCreateSessionHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &mockSessionUseCase{}
		expiresAt := time.Now().Add(time.Hour)
		useCase.On("Login", mock.Anything, sessionUseCase.LoginInput{
			Username: "maria",
			Password: "Str0ngPass!",
		}).Return(&sessionUseCase.LoginOutput{Token: "plain-token", ExpiresAt: expiresAt}, nil)

		handler := NewSessionHandler(useCase, newSessionRegistry(t), testutil.Logger())
		router := gin.New()
		router.POST("/v1/sessions", handler.CreateSessionHandler)

		body := `{"username":"maria","password":"Str0ngPass!","is_admin":true}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/sessions", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "plain-token")
		useCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidCredentials", func(t *testing.T) {
		useCase := &mockSessionUseCase{}
		useCase.On("Login", mock.Anything, mock.Anything).
			Return(nil, sessionDomain.ErrInvalidCredentials)

		handler := NewSessionHandler(useCase, newSessionRegistry(t), testutil.Logger())
		router := gin.New()
		router.POST("/v1/sessions", handler.CreateSessionHandler)

		body := `{"username":"maria","password":"wrong"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/sessions", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_MalformedBody", func(t *testing.T) {
		handler := NewSessionHandler(&mockSessionUseCase{}, newSessionRegistry(t), testutil.Logger())
		router := gin.New()
		router.POST("/v1/sessions", handler.CreateSessionHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/sessions", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestDeleteSessionHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		useCase := &mockSessionUseCase{}
		useCase.On("Logout", mock.Anything, "plain-token").Return(nil)

		handler := NewSessionHandler(useCase, newSessionRegistry(t), testutil.Logger())
		router := gin.New()
		router.DELETE("/v1/sessions", handler.DeleteSessionHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/sessions", nil)
		req.Header.Set("Authorization", "Bearer plain-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_MissingToken", func(t *testing.T) {
		handler := NewSessionHandler(&mockSessionUseCase{}, newSessionRegistry(t), testutil.Logger())
		router := gin.New()
		router.DELETE("/v1/sessions", handler.DeleteSessionHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/sessions", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestIdentityMiddleware(t *testing.T) {
	catalog := authzDomain.DefaultCatalog()

	newRouter := func(useCase sessionUseCase.UseCase) (*gin.Engine, *authzDomain.Identity) {
		var captured authzDomain.Identity
		router := gin.New()
		router.Use(IdentityMiddleware(useCase, catalog, testutil.Logger()))
		router.GET("/whoami", func(c *gin.Context) {
			captured = authzHTTPIdentity(c)
			c.Status(http.StatusOK)
		})
		return router, &captured
	}

	t.Run("NoHeaderResolvesAnonymous", func(t *testing.T) {
		router, captured := newRouter(&mockSessionUseCase{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, captured.IsAnonymous())
	})

	t.Run("ValidTokenBuildsIdentity", func(t *testing.T) {
		useCase := &mockSessionUseCase{}
		userID := uuid.Must(uuid.NewV7())
		useCase.On("Authenticate", mock.Anything, "plain-token").Return(&userDomain.User{
			ID:       userID,
			Username: "maria",
			Features: []string{"read:lesson", "not:in:catalog"},
		}, nil)

		router, captured := newRouter(useCase)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer plain-token")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID, captured.ID)
		assert.True(t, captured.Can(authzDomain.FeatureReadLesson))
		assert.False(t, captured.Can("not:in:catalog"))
	})

	t.Run("InvalidTokenGets401", func(t *testing.T) {
		useCase := &mockSessionUseCase{}
		useCase.On("Authenticate", mock.Anything, "bogus").
			Return(nil, sessionDomain.ErrSessionNotFound)

		router, _ := newRouter(useCase)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// authzHTTPIdentity reads the identity the middleware stored on the request.
func authzHTTPIdentity(c *gin.Context) authzDomain.Identity {
	return authzHTTP.IdentityOrAnonymous(c.Request.Context())
}
