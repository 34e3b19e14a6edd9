package http

import (
	"context"
	"encoding/json"
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
	"github.com/ovationhq/ovation/internal/comment/domain"
	commentUseCase "github.com/ovationhq/ovation/internal/comment/usecase"
	presentationDomain "github.com/ovationhq/ovation/internal/presentation/domain"
	"github.com/ovationhq/ovation/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockCommentUseCase is a mock implementation of the comment UseCase for testing.
type mockCommentUseCase struct {
	mock.Mock
}

func (m *mockCommentUseCase) CreateComment(ctx context.Context, authorID, presentationID uuid.UUID, input commentUseCase.CreateCommentInput) (*domain.Comment, error) {
	args := m.Called(ctx, authorID, presentationID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *mockCommentUseCase) GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *mockCommentUseCase) ListComments(ctx context.Context, presentationID uuid.UUID, offset, limit int) ([]*domain.Comment, error) {
	args := m.Called(ctx, presentationID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *mockCommentUseCase) DeleteComment(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newCommentHandler(t *testing.T, useCase commentUseCase.UseCase) *CommentHandler {
	t.Helper()

	catalog := authzDomain.DefaultCatalog()
	registry := authzDomain.NewSchemaRegistry(catalog)
	domain.RegisterSchemas(registry)
	guard := authzHTTP.NewGuard(catalog, nil, testutil.Logger())

	return NewCommentHandler(useCase, guard, registry, testutil.Logger())
}

func identityMiddleware(identity authzDomain.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(authzHTTP.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

func TestCreateCommentHandler(t *testing.T) {
	authorID := uuid.Must(uuid.NewV7())
	presentationID := uuid.Must(uuid.NewV7())
	identity := authzDomain.NewIdentity(authorID, "maria", []authzDomain.Feature{
		authzDomain.FeatureCreateComment,
	})

	t.Run("Success_AuthorComesFromIdentity", func(t *testing.T) {
		useCase := &mockCommentUseCase{}
		useCase.On("CreateComment", mock.Anything, authorID, presentationID, commentUseCase.CreateCommentInput{
			Body: "Lovely staging",
		}).Return(&domain.Comment{
			ID:             uuid.Must(uuid.NewV7()),
			UserID:         authorID,
			PresentationID: presentationID,
			Body:           "Lovely staging",
			CreatedAt:      time.Now(),
		}, nil)

		handler := newCommentHandler(t, useCase)
		router := gin.New()
		router.Use(identityMiddleware(identity))
		router.POST("/v1/presentations/:id/comments", handler.CreateCommentHandler)

		// user_id in the body is not an input field and never overrides the author.
		body := `{"body":"Lovely staging","user_id":"` + uuid.Must(uuid.NewV7()).String() + `"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/presentations/"+presentationID.String()+"/comments", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, authorID.String(), response["user_id"])
		useCase.AssertExpectations(t)
	})

	t.Run("Error_UnknownPresentation", func(t *testing.T) {
		useCase := &mockCommentUseCase{}
		useCase.On("CreateComment", mock.Anything, authorID, presentationID, mock.Anything).
			Return(nil, presentationDomain.ErrPresentationNotFound)

		handler := newCommentHandler(t, useCase)
		router := gin.New()
		router.Use(identityMiddleware(identity))
		router.POST("/v1/presentations/:id/comments", handler.CreateCommentHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/presentations/"+presentationID.String()+"/comments", strings.NewReader(`{"body":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListCommentsHandler(t *testing.T) {
	presentationID := uuid.Must(uuid.NewV7())
	useCase := &mockCommentUseCase{}
	useCase.On("ListComments", mock.Anything, presentationID, 0, 50).Return([]*domain.Comment{
		{ID: uuid.Must(uuid.NewV7()), UserID: uuid.Must(uuid.NewV7()), PresentationID: presentationID, Body: "first"},
		{ID: uuid.Must(uuid.NewV7()), UserID: uuid.Must(uuid.NewV7()), PresentationID: presentationID, Body: "second"},
	}, nil)

	handler := newCommentHandler(t, useCase)
	router := gin.New()
	router.GET("/v1/presentations/:id/comments", handler.ListCommentsHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/presentations/"+presentationID.String()+"/comments", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Comments []map[string]any `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Comments, 2)
	assert.Equal(t, "first", response.Comments[0]["body"])
}

func TestDeleteCommentHandler(t *testing.T) {
	authorID := uuid.Must(uuid.NewV7())
	comment := &domain.Comment{
		ID:             uuid.Must(uuid.NewV7()),
		UserID:         authorID,
		PresentationID: uuid.Must(uuid.NewV7()),
		Body:           "Lovely staging",
	}

	newRouter := func(useCase commentUseCase.UseCase, identity authzDomain.Identity) *gin.Engine {
		handler := newCommentHandler(t, useCase)
		router := gin.New()
		router.Use(identityMiddleware(identity))
		router.DELETE("/v1/comments/:id", handler.DeleteCommentHandler)
		return router
	}

	t.Run("AuthorDeletesOwnComment", func(t *testing.T) {
		useCase := &mockCommentUseCase{}
		useCase.On("GetComment", mock.Anything, comment.ID).Return(comment, nil)
		useCase.On("DeleteComment", mock.Anything, comment.ID).Return(nil)

		identity := authzDomain.NewIdentity(authorID, "maria", []authzDomain.Feature{
			authzDomain.FeatureDeleteCommentSelf,
		})
		router := newRouter(useCase, identity)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/comments/"+comment.ID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		useCase.AssertExpectations(t)
	})

	t.Run("ModeratorDeletesOthersComment", func(t *testing.T) {
		useCase := &mockCommentUseCase{}
		useCase.On("GetComment", mock.Anything, comment.ID).Return(comment, nil)
		useCase.On("DeleteComment", mock.Anything, comment.ID).Return(nil)

		identity := authzDomain.NewIdentity(uuid.Must(uuid.NewV7()), "mod", []authzDomain.Feature{
			authzDomain.FeatureDeleteCommentOther,
		})
		router := newRouter(useCase, identity)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/comments/"+comment.ID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("SelfOnlyGrantDeniedOnOthersComment", func(t *testing.T) {
		useCase := &mockCommentUseCase{}
		useCase.On("GetComment", mock.Anything, comment.ID).Return(comment, nil)

		identity := authzDomain.NewIdentity(uuid.Must(uuid.NewV7()), "u2", []authzDomain.Feature{
			authzDomain.FeatureDeleteCommentSelf,
		})
		router := newRouter(useCase, identity)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/comments/"+comment.ID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "delete:comment:other")
		useCase.AssertNotCalled(t, "DeleteComment", mock.Anything, mock.Anything)
	})

	t.Run("UnknownCommentGets404BeforeScopeCheck", func(t *testing.T) {
		useCase := &mockCommentUseCase{}
		missing := uuid.Must(uuid.NewV7())
		useCase.On("GetComment", mock.Anything, missing).Return(nil, domain.ErrCommentNotFound)

		identity := authzDomain.NewIdentity(uuid.Must(uuid.NewV7()), "u2", nil)
		router := newRouter(useCase, identity)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/comments/"+missing.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("AnonymousGets401", func(t *testing.T) {
		useCase := &mockCommentUseCase{}
		useCase.On("GetComment", mock.Anything, comment.ID).Return(comment, nil)

		router := newRouter(useCase, authzDomain.Anonymous())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/comments/"+comment.ID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
