package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	"github.com/ovationhq/ovation/internal/httputil"
	sessionDomain "github.com/ovationhq/ovation/internal/session/domain"
	sessionUseCase "github.com/ovationhq/ovation/internal/session/usecase"
)

// SessionHandler handles HTTP requests for login and logout.
type SessionHandler struct {
	useCase  sessionUseCase.UseCase
	registry *authzDomain.SchemaRegistry
	logger   *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(
	useCase sessionUseCase.UseCase,
	registry *authzDomain.SchemaRegistry,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		useCase:  useCase,
		registry: registry,
		logger:   logger,
	}
}

// CreateSessionHandler logs a user in and returns the plain session token.
// POST /v1/sessions - guarded by create:session, which the anonymous
// identity holds. Returns 201 Created with the token and expiration.
func (h *SessionHandler) CreateSessionHandler(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var input sessionUseCase.LoginInput
	filtered := h.registry.FilterInput(authzDomain.FeatureCreateSession, raw)
	if err := httputil.DecodeMap(filtered, &input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	output, err := h.useCase.Login(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := map[string]any{
		"token":      output.Token,
		"expires_at": output.ExpiresAt,
	}
	c.JSON(http.StatusCreated, h.registry.FilterOutput(authzDomain.FeatureCreateSession, response))
}

// DeleteSessionHandler logs the current session out.
// DELETE /v1/sessions - guarded by delete:session. The session to delete is
// the one whose token authenticated this request. Returns 204 No Content.
func (h *SessionHandler) DeleteSessionHandler(c *gin.Context) {
	plainToken := bearerToken(c)
	if plainToken == "" {
		httputil.HandleErrorGin(c, sessionDomain.ErrSessionNotFound, h.logger)
		return
	}

	if err := h.useCase.Logout(c.Request.Context(), plainToken); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
