// Package http provides HTTP handlers for user management operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	authzHTTP "github.com/ovationhq/ovation/internal/authz/http"
	"github.com/ovationhq/ovation/internal/httputil"
	"github.com/ovationhq/ovation/internal/user/domain"
	userUseCase "github.com/ovationhq/ovation/internal/user/usecase"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	useCase  userUseCase.UseCase
	guard    *authzHTTP.Guard
	registry *authzDomain.SchemaRegistry
	logger   *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(
	useCase userUseCase.UseCase,
	guard *authzHTTP.Guard,
	registry *authzDomain.SchemaRegistry,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		useCase:  useCase,
		guard:    guard,
		registry: registry,
		logger:   logger,
	}
}

// userFields flattens a user into the full field map; projection decides
// which keys the caller actually sees.
func userFields(user *domain.User) map[string]any {
	return map[string]any{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"full_name":  user.FullName,
		"features":   user.Features,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}
}

// CreateUserHandler registers a new user.
// POST /v1/users - guarded by create:user, which the anonymous identity
// holds. Returns 201 Created with the projected user.
func (h *UserHandler) CreateUserHandler(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var input userUseCase.RegisterUserInput
	filtered := h.registry.FilterInput(authzDomain.FeatureCreateUser, raw)
	if err := httputil.DecodeMap(filtered, &input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	user, err := h.useCase.RegisterUser(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, h.registry.FilterOutput(authzDomain.FeatureCreateUser, userFields(user)))
}

// GetUserHandler retrieves a user by username.
// GET /v1/users/:username - the scope resolves per ownership: reading your
// own record requires read:user:self, anyone else's read:user:other. The
// response is projected through the schema of the feature that authorized it.
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	user, err := h.useCase.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	identity := authzHTTP.IdentityOrAnonymous(c.Request.Context())
	scoped, allowed := h.guard.AllowOn(c.Request.Context(), identity, "read:user", user)
	if !allowed {
		httputil.HandleErrorGin(c, authzDomain.DenyError(identity, scoped), h.logger)
		return
	}

	c.JSON(http.StatusOK, h.registry.FilterOutput(scoped, userFields(user)))
}

// UpdateUserHandler updates a user's profile.
// PUT /v1/users/:username - scope resolves per ownership (update:user:self
// or update:user:other); both request and response are projected through
// the resolved feature's schema.
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	user, err := h.useCase.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	identity := authzHTTP.IdentityOrAnonymous(c.Request.Context())
	scoped, allowed := h.guard.AllowOn(c.Request.Context(), identity, "update:user", user)
	if !allowed {
		httputil.HandleErrorGin(c, authzDomain.DenyError(identity, scoped), h.logger)
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var input userUseCase.UpdateProfileInput
	if err := httputil.DecodeMap(h.registry.FilterInput(scoped, raw), &input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	updated, err := h.useCase.UpdateProfile(c.Request.Context(), user.ID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, h.registry.FilterOutput(scoped, userFields(updated)))
}

// featuresRequest is the body of a feature assignment.
type featuresRequest struct {
	Features []string `json:"features"`
}

// UpdateUserFeaturesHandler replaces a user's granted features.
// PUT /v1/users/:username/features - guarded by update:user:features. An
// unknown feature string rejects the whole assignment with 422.
func (h *UserHandler) UpdateUserFeaturesHandler(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var input featuresRequest
	filtered := h.registry.FilterInput(authzDomain.FeatureUpdateUserFeatures, raw)
	if err := httputil.DecodeMap(filtered, &input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	user, err := h.useCase.UpdateFeatures(c.Request.Context(), c.Param("username"), input.Features)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, h.registry.FilterOutput(authzDomain.FeatureUpdateUserFeatures, userFields(user)))
}

// DeleteUserHandler removes a user.
// DELETE /v1/users/:username - guarded by delete:user. Returns 204.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	user, err := h.useCase.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.useCase.DeleteUser(c.Request.Context(), user.ID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
