// Package http provides HTTP handlers for presentation management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	authzHTTP "github.com/ovationhq/ovation/internal/authz/http"
	"github.com/ovationhq/ovation/internal/httputil"
	"github.com/ovationhq/ovation/internal/presentation/domain"
	presentationUseCase "github.com/ovationhq/ovation/internal/presentation/usecase"
)

// PresentationHandler handles HTTP requests for presentation operations.
// Presentation features are unscoped, so the route guard does all the
// authorization and the handlers only project fields.
type PresentationHandler struct {
	useCase  presentationUseCase.UseCase
	registry *authzDomain.SchemaRegistry
	logger   *slog.Logger
}

// NewPresentationHandler creates a new presentation handler with required dependencies.
func NewPresentationHandler(
	useCase presentationUseCase.UseCase,
	registry *authzDomain.SchemaRegistry,
	logger *slog.Logger,
) *PresentationHandler {
	return &PresentationHandler{
		useCase:  useCase,
		registry: registry,
		logger:   logger,
	}
}

func presentationFields(presentation *domain.Presentation) map[string]any {
	return map[string]any{
		"id":           presentation.ID,
		"title":        presentation.Title,
		"description":  presentation.Description,
		"location":     presentation.Location,
		"scheduled_at": presentation.ScheduledAt,
		"created_by":   presentation.CreatedBy,
		"created_at":   presentation.CreatedAt,
		"updated_at":   presentation.UpdatedAt,
	}
}

// CreatePresentationHandler schedules a new presentation.
// POST /v1/presentations - guarded by create:presentation. Returns 201.
func (h *PresentationHandler) CreatePresentationHandler(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var input presentationUseCase.CreatePresentationInput
	filtered := h.registry.FilterInput(authzDomain.FeatureCreatePresentation, raw)
	if err := httputil.DecodeMap(filtered, &input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	identity := authzHTTP.IdentityOrAnonymous(c.Request.Context())
	presentation, err := h.useCase.CreatePresentation(c.Request.Context(), identity.ID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated,
		h.registry.FilterOutput(authzDomain.FeatureCreatePresentation, presentationFields(presentation)))
}

// GetPresentationHandler retrieves one presentation.
// GET /v1/presentations/:id - guarded by read:presentation.
func (h *PresentationHandler) GetPresentationHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrPresentationNotFound, h.logger)
		return
	}

	presentation, err := h.useCase.GetPresentation(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK,
		h.registry.FilterOutput(authzDomain.FeatureReadPresentation, presentationFields(presentation)))
}

// ListPresentationsHandler lists presentations ordered by scheduled time.
// GET /v1/presentations - guarded by read:presentation.
func (h *PresentationHandler) ListPresentationsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	presentations, err := h.useCase.ListPresentations(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	rows := make([]map[string]any, 0, len(presentations))
	for _, presentation := range presentations {
		rows = append(rows, presentationFields(presentation))
	}

	c.JSON(http.StatusOK, gin.H{
		"presentations": h.registry.FilterOutputs(authzDomain.FeatureReadPresentation, rows),
		"offset":        offset,
		"limit":         limit,
	})
}

// UpdatePresentationHandler updates a presentation.
// PUT /v1/presentations/:id - guarded by update:presentation.
func (h *PresentationHandler) UpdatePresentationHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrPresentationNotFound, h.logger)
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var input presentationUseCase.UpdatePresentationInput
	filtered := h.registry.FilterInput(authzDomain.FeatureUpdatePresentation, raw)
	if err := httputil.DecodeMap(filtered, &input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	presentation, err := h.useCase.UpdatePresentation(c.Request.Context(), id, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK,
		h.registry.FilterOutput(authzDomain.FeatureUpdatePresentation, presentationFields(presentation)))
}

// DeletePresentationHandler removes a presentation.
// DELETE /v1/presentations/:id - guarded by delete:presentation. Returns 204.
func (h *PresentationHandler) DeletePresentationHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrPresentationNotFound, h.logger)
		return
	}

	if err := h.useCase.DeletePresentation(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
