// Package http provides HTTP handlers for lesson management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	"github.com/ovationhq/ovation/internal/httputil"
	"github.com/ovationhq/ovation/internal/lesson/domain"
	lessonUseCase "github.com/ovationhq/ovation/internal/lesson/usecase"
)

// LessonHandler handles HTTP requests for lesson operations. Lesson
// features are unscoped, so the route guard does all the authorization.
type LessonHandler struct {
	useCase  lessonUseCase.UseCase
	registry *authzDomain.SchemaRegistry
	logger   *slog.Logger
}

// NewLessonHandler creates a new lesson handler with required dependencies.
func NewLessonHandler(
	useCase lessonUseCase.UseCase,
	registry *authzDomain.SchemaRegistry,
	logger *slog.Logger,
) *LessonHandler {
	return &LessonHandler{
		useCase:  useCase,
		registry: registry,
		logger:   logger,
	}
}

func lessonFields(lesson *domain.Lesson) map[string]any {
	return map[string]any{
		"id":          lesson.ID,
		"title":       lesson.Title,
		"description": lesson.Description,
		"video_url":   lesson.VideoURL,
		"access_tier": lesson.AccessTier,
		"created_at":  lesson.CreatedAt,
		"updated_at":  lesson.UpdatedAt,
	}
}

// CreateLessonHandler publishes a new lesson.
// POST /v1/lessons - guarded by create:lesson. Returns 201.
func (h *LessonHandler) CreateLessonHandler(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var input lessonUseCase.CreateLessonInput
	filtered := h.registry.FilterInput(authzDomain.FeatureCreateLesson, raw)
	if err := httputil.DecodeMap(filtered, &input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	lesson, err := h.useCase.CreateLesson(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated,
		h.registry.FilterOutput(authzDomain.FeatureCreateLesson, lessonFields(lesson)))
}

// GetLessonHandler retrieves one lesson.
// GET /v1/lessons/:id - guarded by read:lesson.
func (h *LessonHandler) GetLessonHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrLessonNotFound, h.logger)
		return
	}

	lesson, err := h.useCase.GetLesson(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK,
		h.registry.FilterOutput(authzDomain.FeatureReadLesson, lessonFields(lesson)))
}

// ListLessonsHandler lists lessons, newest first.
// GET /v1/lessons - guarded by read:lesson.
func (h *LessonHandler) ListLessonsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	lessons, err := h.useCase.ListLessons(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	rows := make([]map[string]any, 0, len(lessons))
	for _, lesson := range lessons {
		rows = append(rows, lessonFields(lesson))
	}

	c.JSON(http.StatusOK, gin.H{
		"lessons": h.registry.FilterOutputs(authzDomain.FeatureReadLesson, rows),
		"offset":  offset,
		"limit":   limit,
	})
}

// UpdateLessonHandler updates a lesson.
// PUT /v1/lessons/:id - guarded by update:lesson.
func (h *LessonHandler) UpdateLessonHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrLessonNotFound, h.logger)
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var input lessonUseCase.UpdateLessonInput
	filtered := h.registry.FilterInput(authzDomain.FeatureUpdateLesson, raw)
	if err := httputil.DecodeMap(filtered, &input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	lesson, err := h.useCase.UpdateLesson(c.Request.Context(), id, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK,
		h.registry.FilterOutput(authzDomain.FeatureUpdateLesson, lessonFields(lesson)))
}

// DeleteLessonHandler removes a lesson.
// DELETE /v1/lessons/:id - guarded by delete:lesson. Returns 204.
func (h *LessonHandler) DeleteLessonHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrLessonNotFound, h.logger)
		return
	}

	if err := h.useCase.DeleteLesson(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
