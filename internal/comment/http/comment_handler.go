// Package http provides HTTP handlers for presentation comments.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	authzHTTP "github.com/ovationhq/ovation/internal/authz/http"
	"github.com/ovationhq/ovation/internal/comment/domain"
	commentUseCase "github.com/ovationhq/ovation/internal/comment/usecase"
	"github.com/ovationhq/ovation/internal/httputil"
	presentationDomain "github.com/ovationhq/ovation/internal/presentation/domain"
)

// CommentHandler handles HTTP requests for comment operations.
type CommentHandler struct {
	useCase  commentUseCase.UseCase
	guard    *authzHTTP.Guard
	registry *authzDomain.SchemaRegistry
	logger   *slog.Logger
}

// NewCommentHandler creates a new comment handler with required dependencies.
func NewCommentHandler(
	useCase commentUseCase.UseCase,
	guard *authzHTTP.Guard,
	registry *authzDomain.SchemaRegistry,
	logger *slog.Logger,
) *CommentHandler {
	return &CommentHandler{
		useCase:  useCase,
		guard:    guard,
		registry: registry,
		logger:   logger,
	}
}

func commentFields(comment *domain.Comment) map[string]any {
	return map[string]any{
		"id":              comment.ID,
		"presentation_id": comment.PresentationID,
		"user_id":         comment.UserID,
		"body":            comment.Body,
		"created_at":      comment.CreatedAt,
	}
}

// CreateCommentHandler attaches a comment to a presentation.
// POST /v1/presentations/:id/comments - guarded by create:comment.
// The author is always the authenticated identity. Returns 201.
func (h *CommentHandler) CreateCommentHandler(c *gin.Context) {
	presentationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, presentationDomain.ErrPresentationNotFound, h.logger)
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var input commentUseCase.CreateCommentInput
	filtered := h.registry.FilterInput(authzDomain.FeatureCreateComment, raw)
	if err := httputil.DecodeMap(filtered, &input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	identity := authzHTTP.IdentityOrAnonymous(c.Request.Context())
	comment, err := h.useCase.CreateComment(c.Request.Context(), identity.ID, presentationID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated,
		h.registry.FilterOutput(authzDomain.FeatureCreateComment, commentFields(comment)))
}

// ListCommentsHandler lists a presentation's comments, oldest first.
// GET /v1/presentations/:id/comments - guarded by read:comment.
func (h *CommentHandler) ListCommentsHandler(c *gin.Context) {
	presentationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, presentationDomain.ErrPresentationNotFound, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	comments, err := h.useCase.ListComments(c.Request.Context(), presentationID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	rows := make([]map[string]any, 0, len(comments))
	for _, comment := range comments {
		rows = append(rows, commentFields(comment))
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": h.registry.FilterOutputs(authzDomain.FeatureReadComment, rows),
		"offset":   offset,
		"limit":    limit,
	})
}

// DeleteCommentHandler removes a comment.
// DELETE /v1/comments/:id - existence resolves first, then the scope: the
// author needs delete:comment:self, anyone else delete:comment:other.
// Returns 204.
func (h *CommentHandler) DeleteCommentHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrCommentNotFound, h.logger)
		return
	}

	comment, err := h.useCase.GetComment(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	identity := authzHTTP.IdentityOrAnonymous(c.Request.Context())
	scoped, allowed := h.guard.AllowOn(c.Request.Context(), identity, "delete:comment", comment)
	if !allowed {
		httputil.HandleErrorGin(c, authzDomain.DenyError(identity, scoped), h.logger)
		return
	}

	if err := h.useCase.DeleteComment(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
