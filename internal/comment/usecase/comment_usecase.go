// Package usecase implements the comment business logic.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/comment/domain"
	presentationDomain "github.com/ovationhq/ovation/internal/presentation/domain"
	appValidation "github.com/ovationhq/ovation/internal/validation"
)

// CreateCommentInput contains the input data for comment creation.
type CreateCommentInput struct {
	Body string `json:"body"`
}

// UseCase defines the interface for comment business logic operations
type UseCase interface {
	CreateComment(ctx context.Context, authorID, presentationID uuid.UUID, input CreateCommentInput) (*domain.Comment, error)
	GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListComments(ctx context.Context, presentationID uuid.UUID, offset, limit int) ([]*domain.Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
}

// CommentRepository interface defines comment repository operations
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByPresentation(ctx context.Context, presentationID uuid.UUID, offset, limit int) ([]*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PresentationRepository interface defines the presentation lookups comments need
type PresentationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*presentationDomain.Presentation, error)
}

// CommentUseCase handles comment-related business logic
type CommentUseCase struct {
	commentRepo      CommentRepository
	presentationRepo PresentationRepository
}

// NewCommentUseCase creates a new CommentUseCase
func NewCommentUseCase(commentRepo CommentRepository, presentationRepo PresentationRepository) *CommentUseCase {
	return &CommentUseCase{
		commentRepo:      commentRepo,
		presentationRepo: presentationRepo,
	}
}

func (uc *CommentUseCase) validateCreateCommentInput(input CreateCommentInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Body,
			validation.Required.Error("body is required"),
			appValidation.NotBlank,
			validation.Length(1, 2000).Error("body must be between 1 and 2000 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateComment attaches a comment to an existing presentation.
func (uc *CommentUseCase) CreateComment(ctx context.Context, authorID, presentationID uuid.UUID, input CreateCommentInput) (*domain.Comment, error) {
	if err := uc.validateCreateCommentInput(input); err != nil {
		return nil, err
	}

	if _, err := uc.presentationRepo.GetByID(ctx, presentationID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:             uuid.Must(uuid.NewV7()),
		UserID:         authorID,
		PresentationID: presentationID,
		Body:           strings.TrimSpace(input.Body),
	}

	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComment retrieves a comment by ID
func (uc *CommentUseCase) GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return uc.commentRepo.GetByID(ctx, id)
}

// ListComments retrieves a page of comments for a presentation.
func (uc *CommentUseCase) ListComments(ctx context.Context, presentationID uuid.UUID, offset, limit int) ([]*domain.Comment, error) {
	if _, err := uc.presentationRepo.GetByID(ctx, presentationID); err != nil {
		return nil, err
	}
	return uc.commentRepo.ListByPresentation(ctx, presentationID, offset, limit)
}

// DeleteComment removes a comment by ID
func (uc *CommentUseCase) DeleteComment(ctx context.Context, id uuid.UUID) error {
	return uc.commentRepo.Delete(ctx, id)
}
