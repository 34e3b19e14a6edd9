// Package usecase implements the presentation business logic.
package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/presentation/domain"
	appValidation "github.com/ovationhq/ovation/internal/validation"
)

// CreatePresentationInput contains the input data for presentation creation.
type CreatePresentationInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// UpdatePresentationInput contains the updatable presentation fields.
// Zero-valued fields are left unchanged.
type UpdatePresentationInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// UseCase defines the interface for presentation business logic operations
type UseCase interface {
	CreatePresentation(ctx context.Context, createdBy uuid.UUID, input CreatePresentationInput) (*domain.Presentation, error)
	GetPresentation(ctx context.Context, id uuid.UUID) (*domain.Presentation, error)
	ListPresentations(ctx context.Context, offset, limit int) ([]*domain.Presentation, error)
	UpdatePresentation(ctx context.Context, id uuid.UUID, input UpdatePresentationInput) (*domain.Presentation, error)
	DeletePresentation(ctx context.Context, id uuid.UUID) error
}

// PresentationRepository interface defines presentation repository operations
type PresentationRepository interface {
	Create(ctx context.Context, presentation *domain.Presentation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Presentation, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Presentation, error)
	Update(ctx context.Context, presentation *domain.Presentation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PresentationUseCase handles presentation-related business logic
type PresentationUseCase struct {
	presentationRepo PresentationRepository
}

// NewPresentationUseCase creates a new PresentationUseCase
func NewPresentationUseCase(presentationRepo PresentationRepository) *PresentationUseCase {
	return &PresentationUseCase{
		presentationRepo: presentationRepo,
	}
}

func (uc *PresentationUseCase) validateCreatePresentationInput(input CreatePresentationInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&input.ScheduledAt,
			validation.Required.Error("scheduled_at is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreatePresentation schedules a new presentation.
func (uc *PresentationUseCase) CreatePresentation(ctx context.Context, createdBy uuid.UUID, input CreatePresentationInput) (*domain.Presentation, error) {
	if err := uc.validateCreatePresentationInput(input); err != nil {
		return nil, err
	}

	presentation := &domain.Presentation{
		ID:          uuid.Must(uuid.NewV7()),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Location:    strings.TrimSpace(input.Location),
		ScheduledAt: input.ScheduledAt,
		CreatedBy:   createdBy,
	}

	if err := uc.presentationRepo.Create(ctx, presentation); err != nil {
		return nil, err
	}
	return presentation, nil
}

// GetPresentation retrieves a presentation by ID
func (uc *PresentationUseCase) GetPresentation(ctx context.Context, id uuid.UUID) (*domain.Presentation, error) {
	return uc.presentationRepo.GetByID(ctx, id)
}

// ListPresentations retrieves a page of presentations
func (uc *PresentationUseCase) ListPresentations(ctx context.Context, offset, limit int) ([]*domain.Presentation, error) {
	return uc.presentationRepo.List(ctx, offset, limit)
}

// UpdatePresentation applies the provided changes to an existing presentation.
func (uc *PresentationUseCase) UpdatePresentation(ctx context.Context, id uuid.UUID, input UpdatePresentationInput) (*domain.Presentation, error) {
	presentation, err := uc.presentationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		presentation.Title = strings.TrimSpace(input.Title)
	}
	if input.Description != "" {
		presentation.Description = strings.TrimSpace(input.Description)
	}
	if input.Location != "" {
		presentation.Location = strings.TrimSpace(input.Location)
	}
	if input.ScheduledAt != nil {
		presentation.ScheduledAt = *input.ScheduledAt
	}

	if err := uc.presentationRepo.Update(ctx, presentation); err != nil {
		return nil, err
	}
	return presentation, nil
}

// DeletePresentation removes a presentation by ID
func (uc *PresentationUseCase) DeletePresentation(ctx context.Context, id uuid.UUID) error {
	return uc.presentationRepo.Delete(ctx, id)
}
