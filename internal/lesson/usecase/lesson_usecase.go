// Package usecase implements the lesson business logic.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"
	"github.com/jellydator/validation/is"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/lesson/domain"
	appValidation "github.com/ovationhq/ovation/internal/validation"
)

// CreateLessonInput contains the input data for lesson creation.
type CreateLessonInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	AccessTier  string `json:"access_tier"`
}

// UpdateLessonInput contains the updatable lesson fields.
// Empty fields are left unchanged.
type UpdateLessonInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	AccessTier  string `json:"access_tier"`
}

// UseCase defines the interface for lesson business logic operations
type UseCase interface {
	CreateLesson(ctx context.Context, input CreateLessonInput) (*domain.Lesson, error)
	GetLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	ListLessons(ctx context.Context, offset, limit int) ([]*domain.Lesson, error)
	UpdateLesson(ctx context.Context, id uuid.UUID, input UpdateLessonInput) (*domain.Lesson, error)
	DeleteLesson(ctx context.Context, id uuid.UUID) error
}

// LessonRepository interface defines lesson repository operations
type LessonRepository interface {
	Create(ctx context.Context, lesson *domain.Lesson) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Lesson, error)
	Update(ctx context.Context, lesson *domain.Lesson) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LessonUseCase handles lesson-related business logic
type LessonUseCase struct {
	lessonRepo LessonRepository
}

// NewLessonUseCase creates a new LessonUseCase
func NewLessonUseCase(lessonRepo LessonRepository) *LessonUseCase {
	return &LessonUseCase{
		lessonRepo: lessonRepo,
	}
}

func (uc *LessonUseCase) validateCreateLessonInput(input CreateLessonInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&input.VideoURL,
			validation.Required.Error("video_url is required"),
			is.URL.Error("video_url must be a valid URL"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateLesson publishes a new lesson to the library. An empty access tier
// defaults to member.
func (uc *LessonUseCase) CreateLesson(ctx context.Context, input CreateLessonInput) (*domain.Lesson, error) {
	if err := uc.validateCreateLessonInput(input); err != nil {
		return nil, err
	}

	tier := input.AccessTier
	if tier == "" {
		tier = domain.TierMember
	}
	if !domain.ValidTier(tier) {
		return nil, domain.ErrInvalidAccessTier
	}

	lesson := &domain.Lesson{
		ID:          uuid.Must(uuid.NewV7()),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		VideoURL:    strings.TrimSpace(input.VideoURL),
		AccessTier:  tier,
	}

	if err := uc.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// GetLesson retrieves a lesson by ID
func (uc *LessonUseCase) GetLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	return uc.lessonRepo.GetByID(ctx, id)
}

// ListLessons retrieves a page of lessons
func (uc *LessonUseCase) ListLessons(ctx context.Context, offset, limit int) ([]*domain.Lesson, error) {
	return uc.lessonRepo.List(ctx, offset, limit)
}

// UpdateLesson applies the provided changes to an existing lesson.
func (uc *LessonUseCase) UpdateLesson(ctx context.Context, id uuid.UUID, input UpdateLessonInput) (*domain.Lesson, error) {
	lesson, err := uc.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		lesson.Title = strings.TrimSpace(input.Title)
	}
	if input.Description != "" {
		lesson.Description = strings.TrimSpace(input.Description)
	}
	if input.VideoURL != "" {
		lesson.VideoURL = strings.TrimSpace(input.VideoURL)
	}
	if input.AccessTier != "" {
		if !domain.ValidTier(input.AccessTier) {
			return nil, domain.ErrInvalidAccessTier
		}
		lesson.AccessTier = input.AccessTier
	}

	if err := uc.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// DeleteLesson removes a lesson by ID
func (uc *LessonUseCase) DeleteLesson(ctx context.Context, id uuid.UUID) error {
	return uc.lessonRepo.Delete(ctx, id)
}
