package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ovationhq/ovation/internal/errors"
	"github.com/ovationhq/ovation/internal/lesson/domain"
)

// mockLessonRepository is a mock implementation of LessonRepository for testing.
type mockLessonRepository struct {
	mock.Mock
}

func (m *mockLessonRepository) Create(ctx context.Context, lesson *domain.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lesson), args.Error(1)
}

func (m *mockLessonRepository) List(ctx context.Context, offset, limit int) ([]*domain.Lesson, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Lesson), args.Error(1)
}

func (m *mockLessonRepository) Update(ctx context.Context, lesson *domain.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *mockLessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateLesson(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DefaultsToMemberTier", func(t *testing.T) {
		repo := &mockLessonRepository{}
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Lesson")).Return(nil)

		uc := NewLessonUseCase(repo)
		lesson, err := uc.CreateLesson(ctx, CreateLessonInput{
			Title:    "Pirouette basics",
			VideoURL: "https://videos.example.com/pirouette-basics",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.TierMember, lesson.AccessTier)
		assert.NotEqual(t, uuid.Nil, lesson.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Success_ExplicitTier", func(t *testing.T) {
		repo := &mockLessonRepository{}
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Lesson")).Return(nil)

		uc := NewLessonUseCase(repo)
		lesson, err := uc.CreateLesson(ctx, CreateLessonInput{
			Title:      "Intro to barre",
			VideoURL:   "https://videos.example.com/intro-barre",
			AccessTier: domain.TierFree,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.TierFree, lesson.AccessTier)
	})

	t.Run("Error_UnknownTier", func(t *testing.T) {
		uc := NewLessonUseCase(&mockLessonRepository{})
		_, err := uc.CreateLesson(ctx, CreateLessonInput{
			Title:      "Intro to barre",
			VideoURL:   "https://videos.example.com/intro-barre",
			AccessTier: "vip",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("Error_InvalidVideoURL", func(t *testing.T) {
		uc := NewLessonUseCase(&mockLessonRepository{})
		_, err := uc.CreateLesson(ctx, CreateLessonInput{
			Title:    "Intro to barre",
			VideoURL: "not a url",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestUpdateLesson(t *testing.T) {
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())

	t.Run("Success_TierChange", func(t *testing.T) {
		existing := &domain.Lesson{
			ID:         id,
			Title:      "Pirouette basics",
			VideoURL:   "https://videos.example.com/pirouette-basics",
			AccessTier: domain.TierMember,
		}
		repo := &mockLessonRepository{}
		repo.On("GetByID", mock.Anything, id).Return(existing, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Lesson")).Return(nil)

		uc := NewLessonUseCase(repo)
		updated, err := uc.UpdateLesson(ctx, id, UpdateLessonInput{AccessTier: domain.TierPremium})

		require.NoError(t, err)
		assert.Equal(t, domain.TierPremium, updated.AccessTier)
		assert.Equal(t, "Pirouette basics", updated.Title)
	})

	t.Run("Error_UnknownTier", func(t *testing.T) {
		repo := &mockLessonRepository{}
		repo.On("GetByID", mock.Anything, id).Return(&domain.Lesson{ID: id}, nil)

		uc := NewLessonUseCase(repo)
		_, err := uc.UpdateLesson(ctx, id, UpdateLessonInput{AccessTier: "vip"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := &mockLessonRepository{}
		repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrLessonNotFound)

		uc := NewLessonUseCase(repo)
		_, err := uc.UpdateLesson(ctx, id, UpdateLessonInput{Title: "x"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})
}
