package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ovationhq/ovation/internal/errors"
	"github.com/ovationhq/ovation/internal/presentation/domain"
)

// mockPresentationRepository is a mock implementation of PresentationRepository for testing.
type mockPresentationRepository struct {
	mock.Mock
}

func (m *mockPresentationRepository) Create(ctx context.Context, presentation *domain.Presentation) error {
	args := m.Called(ctx, presentation)
	return args.Error(0)
}

func (m *mockPresentationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Presentation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Presentation), args.Error(1)
}

func (m *mockPresentationRepository) List(ctx context.Context, offset, limit int) ([]*domain.Presentation, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Presentation), args.Error(1)
}

func (m *mockPresentationRepository) Update(ctx context.Context, presentation *domain.Presentation) error {
	args := m.Called(ctx, presentation)
	return args.Error(0)
}

func (m *mockPresentationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreatePresentation(t *testing.T) {
	ctx := context.Background()
	createdBy := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		repo := &mockPresentationRepository{}
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Presentation")).Return(nil)

		uc := NewPresentationUseCase(repo)
		presentation, err := uc.CreatePresentation(ctx, createdBy, CreatePresentationInput{
			Title:       "  Winter Recital  ",
			Description: "End of term showcase",
			Location:    "Main Hall",
			ScheduledAt: time.Date(2026, 10, 12, 19, 0, 0, 0, time.UTC),
		})

		require.NoError(t, err)
		assert.Equal(t, "Winter Recital", presentation.Title)
		assert.Equal(t, createdBy, presentation.CreatedBy)
		assert.NotEqual(t, uuid.Nil, presentation.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Error_MissingTitle", func(t *testing.T) {
		uc := NewPresentationUseCase(&mockPresentationRepository{})
		_, err := uc.CreatePresentation(ctx, createdBy, CreatePresentationInput{
			ScheduledAt: time.Now(),
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("Error_MissingScheduledAt", func(t *testing.T) {
		uc := NewPresentationUseCase(&mockPresentationRepository{})
		_, err := uc.CreatePresentation(ctx, createdBy, CreatePresentationInput{
			Title: "Winter Recital",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestUpdatePresentation(t *testing.T) {
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())

	t.Run("Success_PartialUpdate", func(t *testing.T) {
		existing := &domain.Presentation{
			ID:          id,
			Title:       "Winter Recital",
			Location:    "Main Hall",
			ScheduledAt: time.Date(2026, 10, 12, 19, 0, 0, 0, time.UTC),
		}
		repo := &mockPresentationRepository{}
		repo.On("GetByID", mock.Anything, id).Return(existing, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Presentation")).Return(nil)

		uc := NewPresentationUseCase(repo)
		updated, err := uc.UpdatePresentation(ctx, id, UpdatePresentationInput{Location: "Studio B"})

		require.NoError(t, err)
		assert.Equal(t, "Studio B", updated.Location)
		assert.Equal(t, "Winter Recital", updated.Title)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := &mockPresentationRepository{}
		repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrPresentationNotFound)

		uc := NewPresentationUseCase(repo)
		_, err := uc.UpdatePresentation(ctx, id, UpdatePresentationInput{Title: "x"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})
}
