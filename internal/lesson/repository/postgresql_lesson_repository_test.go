package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovationhq/ovation/internal/lesson/domain"
	"github.com/ovationhq/ovation/internal/testutil"
)

func lessonColumns() []string {
	return []string{"id", "title", "description", "video_url", "access_tier", "created_at", "updated_at"}
}

func TestPostgreSQLLessonRepository_Create(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewPostgreSQLLessonRepository(db)

	lesson := &domain.Lesson{
		ID:         uuid.Must(uuid.NewV7()),
		Title:      "Pirouette basics",
		VideoURL:   "https://videos.example.com/pirouette-basics",
		AccessTier: domain.TierMember,
	}

	mock.ExpectExec(`INSERT INTO lessons`).
		WithArgs(lesson.ID, "Pirouette basics", "", "https://videos.example.com/pirouette-basics", domain.TierMember).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), lesson))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLLessonRepository_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLLessonRepository(db)

		id := uuid.Must(uuid.NewV7())
		now := time.Now()
		rows := sqlmock.NewRows(lessonColumns()).
			AddRow(id, "Pirouette basics", "Turn fundamentals", "https://videos.example.com/p1", domain.TierMember, now, now)

		mock.ExpectQuery(`SELECT id, title, description, video_url, access_tier`).
			WithArgs(id).
			WillReturnRows(rows)

		lesson, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Pirouette basics", lesson.Title)
		assert.Equal(t, domain.TierMember, lesson.AccessTier)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLLessonRepository(db)

		id := uuid.Must(uuid.NewV7())
		mock.ExpectQuery(`SELECT id, title, description, video_url, access_tier`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(lessonColumns()))

		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrLessonNotFound)
	})
}

func TestPostgreSQLLessonRepository_Update(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		db, mock := testutil.NewSQLMock(t)
		repo := NewPostgreSQLLessonRepository(db)

		lesson := &domain.Lesson{ID: uuid.Must(uuid.NewV7()), Title: "x", AccessTier: domain.TierFree}
		mock.ExpectExec(`UPDATE lessons SET`).
			WithArgs("x", "", "", domain.TierFree, lesson.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(context.Background(), lesson), domain.ErrLessonNotFound)
	})
}

func TestPostgreSQLLessonRepository_Delete(t *testing.T) {
	db, mock := testutil.NewSQLMock(t)
	repo := NewPostgreSQLLessonRepository(db)

	id := uuid.Must(uuid.NewV7())
	mock.ExpectExec(`DELETE FROM lessons`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
