package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/database"
	"github.com/ovationhq/ovation/internal/lesson/domain"

	apperrors "github.com/ovationhq/ovation/internal/errors"
)

// MySQLLessonRepository handles lesson persistence for MySQL
type MySQLLessonRepository struct {
	db *sql.DB
}

// NewMySQLLessonRepository creates a new MySQLLessonRepository
func NewMySQLLessonRepository(db *sql.DB) *MySQLLessonRepository {
	return &MySQLLessonRepository{
		db: db,
	}
}

// Create inserts a new lesson
func (r *MySQLLessonRepository) Create(ctx context.Context, lesson *domain.Lesson) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO lessons (id, title, description, video_url, access_tier, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		lesson.ID, lesson.Title, lesson.Description, lesson.VideoURL, lesson.AccessTier)
	if err != nil {
		return apperrors.Wrap(err, "failed to create lesson")
	}
	return nil
}

// GetByID retrieves a lesson by ID
func (r *MySQLLessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	var lesson domain.Lesson
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, title, description, video_url, access_tier, created_at, updated_at
			  FROM lessons WHERE id = ?`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID, &lesson.Title, &lesson.Description, &lesson.VideoURL,
		&lesson.AccessTier, &lesson.CreatedAt, &lesson.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLessonNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get lesson by id")
	}

	return &lesson, nil
}

// List retrieves lessons ordered by creation time, newest first
func (r *MySQLLessonRepository) List(ctx context.Context, offset, limit int) ([]*domain.Lesson, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, title, description, video_url, access_tier, created_at, updated_at
			  FROM lessons ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list lessons")
	}
	defer func() { _ = rows.Close() }()

	var lessons []*domain.Lesson
	for rows.Next() {
		var lesson domain.Lesson
		err := rows.Scan(
			&lesson.ID, &lesson.Title, &lesson.Description, &lesson.VideoURL,
			&lesson.AccessTier, &lesson.CreatedAt, &lesson.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan lesson")
		}
		lessons = append(lessons, &lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate lessons")
	}

	return lessons, nil
}

// Update persists changes to an existing lesson
func (r *MySQLLessonRepository) Update(ctx context.Context, lesson *domain.Lesson) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE lessons SET title = ?, description = ?, video_url = ?, access_tier = ?, updated_at = NOW()
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query,
		lesson.Title, lesson.Description, lesson.VideoURL, lesson.AccessTier, lesson.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update lesson")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrLessonNotFound
	}
	return nil
}

// Delete removes a lesson by ID
func (r *MySQLLessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM lessons WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete lesson")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrLessonNotFound
	}
	return nil
}
