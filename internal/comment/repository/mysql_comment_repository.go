package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/comment/domain"
	"github.com/ovationhq/ovation/internal/database"

	apperrors "github.com/ovationhq/ovation/internal/errors"
)

// MySQLCommentRepository handles comment persistence for MySQL
type MySQLCommentRepository struct {
	db *sql.DB
}

// NewMySQLCommentRepository creates a new MySQLCommentRepository
func NewMySQLCommentRepository(db *sql.DB) *MySQLCommentRepository {
	return &MySQLCommentRepository{
		db: db,
	}
}

// Create inserts a new comment
func (r *MySQLCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO comments (id, user_id, presentation_id, body, created_at)
			  VALUES (?, ?, ?, ?, NOW())`

	_, err := querier.ExecContext(ctx, query,
		comment.ID, comment.UserID, comment.PresentationID, comment.Body)
	if err != nil {
		return apperrors.Wrap(err, "failed to create comment")
	}
	return nil
}

// GetByID retrieves a comment by ID
func (r *MySQLCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, presentation_id, body, created_at
			  FROM comments WHERE id = ?`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.UserID, &comment.PresentationID, &comment.Body, &comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get comment by id")
	}

	return &comment, nil
}

// ListByPresentation retrieves comments for a presentation, oldest first
func (r *MySQLCommentRepository) ListByPresentation(ctx context.Context, presentationID uuid.UUID, offset, limit int) ([]*domain.Comment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, presentation_id, body, created_at
			  FROM comments WHERE presentation_id = ? ORDER BY created_at ASC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, presentationID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list comments")
	}
	defer func() { _ = rows.Close() }()

	var comments []*domain.Comment
	for rows.Next() {
		var comment domain.Comment
		err := rows.Scan(
			&comment.ID, &comment.UserID, &comment.PresentationID, &comment.Body, &comment.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan comment")
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate comments")
	}

	return comments, nil
}

// Delete removes a comment by ID
func (r *MySQLCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM comments WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete comment")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}
