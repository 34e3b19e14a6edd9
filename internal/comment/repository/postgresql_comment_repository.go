// Package repository provides data persistence implementations for comments.
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

// PostgreSQLCommentRepository handles comment persistence for PostgreSQL
type PostgreSQLCommentRepository struct {
	db *sql.DB
}

// NewPostgreSQLCommentRepository creates a new PostgreSQLCommentRepository
func NewPostgreSQLCommentRepository(db *sql.DB) *PostgreSQLCommentRepository {
	return &PostgreSQLCommentRepository{
		db: db,
	}
}

// Create inserts a new comment
func (r *PostgreSQLCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO comments (id, user_id, presentation_id, body, created_at)
			  VALUES ($1, $2, $3, $4, NOW())`

	_, err := querier.ExecContext(ctx, query,
		comment.ID, comment.UserID, comment.PresentationID, comment.Body)
	if err != nil {
		return apperrors.Wrap(err, "failed to create comment")
	}
	return nil
}

// GetByID retrieves a comment by ID
func (r *PostgreSQLCommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, presentation_id, body, created_at
			  FROM comments WHERE id = $1`

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
func (r *PostgreSQLCommentRepository) ListByPresentation(ctx context.Context, presentationID uuid.UUID, offset, limit int) ([]*domain.Comment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, presentation_id, body, created_at
			  FROM comments WHERE presentation_id = $1 ORDER BY created_at ASC OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, presentationID, offset, limit)
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
func (r *PostgreSQLCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM comments WHERE id = $1`

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
