package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/database"
	"github.com/ovationhq/ovation/internal/presentation/domain"

	apperrors "github.com/ovationhq/ovation/internal/errors"
)

// MySQLPresentationRepository handles presentation persistence for MySQL
type MySQLPresentationRepository struct {
	db *sql.DB
}

// NewMySQLPresentationRepository creates a new MySQLPresentationRepository
func NewMySQLPresentationRepository(db *sql.DB) *MySQLPresentationRepository {
	return &MySQLPresentationRepository{
		db: db,
	}
}

// Create inserts a new presentation
func (r *MySQLPresentationRepository) Create(ctx context.Context, presentation *domain.Presentation) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO presentations (id, title, description, location, scheduled_at, created_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		presentation.ID, presentation.Title, presentation.Description,
		presentation.Location, presentation.ScheduledAt, presentation.CreatedBy)
	if err != nil {
		return apperrors.Wrap(err, "failed to create presentation")
	}
	return nil
}

// GetByID retrieves a presentation by ID
func (r *MySQLPresentationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Presentation, error) {
	var presentation domain.Presentation
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, title, description, location, scheduled_at, created_by, created_at, updated_at
			  FROM presentations WHERE id = ?`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&presentation.ID, &presentation.Title, &presentation.Description, &presentation.Location,
		&presentation.ScheduledAt, &presentation.CreatedBy, &presentation.CreatedAt, &presentation.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPresentationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get presentation by id")
	}

	return &presentation, nil
}

// List retrieves presentations ordered by scheduled time, soonest first
func (r *MySQLPresentationRepository) List(ctx context.Context, offset, limit int) ([]*domain.Presentation, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, title, description, location, scheduled_at, created_by, created_at, updated_at
			  FROM presentations ORDER BY scheduled_at ASC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list presentations")
	}
	defer func() { _ = rows.Close() }()

	var presentations []*domain.Presentation
	for rows.Next() {
		var presentation domain.Presentation
		err := rows.Scan(
			&presentation.ID, &presentation.Title, &presentation.Description, &presentation.Location,
			&presentation.ScheduledAt, &presentation.CreatedBy, &presentation.CreatedAt, &presentation.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan presentation")
		}
		presentations = append(presentations, &presentation)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate presentations")
	}

	return presentations, nil
}

// Update persists changes to an existing presentation
func (r *MySQLPresentationRepository) Update(ctx context.Context, presentation *domain.Presentation) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE presentations SET title = ?, description = ?, location = ?, scheduled_at = ?, updated_at = NOW()
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query,
		presentation.Title, presentation.Description, presentation.Location,
		presentation.ScheduledAt, presentation.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update presentation")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrPresentationNotFound
	}
	return nil
}

// Delete removes a presentation by ID
func (r *MySQLPresentationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM presentations WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete presentation")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrPresentationNotFound
	}
	return nil
}
