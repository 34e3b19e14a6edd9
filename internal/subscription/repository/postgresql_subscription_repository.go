// Package repository provides data persistence implementations for subscriptions.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/database"
	"github.com/ovationhq/ovation/internal/subscription/domain"

	apperrors "github.com/ovationhq/ovation/internal/errors"
)

// PostgreSQLSubscriptionRepository handles subscription persistence for PostgreSQL
type PostgreSQLSubscriptionRepository struct {
	db *sql.DB
}

// NewPostgreSQLSubscriptionRepository creates a new PostgreSQLSubscriptionRepository
func NewPostgreSQLSubscriptionRepository(db *sql.DB) *PostgreSQLSubscriptionRepository {
	return &PostgreSQLSubscriptionRepository{
		db: db,
	}
}

// Create inserts a new subscription
func (r *PostgreSQLSubscriptionRepository) Create(ctx context.Context, subscription *domain.Subscription) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO subscriptions (id, user_id, plan_name, status, price_cents, discount_value, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		subscription.ID, subscription.UserID, subscription.PlanName,
		subscription.Status, subscription.PriceCents, subscription.DiscountValue)
	if err != nil {
		return apperrors.Wrap(err, "failed to create subscription")
	}
	return nil
}

// GetByID retrieves a subscription by ID
func (r *PostgreSQLSubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	var subscription domain.Subscription
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, plan_name, status, price_cents, discount_value, created_at, updated_at
			  FROM subscriptions WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&subscription.ID, &subscription.UserID, &subscription.PlanName, &subscription.Status,
		&subscription.PriceCents, &subscription.DiscountValue, &subscription.CreatedAt, &subscription.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get subscription by id")
	}

	return &subscription, nil
}

// List retrieves subscriptions ordered by creation time, newest first
func (r *PostgreSQLSubscriptionRepository) List(ctx context.Context, offset, limit int) ([]*domain.Subscription, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, plan_name, status, price_cents, discount_value, created_at, updated_at
			  FROM subscriptions ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list subscriptions")
	}
	defer func() { _ = rows.Close() }()

	var subscriptions []*domain.Subscription
	for rows.Next() {
		var subscription domain.Subscription
		err := rows.Scan(
			&subscription.ID, &subscription.UserID, &subscription.PlanName, &subscription.Status,
			&subscription.PriceCents, &subscription.DiscountValue, &subscription.CreatedAt, &subscription.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan subscription")
		}
		subscriptions = append(subscriptions, &subscription)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate subscriptions")
	}

	return subscriptions, nil
}

// Update persists changes to an existing subscription
func (r *PostgreSQLSubscriptionRepository) Update(ctx context.Context, subscription *domain.Subscription) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE subscriptions SET plan_name = $1, status = $2, price_cents = $3, discount_value = $4, updated_at = NOW()
			  WHERE id = $5`

	result, err := querier.ExecContext(ctx, query,
		subscription.PlanName, subscription.Status, subscription.PriceCents,
		subscription.DiscountValue, subscription.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update subscription")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

// Delete removes a subscription by ID
func (r *PostgreSQLSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM subscriptions WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete subscription")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}
