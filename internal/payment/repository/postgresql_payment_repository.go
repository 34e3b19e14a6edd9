// Package repository provides data persistence implementations for payments.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/database"
	"github.com/ovationhq/ovation/internal/payment/domain"

	apperrors "github.com/ovationhq/ovation/internal/errors"
)

// PostgreSQLPaymentRepository handles payment persistence for PostgreSQL
type PostgreSQLPaymentRepository struct {
	db *sql.DB
}

// NewPostgreSQLPaymentRepository creates a new PostgreSQLPaymentRepository
func NewPostgreSQLPaymentRepository(db *sql.DB) *PostgreSQLPaymentRepository {
	return &PostgreSQLPaymentRepository{
		db: db,
	}
}

// Create inserts a new payment
func (r *PostgreSQLPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO payments (id, user_id, subscription_id, amount_cents, status, gateway_reference, paid_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		payment.ID, payment.UserID, payment.SubscriptionID, payment.AmountCents,
		payment.Status, payment.GatewayReference, payment.PaidAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create payment")
	}
	return nil
}

// GetByID retrieves a payment by ID
func (r *PostgreSQLPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	var payment domain.Payment
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, subscription_id, amount_cents, status, gateway_reference, paid_at, created_at, updated_at
			  FROM payments WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&payment.ID, &payment.UserID, &payment.SubscriptionID, &payment.AmountCents,
		&payment.Status, &payment.GatewayReference, &payment.PaidAt, &payment.CreatedAt, &payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get payment by id")
	}

	return &payment, nil
}

// List retrieves payments ordered by creation time, newest first
func (r *PostgreSQLPaymentRepository) List(ctx context.Context, offset, limit int) ([]*domain.Payment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, subscription_id, amount_cents, status, gateway_reference, paid_at, created_at, updated_at
			  FROM payments ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list payments")
	}
	defer func() { _ = rows.Close() }()

	var payments []*domain.Payment
	for rows.Next() {
		var payment domain.Payment
		err := rows.Scan(
			&payment.ID, &payment.UserID, &payment.SubscriptionID, &payment.AmountCents,
			&payment.Status, &payment.GatewayReference, &payment.PaidAt, &payment.CreatedAt, &payment.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan payment")
		}
		payments = append(payments, &payment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate payments")
	}

	return payments, nil
}

// Update persists changes to an existing payment
func (r *PostgreSQLPaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE payments SET status = $1, gateway_reference = $2, paid_at = $3, updated_at = NOW()
			  WHERE id = $4`

	result, err := querier.ExecContext(ctx, query,
		payment.Status, payment.GatewayReference, payment.PaidAt, payment.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update payment")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}
