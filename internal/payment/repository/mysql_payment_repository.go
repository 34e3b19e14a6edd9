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

// MySQLPaymentRepository handles payment persistence for MySQL
type MySQLPaymentRepository struct {
	db *sql.DB
}

// NewMySQLPaymentRepository creates a new MySQLPaymentRepository
func NewMySQLPaymentRepository(db *sql.DB) *MySQLPaymentRepository {
	return &MySQLPaymentRepository{
		db: db,
	}
}

// Create inserts a new payment
func (r *MySQLPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO payments (id, user_id, subscription_id, amount_cents, status, gateway_reference, paid_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query,
		payment.ID, payment.UserID, payment.SubscriptionID, payment.AmountCents,
		payment.Status, payment.GatewayReference, payment.PaidAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create payment")
	}
	return nil
}

// GetByID retrieves a payment by ID
func (r *MySQLPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	var payment domain.Payment
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, subscription_id, amount_cents, status, gateway_reference, paid_at, created_at, updated_at
			  FROM payments WHERE id = ?`

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
func (r *MySQLPaymentRepository) List(ctx context.Context, offset, limit int) ([]*domain.Payment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, subscription_id, amount_cents, status, gateway_reference, paid_at, created_at, updated_at
			  FROM payments ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
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
func (r *MySQLPaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE payments SET status = ?, gateway_reference = ?, paid_at = ?, updated_at = NOW()
			  WHERE id = ?`

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
