// Package usecase implements the payment business logic.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/payment/domain"
)

// UseCase defines the interface for payment business logic operations
type UseCase interface {
	GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	ListPayments(ctx context.Context, offset, limit int) ([]*domain.Payment, error)
	ConfirmPaid(ctx context.Context, id uuid.UUID, gatewayReference string) (*domain.Payment, error)
}

// PaymentRepository interface defines payment repository operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
}

// PaymentUseCase handles payment-related business logic
type PaymentUseCase struct {
	paymentRepo PaymentRepository
}

// NewPaymentUseCase creates a new PaymentUseCase
func NewPaymentUseCase(paymentRepo PaymentRepository) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo: paymentRepo,
	}
}

// GetPayment retrieves a payment by ID
func (uc *PaymentUseCase) GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	return uc.paymentRepo.GetByID(ctx, id)
}

// ListPayments retrieves a page of payments
func (uc *PaymentUseCase) ListPayments(ctx context.Context, offset, limit int) ([]*domain.Payment, error) {
	return uc.paymentRepo.List(ctx, offset, limit)
}

// ConfirmPaid marks a pending payment as settled, recording the gateway
// reference and settlement time. Confirming an already paid payment is a
// conflict, not an idempotent no-op, so double-settlement is surfaced.
func (uc *PaymentUseCase) ConfirmPaid(ctx context.Context, id uuid.UUID, gatewayReference string) (*domain.Payment, error) {
	payment, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payment.Status == domain.StatusPaid {
		return nil, domain.ErrPaymentAlreadyPaid
	}

	now := time.Now()
	payment.Status = domain.StatusPaid
	payment.PaidAt = &now
	if ref := strings.TrimSpace(gatewayReference); ref != "" {
		payment.GatewayReference = ref
	}

	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}
