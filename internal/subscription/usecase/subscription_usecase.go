// Package usecase implements the subscription business logic.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/database"
	paymentDomain "github.com/ovationhq/ovation/internal/payment/domain"
	"github.com/ovationhq/ovation/internal/subscription/domain"
	userDomain "github.com/ovationhq/ovation/internal/user/domain"
	appValidation "github.com/ovationhq/ovation/internal/validation"
)

// CreateSubscriptionInput contains the input data for subscription creation.
type CreateSubscriptionInput struct {
	UserID        string `json:"user_id"`
	PlanName      string `json:"plan_name"`
	PriceCents    int64  `json:"price_cents"`
	DiscountValue int64  `json:"discount_value"`
}

// UpdateSubscriptionInput contains the updatable subscription fields.
// Zero-valued fields are left unchanged.
type UpdateSubscriptionInput struct {
	PlanName      string `json:"plan_name"`
	Status        string `json:"status"`
	PriceCents    *int64 `json:"price_cents"`
	DiscountValue *int64 `json:"discount_value"`
}

// UseCase defines the interface for subscription business logic operations
type UseCase interface {
	CreateSubscription(ctx context.Context, input CreateSubscriptionInput) (*domain.Subscription, error)
	GetSubscription(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
	ListSubscriptions(ctx context.Context, offset, limit int) ([]*domain.Subscription, error)
	UpdateSubscription(ctx context.Context, id uuid.UUID, input UpdateSubscriptionInput) (*domain.Subscription, error)
	DeleteSubscription(ctx context.Context, id uuid.UUID) error
}

// SubscriptionRepository interface defines subscription repository operations
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *domain.Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Subscription, error)
	Update(ctx context.Context, subscription *domain.Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository interface defines the payment operations needed when
// opening a subscription.
type PaymentRepository interface {
	Create(ctx context.Context, payment *paymentDomain.Payment) error
}

// UserRepository interface defines the user lookup needed to validate the
// subscription owner.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}

// SubscriptionUseCase handles subscription-related business logic
type SubscriptionUseCase struct {
	txManager        database.TxManager
	subscriptionRepo SubscriptionRepository
	paymentRepo      PaymentRepository
	userRepo         UserRepository
}

// NewSubscriptionUseCase creates a new SubscriptionUseCase
func NewSubscriptionUseCase(
	txManager database.TxManager,
	subscriptionRepo SubscriptionRepository,
	paymentRepo PaymentRepository,
	userRepo UserRepository,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		txManager:        txManager,
		subscriptionRepo: subscriptionRepo,
		paymentRepo:      paymentRepo,
		userRepo:         userRepo,
	}
}

func (uc *SubscriptionUseCase) validateCreateSubscriptionInput(input CreateSubscriptionInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.UserID,
			validation.Required.Error("user_id is required"),
			appValidation.UUID,
		),
		validation.Field(&input.PlanName,
			validation.Required.Error("plan_name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("plan_name must be between 1 and 255 characters"),
		),
		validation.Field(&input.PriceCents,
			validation.Min(int64(0)).Error("price_cents must not be negative"),
		),
		validation.Field(&input.DiscountValue,
			validation.Min(int64(0)).Error("discount_value must not be negative"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateSubscription opens a subscription for a user and creates the first
// pending payment in the same transaction.
func (uc *SubscriptionUseCase) CreateSubscription(ctx context.Context, input CreateSubscriptionInput) (*domain.Subscription, error) {
	if err := uc.validateCreateSubscriptionInput(input); err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	subscription := &domain.Subscription{
		ID:            uuid.Must(uuid.NewV7()),
		UserID:        user.ID,
		PlanName:      strings.TrimSpace(input.PlanName),
		Status:        domain.StatusActive,
		PriceCents:    input.PriceCents,
		DiscountValue: input.DiscountValue,
	}

	payment := &paymentDomain.Payment{
		ID:             uuid.Must(uuid.NewV7()),
		UserID:         user.ID,
		SubscriptionID: subscription.ID,
		AmountCents:    subscription.PriceCents - subscription.DiscountValue,
		Status:         paymentDomain.StatusPending,
	}
	if payment.AmountCents < 0 {
		payment.AmountCents = 0
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.subscriptionRepo.Create(ctx, subscription); err != nil {
			return err
		}
		return uc.paymentRepo.Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	return subscription, nil
}

// GetSubscription retrieves a subscription by ID
func (uc *SubscriptionUseCase) GetSubscription(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	return uc.subscriptionRepo.GetByID(ctx, id)
}

// ListSubscriptions retrieves a page of subscriptions
func (uc *SubscriptionUseCase) ListSubscriptions(ctx context.Context, offset, limit int) ([]*domain.Subscription, error) {
	return uc.subscriptionRepo.List(ctx, offset, limit)
}

// UpdateSubscription applies the provided changes to an existing subscription.
func (uc *SubscriptionUseCase) UpdateSubscription(ctx context.Context, id uuid.UUID, input UpdateSubscriptionInput) (*domain.Subscription, error) {
	if input.Status != "" && !domain.ValidStatus(input.Status) {
		return nil, domain.ErrInvalidStatus
	}

	subscription, err := uc.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.PlanName != "" {
		subscription.PlanName = strings.TrimSpace(input.PlanName)
	}
	if input.Status != "" {
		subscription.Status = input.Status
	}
	if input.PriceCents != nil {
		subscription.PriceCents = *input.PriceCents
	}
	if input.DiscountValue != nil {
		subscription.DiscountValue = *input.DiscountValue
	}

	if err := uc.subscriptionRepo.Update(ctx, subscription); err != nil {
		return nil, err
	}
	return subscription, nil
}

// DeleteSubscription removes a subscription by ID
func (uc *SubscriptionUseCase) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	return uc.subscriptionRepo.Delete(ctx, id)
}
