// Package domain defines the payment entity and related errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/errors"
)

// Payment statuses.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Payment represents a charge against a subscription. GatewayReference is
// the billing provider's identifier and is only visible to staff.
type Payment struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SubscriptionID   uuid.UUID
	AmountCents      int64
	Status           string
	GatewayReference string
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OwnerID makes Payment an ownable resource.
func (p *Payment) OwnerID() uuid.UUID {
	return p.UserID
}

// Domain-specific errors for payment operations.
var (
	// ErrPaymentNotFound indicates the requested payment does not exist.
	ErrPaymentNotFound = errors.Wrap(errors.ErrNotFound, "payment not found")

	// ErrPaymentAlreadyPaid indicates a confirm on an already settled payment.
	ErrPaymentAlreadyPaid = errors.Wrap(errors.ErrConflict, "payment already confirmed")

	// ErrUnknownAction indicates an unrecognized payment action.
	ErrUnknownAction = errors.Wrap(errors.ErrInvalidInput, "unknown payment action")
)
