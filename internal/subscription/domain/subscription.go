// Package domain defines the subscription entity and related errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/errors"
)

// Subscription statuses.
const (
	StatusActive   = "active"
	StatusPastDue  = "past_due"
	StatusCanceled = "canceled"
)

// Subscription represents a member's recurring plan. DiscountValue and the
// raw price are billing internals; whether a caller sees them is decided by
// the feature that authorized the read, not by the entity.
type Subscription struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	PlanName      string
	Status        string
	PriceCents    int64
	DiscountValue int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OwnerID makes Subscription an ownable resource.
func (s *Subscription) OwnerID() uuid.UUID {
	return s.UserID
}

// Domain-specific errors for subscription operations.
var (
	// ErrSubscriptionNotFound indicates the requested subscription does not exist.
	ErrSubscriptionNotFound = errors.Wrap(errors.ErrNotFound, "subscription not found")

	// ErrInvalidStatus indicates an unknown subscription status.
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "invalid subscription status")
)

// ValidStatus reports whether s is a known subscription status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusPastDue, StatusCanceled:
		return true
	}
	return false
}
