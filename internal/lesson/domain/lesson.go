// Package domain defines the lesson entity and related errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/errors"
)

// Access tiers control which membership level a lesson is published for.
const (
	TierFree    = "free"
	TierMember  = "member"
	TierPremium = "premium"
)

// Lesson represents a video lesson in the on-demand library.
type Lesson struct {
	ID          uuid.UUID
	Title       string
	Description string
	VideoURL    string
	AccessTier  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Domain-specific errors for lesson operations.
var (
	// ErrLessonNotFound indicates the requested lesson does not exist.
	ErrLessonNotFound = errors.Wrap(errors.ErrNotFound, "lesson not found")

	// ErrInvalidAccessTier indicates the access tier is not one of the known tiers.
	ErrInvalidAccessTier = errors.Wrap(errors.ErrInvalidInput, "invalid access tier")
)

// ValidTier reports whether tier is one of the known access tiers.
func ValidTier(tier string) bool {
	switch tier {
	case TierFree, TierMember, TierPremium:
		return true
	}
	return false
}
