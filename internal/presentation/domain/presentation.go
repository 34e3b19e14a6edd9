// Package domain defines the presentation entity and related errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/errors"
)

// Presentation represents a scheduled studio event: a recital, showcase,
// or open class that members can attend and comment on.
type Presentation struct {
	ID          uuid.UUID
	Title       string
	Description string
	Location    string
	ScheduledAt time.Time
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Domain-specific errors for presentation operations.
var (
	// ErrPresentationNotFound indicates the requested presentation does not exist.
	ErrPresentationNotFound = errors.Wrap(errors.ErrNotFound, "presentation not found")
)
