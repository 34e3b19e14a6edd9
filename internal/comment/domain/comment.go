// Package domain defines the comment entity and related errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/errors"
)

// Comment is a member remark attached to a presentation.
type Comment struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	PresentationID uuid.UUID
	Body           string
	CreatedAt      time.Time
}

// OwnerID returns the comment author for scope resolution.
func (c *Comment) OwnerID() uuid.UUID {
	return c.UserID
}

// Domain-specific errors for comment operations.
var (
	// ErrCommentNotFound indicates the requested comment does not exist.
	ErrCommentNotFound = errors.Wrap(errors.ErrNotFound, "comment not found")
)
