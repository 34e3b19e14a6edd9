// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/errors"
)

// User represents a member of the platform. Features holds the raw feature
// strings granted to the user; they are validated against the catalog when
// granted and re-checked on load before building an identity.
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string
	FullName  string
	Features  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerID makes User an ownable resource: a user owns their own record.
func (u *User) OwnerID() uuid.UUID {
	return u.ID
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same username or email
	// already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)
