// Package domain defines the session entity and session-specific errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/errors"
)

// Session represents an authenticated login session. Only the SHA-256 hash
// of the bearer token is stored; the plain token is returned once at login.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the session has passed its expiration time.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Domain-specific errors for session operations.
var (
	// ErrSessionNotFound indicates the presented token matches no session.
	ErrSessionNotFound = errors.Wrap(errors.ErrUnauthorized, "invalid session token")

	// ErrSessionExpired indicates the session exists but has expired.
	ErrSessionExpired = errors.Wrap(errors.ErrUnauthorized, "session expired")

	// ErrInvalidCredentials indicates the username/password pair is wrong.
	// Unknown username and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
)
