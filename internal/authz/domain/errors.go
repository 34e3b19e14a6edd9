package domain

import (
	"fmt"

	apperrors "github.com/ovationhq/ovation/internal/errors"
)

// ErrUnknownFeature marks an attempt to reference a feature string outside
// the catalog. This is a defect (or bad admin input), not an authorization
// outcome: it surfaces as invalid input at grant time and as a panic when a
// guard or schema declares it at startup.
func ErrUnknownFeature(raw string) error {
	return apperrors.Wrapf(apperrors.ErrInvalidInput, "unknown feature %q", raw)
}

// ErrMissingFeature is the deny outcome for an identity that lacks the
// checked feature. The feature is named for operability; feature names are
// not secrets and naming one does not reveal whether a resource exists.
func ErrMissingFeature(f Feature) error {
	return apperrors.Wrapf(apperrors.ErrForbidden, "feature %q required", string(f))
}

// DenyError converts a deny into the correct boundary error: Unauthorized
// when no authenticated identity is present, Forbidden naming the feature
// otherwise.
func DenyError(identity Identity, f Feature) error {
	if identity.IsAnonymous() {
		return apperrors.Wrapf(apperrors.ErrUnauthorized, "feature %q requires authentication", string(f))
	}
	return ErrMissingFeature(f)
}

// String formatting helper for panic paths.
func defectf(format string, args ...any) string {
	return "authz: " + fmt.Sprintf(format, args...)
}
