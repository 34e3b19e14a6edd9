package domain

import (
	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
)

// RegisterSchemas declares the field visibility for the session features.
// Logout carries no body, so only login is projected.
func RegisterSchemas(registry *authzDomain.SchemaRegistry) {
	registry.MustRegister(authzDomain.FeatureCreateSession, authzDomain.FieldSchema{
		Input:  []string{"username", "password"},
		Output: []string{"token", "expires_at"},
	})
}
