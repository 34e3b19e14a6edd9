package domain

import (
	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
)

// RegisterSchemas declares the field visibility for comment features.
// Deletion has self and other scopes but returns no body, so only the
// create and read features carry schemas.
func RegisterSchemas(registry *authzDomain.SchemaRegistry) {
	registry.MustRegister(authzDomain.FeatureCreateComment, authzDomain.FieldSchema{
		Input:  []string{"body"},
		Output: []string{"id", "presentation_id", "user_id", "body", "created_at"},
	})
	registry.MustRegister(authzDomain.FeatureReadComment, authzDomain.FieldSchema{
		Output: []string{"id", "presentation_id", "user_id", "body", "created_at"},
	})
}
