package domain

import (
	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
)

// RegisterSchemas declares the field visibility for presentation features.
// Presentations carry no per-member fields, so read is unscoped.
func RegisterSchemas(registry *authzDomain.SchemaRegistry) {
	registry.MustRegister(authzDomain.FeatureCreatePresentation, authzDomain.FieldSchema{
		Input:  []string{"title", "description", "location", "scheduled_at"},
		Output: []string{"id", "title", "description", "location", "scheduled_at", "created_at"},
	})
	registry.MustRegister(authzDomain.FeatureReadPresentation, authzDomain.FieldSchema{
		Output: []string{"id", "title", "description", "location", "scheduled_at", "created_at", "updated_at"},
	})
	registry.MustRegister(authzDomain.FeatureUpdatePresentation, authzDomain.FieldSchema{
		Input:  []string{"title", "description", "location", "scheduled_at"},
		Output: []string{"id", "title", "description", "location", "scheduled_at", "updated_at"},
	})
}
