package domain

import (
	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
)

// RegisterSchemas declares the field visibility for lesson features.
// Lessons carry no per-member fields, so read is unscoped.
func RegisterSchemas(registry *authzDomain.SchemaRegistry) {
	registry.MustRegister(authzDomain.FeatureCreateLesson, authzDomain.FieldSchema{
		Input:  []string{"title", "description", "video_url", "access_tier"},
		Output: []string{"id", "title", "description", "video_url", "access_tier", "created_at"},
	})
	registry.MustRegister(authzDomain.FeatureReadLesson, authzDomain.FieldSchema{
		Output: []string{"id", "title", "description", "video_url", "access_tier", "created_at", "updated_at"},
	})
	registry.MustRegister(authzDomain.FeatureUpdateLesson, authzDomain.FieldSchema{
		Input:  []string{"title", "description", "video_url", "access_tier"},
		Output: []string{"id", "title", "description", "video_url", "access_tier", "updated_at"},
	})
}
