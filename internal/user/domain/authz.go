package domain

import (
	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
)

// RegisterSchemas declares the field visibility for every user feature that
// carries a request or response body. Registered once at startup.
func RegisterSchemas(registry *authzDomain.SchemaRegistry) {
	registry.MustRegister(authzDomain.FeatureCreateUser, authzDomain.FieldSchema{
		Input:  []string{"username", "email", "password", "full_name"},
		Output: []string{"id", "username", "email", "full_name", "created_at"},
	})
	registry.MustRegister(authzDomain.FeatureReadUserSelf, authzDomain.FieldSchema{
		Output: []string{"id", "username", "email", "full_name", "features", "created_at", "updated_at"},
	})
	registry.MustRegister(authzDomain.FeatureReadUserOther, authzDomain.FieldSchema{
		Output: []string{"id", "username", "full_name", "created_at"},
	})
	registry.MustRegister(authzDomain.FeatureUpdateUserSelf, authzDomain.FieldSchema{
		Input:  []string{"email", "full_name", "password"},
		Output: []string{"id", "username", "email", "full_name", "updated_at"},
	})
	registry.MustRegister(authzDomain.FeatureUpdateUserOther, authzDomain.FieldSchema{
		Input:  []string{"email", "full_name"},
		Output: []string{"id", "username", "email", "full_name", "updated_at"},
	})
	registry.MustRegister(authzDomain.FeatureUpdateUserFeatures, authzDomain.FieldSchema{
		Input:  []string{"features"},
		Output: []string{"id", "username", "features", "updated_at"},
	})
}
