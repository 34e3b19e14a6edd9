package domain

import (
	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
)

// RegisterSchemas declares the field visibility for product features.
// The catalog is public-facing once read access is granted, so read is
// unscoped and exposes every field.
func RegisterSchemas(registry *authzDomain.SchemaRegistry) {
	registry.MustRegister(authzDomain.FeatureCreateProduct, authzDomain.FieldSchema{
		Input:  []string{"name", "description", "price_cents", "stock_quantity"},
		Output: []string{"id", "name", "description", "price_cents", "stock_quantity", "created_at"},
	})
	registry.MustRegister(authzDomain.FeatureReadProduct, authzDomain.FieldSchema{
		Output: []string{"id", "name", "description", "price_cents", "stock_quantity", "created_at", "updated_at"},
	})
	registry.MustRegister(authzDomain.FeatureUpdateProduct, authzDomain.FieldSchema{
		Input:  []string{"name", "description", "price_cents", "stock_quantity"},
		Output: []string{"id", "name", "description", "price_cents", "stock_quantity", "updated_at"},
	})
}
