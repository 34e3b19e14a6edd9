package domain

import (
	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
)

// RegisterSchemas declares the field visibility for subscription features.
// The self view hides billing internals (discount_value, user_id); the
// other view, held by staff, sees the full record.
func RegisterSchemas(registry *authzDomain.SchemaRegistry) {
	registry.MustRegister(authzDomain.FeatureCreateSubscription, authzDomain.FieldSchema{
		Input:  []string{"user_id", "plan_name", "price_cents", "discount_value"},
		Output: []string{"id", "user_id", "plan_name", "status", "price_cents", "discount_value", "created_at"},
	})
	registry.MustRegister(authzDomain.FeatureReadSubscriptionSelf, authzDomain.FieldSchema{
		Output: []string{"id", "plan_name", "status", "price_cents", "created_at"},
	})
	registry.MustRegister(authzDomain.FeatureReadSubscriptionOther, authzDomain.FieldSchema{
		Output: []string{"id", "user_id", "plan_name", "status", "price_cents", "discount_value", "created_at", "updated_at"},
	})
	registry.MustRegister(authzDomain.FeatureUpdateSubscription, authzDomain.FieldSchema{
		Input:  []string{"plan_name", "status", "price_cents", "discount_value"},
		Output: []string{"id", "user_id", "plan_name", "status", "price_cents", "discount_value", "updated_at"},
	})
}
