package domain

import (
	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
)

// RegisterSchemas declares the field visibility for payment features. The
// self view never includes the gateway reference.
func RegisterSchemas(registry *authzDomain.SchemaRegistry) {
	registry.MustRegister(authzDomain.FeatureReadPaymentSelf, authzDomain.FieldSchema{
		Output: []string{"id", "subscription_id", "amount_cents", "status", "paid_at", "created_at"},
	})
	registry.MustRegister(authzDomain.FeatureReadPaymentOther, authzDomain.FieldSchema{
		Output: []string{"id", "user_id", "subscription_id", "amount_cents", "status", "gateway_reference", "paid_at", "created_at", "updated_at"},
	})
	registry.MustRegister(authzDomain.FeatureUpdatePaymentConfirmPaid, authzDomain.FieldSchema{
		Input:  []string{"action", "gateway_reference"},
		Output: []string{"id", "user_id", "subscription_id", "amount_cents", "status", "gateway_reference", "paid_at", "updated_at"},
	})
}
