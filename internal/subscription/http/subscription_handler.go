// Package http provides HTTP handlers for subscription management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	authzHTTP "github.com/ovationhq/ovation/internal/authz/http"
	"github.com/ovationhq/ovation/internal/httputil"
	"github.com/ovationhq/ovation/internal/subscription/domain"
	subscriptionUseCase "github.com/ovationhq/ovation/internal/subscription/usecase"
)

// SubscriptionHandler handles HTTP requests for subscription operations.
type SubscriptionHandler struct {
	useCase  subscriptionUseCase.UseCase
	guard    *authzHTTP.Guard
	registry *authzDomain.SchemaRegistry
	logger   *slog.Logger
}

// NewSubscriptionHandler creates a new subscription handler with required dependencies.
func NewSubscriptionHandler(
	useCase subscriptionUseCase.UseCase,
	guard *authzHTTP.Guard,
	registry *authzDomain.SchemaRegistry,
	logger *slog.Logger,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		useCase:  useCase,
		guard:    guard,
		registry: registry,
		logger:   logger,
	}
}

func subscriptionFields(subscription *domain.Subscription) map[string]any {
	return map[string]any{
		"id":             subscription.ID,
		"user_id":        subscription.UserID,
		"plan_name":      subscription.PlanName,
		"status":         subscription.Status,
		"price_cents":    subscription.PriceCents,
		"discount_value": subscription.DiscountValue,
		"created_at":     subscription.CreatedAt,
		"updated_at":     subscription.UpdatedAt,
	}
}

// CreateSubscriptionHandler opens a subscription for a member.
// POST /v1/subscriptions - guarded by create:subscription. Returns 201.
func (h *SubscriptionHandler) CreateSubscriptionHandler(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var input subscriptionUseCase.CreateSubscriptionInput
	filtered := h.registry.FilterInput(authzDomain.FeatureCreateSubscription, raw)
	if err := httputil.DecodeMap(filtered, &input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	subscription, err := h.useCase.CreateSubscription(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated,
		h.registry.FilterOutput(authzDomain.FeatureCreateSubscription, subscriptionFields(subscription)))
}

// GetSubscriptionHandler retrieves one subscription.
// GET /v1/subscriptions/:id - existence resolves first, then the scope:
// the owner needs read:subscription:self, anyone else read:subscription:other.
// The response is projected through the authorizing feature's schema.
func (h *SubscriptionHandler) GetSubscriptionHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrSubscriptionNotFound, h.logger)
		return
	}

	subscription, err := h.useCase.GetSubscription(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	identity := authzHTTP.IdentityOrAnonymous(c.Request.Context())
	scoped, allowed := h.guard.AllowOn(c.Request.Context(), identity, "read:subscription", subscription)
	if !allowed {
		httputil.HandleErrorGin(c, authzDomain.DenyError(identity, scoped), h.logger)
		return
	}

	c.JSON(http.StatusOK, h.registry.FilterOutput(scoped, subscriptionFields(subscription)))
}

// ListSubscriptionsHandler lists subscriptions across all members.
// GET /v1/subscriptions - guarded by read:subscription:other; a bulk
// listing never authorizes through the self scope. Each row is projected
// through the other-scope schema.
func (h *SubscriptionHandler) ListSubscriptionsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	subscriptions, err := h.useCase.ListSubscriptions(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	rows := make([]map[string]any, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		rows = append(rows, subscriptionFields(subscription))
	}

	c.JSON(http.StatusOK, gin.H{
		"subscriptions": h.registry.FilterOutputs(authzDomain.FeatureReadSubscriptionOther, rows),
		"offset":        offset,
		"limit":         limit,
	})
}

// UpdateSubscriptionHandler updates a subscription.
// PUT /v1/subscriptions/:id - guarded by update:subscription.
func (h *SubscriptionHandler) UpdateSubscriptionHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrSubscriptionNotFound, h.logger)
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var input subscriptionUseCase.UpdateSubscriptionInput
	filtered := h.registry.FilterInput(authzDomain.FeatureUpdateSubscription, raw)
	if err := httputil.DecodeMap(filtered, &input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	subscription, err := h.useCase.UpdateSubscription(c.Request.Context(), id, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK,
		h.registry.FilterOutput(authzDomain.FeatureUpdateSubscription, subscriptionFields(subscription)))
}

// DeleteSubscriptionHandler removes a subscription.
// DELETE /v1/subscriptions/:id - guarded by delete:subscription. Returns 204.
func (h *SubscriptionHandler) DeleteSubscriptionHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrSubscriptionNotFound, h.logger)
		return
	}

	if err := h.useCase.DeleteSubscription(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
