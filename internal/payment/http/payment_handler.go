// Package http provides HTTP handlers for payment operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	authzHTTP "github.com/ovationhq/ovation/internal/authz/http"
	"github.com/ovationhq/ovation/internal/httputil"
	"github.com/ovationhq/ovation/internal/payment/domain"
	paymentUseCase "github.com/ovationhq/ovation/internal/payment/usecase"
)

// PaymentHandler handles HTTP requests for payment operations.
type PaymentHandler struct {
	useCase  paymentUseCase.UseCase
	guard    *authzHTTP.Guard
	registry *authzDomain.SchemaRegistry
	logger   *slog.Logger
}

// NewPaymentHandler creates a new payment handler with required dependencies.
func NewPaymentHandler(
	useCase paymentUseCase.UseCase,
	guard *authzHTTP.Guard,
	registry *authzDomain.SchemaRegistry,
	logger *slog.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		useCase:  useCase,
		guard:    guard,
		registry: registry,
		logger:   logger,
	}
}

func paymentFields(payment *domain.Payment) map[string]any {
	return map[string]any{
		"id":                payment.ID,
		"user_id":           payment.UserID,
		"subscription_id":   payment.SubscriptionID,
		"amount_cents":      payment.AmountCents,
		"status":            payment.Status,
		"gateway_reference": payment.GatewayReference,
		"paid_at":           payment.PaidAt,
		"created_at":        payment.CreatedAt,
		"updated_at":        payment.UpdatedAt,
	}
}

// GetPaymentHandler retrieves one payment.
// GET /v1/payments/:id - scope resolves per ownership; the self view never
// includes the gateway reference.
func (h *PaymentHandler) GetPaymentHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrPaymentNotFound, h.logger)
		return
	}

	payment, err := h.useCase.GetPayment(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	identity := authzHTTP.IdentityOrAnonymous(c.Request.Context())
	scoped, allowed := h.guard.AllowOn(c.Request.Context(), identity, "read:payment", payment)
	if !allowed {
		httputil.HandleErrorGin(c, authzDomain.DenyError(identity, scoped), h.logger)
		return
	}

	c.JSON(http.StatusOK, h.registry.FilterOutput(scoped, paymentFields(payment)))
}

// ListPaymentsHandler lists payments across all members.
// GET /v1/payments - guarded by read:payment:other.
func (h *PaymentHandler) ListPaymentsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	payments, err := h.useCase.ListPayments(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	rows := make([]map[string]any, 0, len(payments))
	for _, payment := range payments {
		rows = append(rows, paymentFields(payment))
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": h.registry.FilterOutputs(authzDomain.FeatureReadPaymentOther, rows),
		"offset":   offset,
		"limit":    limit,
	})
}

// paymentActionRequest is the body of a payment state transition.
type paymentActionRequest struct {
	Action           string `json:"action"`
	GatewayReference string `json:"gateway_reference"`
}

// UpdatePaymentHandler applies a state transition to a payment. The required
// feature depends on the requested action, so the check happens here rather
// than in route middleware.
// PUT /v1/payments/:id - action "confirm_paid" requires
// update:payment:confirm_paid.
func (h *PaymentHandler) UpdatePaymentHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrPaymentNotFound, h.logger)
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var input paymentActionRequest
	filtered := h.registry.FilterInput(authzDomain.FeatureUpdatePaymentConfirmPaid, raw)
	if err := httputil.DecodeMap(filtered, &input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if input.Action != "confirm_paid" {
		httputil.HandleErrorGin(c, domain.ErrUnknownAction, h.logger)
		return
	}

	identity := authzHTTP.IdentityOrAnonymous(c.Request.Context())
	if !h.guard.Allow(c.Request.Context(), identity, authzDomain.FeatureUpdatePaymentConfirmPaid) {
		httputil.HandleErrorGin(c,
			authzDomain.DenyError(identity, authzDomain.FeatureUpdatePaymentConfirmPaid), h.logger)
		return
	}

	payment, err := h.useCase.ConfirmPaid(c.Request.Context(), id, input.GatewayReference)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK,
		h.registry.FilterOutput(authzDomain.FeatureUpdatePaymentConfirmPaid, paymentFields(payment)))
}
