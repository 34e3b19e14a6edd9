// Package http provides HTTP handlers for the shop catalog.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authzDomain "github.com/ovationhq/ovation/internal/authz/domain"
	"github.com/ovationhq/ovation/internal/httputil"
	"github.com/ovationhq/ovation/internal/shop/domain"
	shopUseCase "github.com/ovationhq/ovation/internal/shop/usecase"
)

// ProductHandler handles HTTP requests for shop catalog operations.
// Product features are unscoped, so the route guard does all the authorization.
type ProductHandler struct {
	useCase  shopUseCase.UseCase
	registry *authzDomain.SchemaRegistry
	logger   *slog.Logger
}

// NewProductHandler creates a new product handler with required dependencies.
func NewProductHandler(
	useCase shopUseCase.UseCase,
	registry *authzDomain.SchemaRegistry,
	logger *slog.Logger,
) *ProductHandler {
	return &ProductHandler{
		useCase:  useCase,
		registry: registry,
		logger:   logger,
	}
}

func productFields(product *domain.Product) map[string]any {
	return map[string]any{
		"id":             product.ID,
		"name":           product.Name,
		"description":    product.Description,
		"price_cents":    product.PriceCents,
		"stock_quantity": product.StockQuantity,
		"created_at":     product.CreatedAt,
		"updated_at":     product.UpdatedAt,
	}
}

// CreateProductHandler adds a product to the catalog.
// POST /v1/products - guarded by create:product. Returns 201.
func (h *ProductHandler) CreateProductHandler(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var input shopUseCase.CreateProductInput
	filtered := h.registry.FilterInput(authzDomain.FeatureCreateProduct, raw)
	if err := httputil.DecodeMap(filtered, &input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	product, err := h.useCase.CreateProduct(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated,
		h.registry.FilterOutput(authzDomain.FeatureCreateProduct, productFields(product)))
}

// GetProductHandler retrieves one product.
// GET /v1/products/:id - guarded by read:product.
func (h *ProductHandler) GetProductHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrProductNotFound, h.logger)
		return
	}

	product, err := h.useCase.GetProduct(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK,
		h.registry.FilterOutput(authzDomain.FeatureReadProduct, productFields(product)))
}

// ListProductsHandler lists the catalog ordered by name.
// GET /v1/products - guarded by read:product.
func (h *ProductHandler) ListProductsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	products, err := h.useCase.ListProducts(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	rows := make([]map[string]any, 0, len(products))
	for _, product := range products {
		rows = append(rows, productFields(product))
	}

	c.JSON(http.StatusOK, gin.H{
		"products": h.registry.FilterOutputs(authzDomain.FeatureReadProduct, rows),
		"offset":   offset,
		"limit":    limit,
	})
}

// UpdateProductHandler updates a product.
// PUT /v1/products/:id - guarded by update:product.
func (h *ProductHandler) UpdateProductHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrProductNotFound, h.logger)
		return
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var input shopUseCase.UpdateProductInput
	filtered := h.registry.FilterInput(authzDomain.FeatureUpdateProduct, raw)
	if err := httputil.DecodeMap(filtered, &input); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	product, err := h.useCase.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK,
		h.registry.FilterOutput(authzDomain.FeatureUpdateProduct, productFields(product)))
}

// DeleteProductHandler removes a product.
// DELETE /v1/products/:id - guarded by delete:product. Returns 204.
func (h *ProductHandler) DeleteProductHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, domain.ErrProductNotFound, h.logger)
		return
	}

	if err := h.useCase.DeleteProduct(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
