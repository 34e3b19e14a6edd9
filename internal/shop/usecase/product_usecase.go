// Package usecase implements the shop catalog business logic.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/shop/domain"
	appValidation "github.com/ovationhq/ovation/internal/validation"
)

// CreateProductInput contains the input data for product creation.
type CreateProductInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	PriceCents    int64  `json:"price_cents"`
	StockQuantity int64  `json:"stock_quantity"`
}

// UpdateProductInput contains the updatable product fields. Nil numeric
// fields and empty strings are left unchanged.
type UpdateProductInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	PriceCents    *int64 `json:"price_cents"`
	StockQuantity *int64 `json:"stock_quantity"`
}

// UseCase defines the interface for product business logic operations
type UseCase interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context, offset, limit int) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ProductRepository interface defines product repository operations
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductUseCase handles product-related business logic
type ProductUseCase struct {
	productRepo ProductRepository
}

// NewProductUseCase creates a new ProductUseCase
func NewProductUseCase(productRepo ProductRepository) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
	}
}

func (uc *ProductUseCase) validateCreateProductInput(input CreateProductInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.PriceCents,
			validation.Min(int64(0)).Error("price_cents must not be negative"),
		),
		validation.Field(&input.StockQuantity,
			validation.Min(int64(0)).Error("stock_quantity must not be negative"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateProduct adds a new product to the catalog.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if err := uc.validateCreateProductInput(input); err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:            uuid.Must(uuid.NewV7()),
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		PriceCents:    input.PriceCents,
		StockQuantity: input.StockQuantity,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (uc *ProductUseCase) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

// ListProducts retrieves a page of products
func (uc *ProductUseCase) ListProducts(ctx context.Context, offset, limit int) ([]*domain.Product, error) {
	return uc.productRepo.List(ctx, offset, limit)
}

// UpdateProduct applies the provided changes to an existing product.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error) {
	if err := uc.validateUpdateProductInput(input); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		product.Name = strings.TrimSpace(input.Name)
	}
	if input.Description != "" {
		product.Description = strings.TrimSpace(input.Description)
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *ProductUseCase) validateUpdateProductInput(input UpdateProductInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.PriceCents,
			validation.By(func(value any) error {
				if input.PriceCents != nil {
					return validation.Validate(*input.PriceCents,
						validation.Min(int64(0)).Error("price_cents must not be negative"))
				}
				return nil
			}),
		),
		validation.Field(&input.StockQuantity,
			validation.By(func(value any) error {
				if input.StockQuantity != nil {
					return validation.Validate(*input.StockQuantity,
						validation.Min(int64(0)).Error("stock_quantity must not be negative"))
				}
				return nil
			}),
		),
	)
	return appValidation.WrapValidationError(err)
}

// DeleteProduct removes a product by ID
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return uc.productRepo.Delete(ctx, id)
}
