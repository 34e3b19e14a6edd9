// Package domain defines the shop product entity and related errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovationhq/ovation/internal/errors"
)

// Product represents an item in the studio shop catalog. Checkout and
// fulfillment live outside this service; the catalog only tracks what is
// offered and at what price.
type Product struct {
	ID            uuid.UUID
	Name          string
	Description   string
	PriceCents    int64
	StockQuantity int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Domain-specific errors for product operations.
var (
	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.Wrap(errors.ErrNotFound, "product not found")
)
