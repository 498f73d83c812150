package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents an item in the storefront catalogue.
type Product struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Description   string          `json:"description" db:"description"`
	Brand         string          `json:"brand" db:"brand"`
	Category      string          `json:"category" db:"category"`
	Price         decimal.Decimal `json:"price" db:"price"`
	StockQuantity int             `json:"stockQuantity" db:"stock_quantity"`
	IsActive      bool            `json:"isActive" db:"is_active"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}

// ProductRequest is the payload for creating or updating a product.
type ProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Brand         string          `json:"brand"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	IsActive      *bool           `json:"isActive,omitempty"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category   string
	Brand      string
	ActiveOnly bool
}
