package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one product entry in a user's cart.
type CartItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"-" db:"user_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Size      *string   `json:"size,omitempty" db:"size"`
	Color     *string   `json:"color,omitempty" db:"color"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CartItemDetail joins a cart item with its product.
type CartItemDetail struct {
	CartItem
	Product Product `json:"product"`
}

// LineTotal is the item's quantity priced at the current product price.
func (d *CartItemDetail) LineTotal() decimal.Decimal {
	return d.Product.Price.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// CartResponse is a user's cart with a running subtotal.
type CartResponse struct {
	Items    []CartItemDetail `json:"items"`
	Subtotal decimal.Decimal  `json:"subtotal"`
}

// AddCartItemRequest adds a product to the cart. Adding the same
// product/size/color combination again increases the quantity.
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Size      *string   `json:"size,omitempty"`
	Color     *string   `json:"color,omitempty"`
}

// UpdateCartItemRequest changes the quantity of a cart item.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
