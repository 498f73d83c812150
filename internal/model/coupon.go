package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount types.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon is a discount code applicable at checkout.
type Coupon struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	Code           string          `json:"code" db:"code"`
	DiscountType   string          `json:"discountType" db:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discountValue" db:"discount_value"`
	MinOrderAmount decimal.Decimal `json:"minOrderAmount" db:"min_order_amount"`
	UsageLimit     *int            `json:"usageLimit,omitempty" db:"usage_limit"`
	UsedCount      int             `json:"usedCount" db:"used_count"`
	IsActive       bool            `json:"isActive" db:"is_active"`
	ExpiresAt      *time.Time      `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}

// DiscountFor computes the discount a coupon grants against a subtotal.
// The result never exceeds the subtotal.
func (c *Coupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	if c.DiscountType == DiscountPercentage {
		discount = subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
	} else {
		discount = c.DiscountValue
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}

// Redeemable reports whether the coupon can be applied to an order of the
// given subtotal at the given time.
func (c *Coupon) Redeemable(subtotal decimal.Decimal, now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return false
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false
	}
	return subtotal.GreaterThanOrEqual(c.MinOrderAmount)
}

// CouponRequest is the admin payload for creating or updating a coupon.
type CouponRequest struct {
	Code           string          `json:"code"`
	DiscountType   string          `json:"discountType"`
	DiscountValue  decimal.Decimal `json:"discountValue"`
	MinOrderAmount decimal.Decimal `json:"minOrderAmount"`
	UsageLimit     *int            `json:"usageLimit,omitempty"`
	IsActive       *bool           `json:"isActive,omitempty"`
	ExpiresAt      *time.Time      `json:"expiresAt,omitempty"`
}

// CouponValidateRequest previews the discount for a code against a subtotal.
type CouponValidateRequest struct {
	Code     string          `json:"code"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CouponValidateResponse is the discount preview.
type CouponValidateResponse struct {
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
}

// CouponImportRequest is the admin payload for bulk-importing coupon codes
// from a code file (one code per line, optionally gzipped).
type CouponImportRequest struct {
	File           string          `json:"file"`
	DiscountType   string          `json:"discountType"`
	DiscountValue  decimal.Decimal `json:"discountValue"`
	MinOrderAmount decimal.Decimal `json:"minOrderAmount"`
	ExpiresAt      *time.Time      `json:"expiresAt,omitempty"`
}

// CouponImportResponse reports the outcome of a bulk import.
type CouponImportResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
