package model

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// PaymentStatus is the settlement state of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Accepted payment methods.
var PaymentMethods = []string{"card", "mpesa", "cash_on_delivery"}

// ValidPaymentMethod reports whether the method is accepted.
func ValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// orderTransitions defines the allowed next states per current state.
// Cancellation is reachable from every non-terminal state; delivered and
// cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered, OrderCancelled},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// Valid reports whether the status is in the fixed allow-list.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// Terminal reports whether no further transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// CanTransitionTo reports whether the transition is in the lifecycle table.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowedNext returns the states reachable from s.
func (s OrderStatus) AllowedNext() []string {
	next := make([]string, 0, len(orderTransitions[s]))
	for _, status := range orderTransitions[s] {
		next = append(next, string(status))
	}
	return next
}

// AllOrderStatuses returns the full status allow-list.
func AllOrderStatuses() []string {
	return []string{
		string(OrderPending),
		string(OrderConfirmed),
		string(OrderProcessing),
		string(OrderShipped),
		string(OrderDelivered),
		string(OrderCancelled),
	}
}

// Order represents a customer order.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"userId" db:"user_id"`
	OrderNumber     string          `json:"orderNumber" db:"order_number"`
	Status          OrderStatus     `json:"status" db:"status"`
	PaymentMethod   string          `json:"paymentMethod" db:"payment_method"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus" db:"payment_status"`
	Subtotal        decimal.Decimal `json:"subtotal" db:"subtotal"`
	ShippingAmount  decimal.Decimal `json:"shippingAmount" db:"shipping_amount"`
	DiscountAmount  decimal.Decimal `json:"discountAmount" db:"discount_amount"`
	TotalAmount     decimal.Decimal `json:"totalAmount" db:"total_amount"`
	CouponID        *uuid.UUID      `json:"couponId,omitempty" db:"coupon_id"`
	ShippingAddress json.RawMessage `json:"shippingAddress" db:"shipping_address"`
	TrackingNumber  *string         `json:"trackingNumber,omitempty" db:"tracking_number"`
	Notes           *string         `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line item with the unit price captured at checkout time.
type OrderItem struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	ProductID uuid.UUID       `json:"productId" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`
}

// ShippingAddress is the delivery location snapshot denormalised onto the
// order at checkout time.
type ShippingAddress struct {
	DeliveryLocationID uuid.UUID `json:"delivery_location_id"`
	City               string    `json:"city"`
	PickupLocation     string    `json:"pickup_location"`
	PickupPhone        string    `json:"pickup_phone"`
}

// CreateOrderRequest is the checkout payload. Monetary totals are computed
// server-side from live prices; any client-sent amounts are ignored.
type CreateOrderRequest struct {
	DeliveryLocationID uuid.UUID          `json:"deliveryLocationId"`
	PaymentMethod      string             `json:"paymentMethod"`
	CouponCode         *string            `json:"couponCode,omitempty"`
	Notes              *string            `json:"notes,omitempty"`
	Items              []OrderItemRequest `json:"orderItems"`
}

// OrderItemRequest is a single requested line item.
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// OrderResponse is the composed order returned by checkout and reads.
type OrderResponse struct {
	Order            *Order            `json:"order"`
	Items            []OrderItem       `json:"items"`
	DeliveryLocation *DeliveryLocation `json:"deliveryLocation,omitempty"`
	User             *User             `json:"user,omitempty"`
}

// UpdateStatusRequest is the admin payload for a status transition.
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// Pagination describes an offset-paginated listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// OrderListResponse is a page of orders.
type OrderListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

const orderNumberCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewOrderNumber generates a human-readable order number from the current
// date and a short random suffix. Uniqueness is enforced by the database;
// callers retry on conflict.
func NewOrderNumber(now time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read on a healthy system never fails; fall back to nanos.
		return fmt.Sprintf("SS-%s-%06d", now.Format("20060102"), now.Nanosecond()%1000000)
	}
	for i, b := range buf {
		buf[i] = orderNumberCharset[int(b)%len(orderNumberCharset)]
	}
	return fmt.Sprintf("SS-%s-%s", now.Format("20060102"), string(buf))
}
