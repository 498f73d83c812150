package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidProduct     = "INVALID_PRODUCT"
	ErrCodeInsufficientStock  = "INSUFFICIENT_STOCK"
	ErrCodeLocationNotFound   = "LOCATION_NOT_FOUND"
	ErrCodeInvalidLocation    = "INVALID_LOCATION"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodeCannotCancel       = "CANNOT_CANCEL"
	ErrCodeCartItemNotFound   = "CART_ITEM_NOT_FOUND"
	ErrCodeInvalidCoupon      = "INVALID_COUPON"
	ErrCodeCouponNotFound     = "COUPON_NOT_FOUND"
	ErrCodeDuplicateCoupon    = "DUPLICATE_COUPON"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a typed business error. Handlers branch on Code rather than
// matching error strings.
type DomainError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a 400-class validation error with a custom message.
func NewValidationError(message string) *DomainError {
	return &DomainError{Code: ErrCodeValidation, Message: message}
}

// NewInvalidProductError names the product that failed checkout validation.
func NewInvalidProductError(productID string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidProduct,
		Message: fmt.Sprintf("product %s is invalid or unavailable", productID),
		Details: map[string]interface{}{"product_id": productID},
	}
}

// NewInsufficientStockError names the product along with available and
// requested quantities.
func NewInsufficientStockError(productID string, available, requested int) *DomainError {
	return &DomainError{
		Code:    ErrCodeInsufficientStock,
		Message: fmt.Sprintf("insufficient stock for product %s", productID),
		Details: map[string]interface{}{
			"product_id": productID,
			"available":  available,
			"requested":  requested,
		},
	}
}

// NewInvalidLocationError names the delivery location that failed validation.
func NewInvalidLocationError(locationID string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidLocation,
		Message: fmt.Sprintf("delivery location %s is invalid or inactive", locationID),
		Details: map[string]interface{}{"delivery_location_id": locationID},
	}
}

// NewInvalidStatusError names the allowed status set.
func NewInvalidStatusError(status string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidStatus,
		Message: fmt.Sprintf("invalid status %q", status),
		Details: map[string]interface{}{"allowed": AllOrderStatuses()},
	}
}

// NewInvalidTransitionError names the rejected transition.
func NewInvalidTransitionError(from, to OrderStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("order cannot move from %s to %s", from, to),
		Details: map[string]interface{}{
			"current": string(from),
			"allowed": from.AllowedNext(),
		},
	}
}

// NewTransitionConflictError reports that an order left the expected status
// before the transition could be applied.
func NewTransitionConflictError(expected, to OrderStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("order is no longer %s, cannot move to %s", expected, to),
		Details: map[string]interface{}{
			"expected": string(expected),
			"target":   string(to),
		},
	}
}

// Common domain errors
var (
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrLocationNotFound   = NewDomainError(ErrCodeLocationNotFound, "Delivery location not found")
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrCartItemNotFound   = NewDomainError(ErrCodeCartItemNotFound, "Cart item not found")
	ErrCannotCancel       = NewDomainError(ErrCodeCannotCancel, "Order can no longer be cancelled")
	ErrInvalidCoupon      = NewDomainError(ErrCodeInvalidCoupon, "Coupon code is not valid for this order")
	ErrCouponNotFound     = NewDomainError(ErrCodeCouponNotFound, "Coupon not found")
	ErrDuplicateCoupon    = NewDomainError(ErrCodeDuplicateCoupon, "A coupon with this code already exists")
	ErrEmailTaken         = NewDomainError(ErrCodeEmailTaken, "An account with this email already exists")
	ErrInvalidCredentials = NewDomainError(ErrCodeInvalidCredentials, "Invalid email or password")
	ErrUserNotFound       = NewDomainError(ErrCodeUserNotFound, "User not found")
	ErrForbidden          = NewDomainError(ErrCodeForbidden, "You do not have permission to perform this action")
)
