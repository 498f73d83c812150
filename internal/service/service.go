package service

import (
	"context"

	"solesnaps-api/internal/model"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// Admin reports whether the actor has the admin role.
func (a Actor) Admin() bool {
	return a.Role == model.RoleAdmin
}

// ProductService defines operations for product management.
type ProductService interface {
	// List retrieves products matching the filter with pagination.
	List(ctx context.Context, filter model.ProductFilter, page, limit int) ([]model.Product, model.Pagination, error)

	// GetByID retrieves a single product by ID. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create adds a new product to the catalogue.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update rewrites an existing product.
	Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)

	// Delete soft-deletes a product.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderService defines operations for the order workflow.
type OrderService interface {
	// Checkout validates and creates an order atomically: stock decrements,
	// coupon redemption, order header and items all commit or roll back
	// together. The cart is cleared best-effort after commit.
	Checkout(ctx context.Context, actor Actor, req *model.CreateOrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order with its items. Non-admin actors only see
	// their own orders; foreign orders surface as not found.
	GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*model.OrderResponse, error)

	// List retrieves a page of orders. Non-admin actors only see their own.
	List(ctx context.Context, actor Actor, status string, page, limit int) (*model.OrderListResponse, error)

	// UpdateStatus transitions an order through its lifecycle. Admin only;
	// the target must be allow-listed and reachable from the current status.
	UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, req *model.UpdateStatusRequest) (*model.OrderResponse, error)

	// Cancel cancels an order and restores stock for each item. Owners may
	// cancel pending/confirmed orders; admins any non-terminal order.
	Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*model.OrderResponse, error)
}

// CartService defines operations for cart management.
type CartService interface {
	// Get retrieves the user's cart with a running subtotal.
	Get(ctx context.Context, userID uuid.UUID) (*model.CartResponse, error)

	// Add puts a product into the cart, validating it is active and in stock.
	Add(ctx context.Context, userID uuid.UUID, req *model.AddCartItemRequest) (*model.CartResponse, error)

	// UpdateQuantity changes a cart item's quantity.
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*model.CartResponse, error)

	// Remove deletes a cart item.
	Remove(ctx context.Context, userID, itemID uuid.UUID) error

	// Clear removes all items from the user's cart.
	Clear(ctx context.Context, userID uuid.UUID) error
}

// UserService defines operations for registration and authentication.
type UserService interface {
	// Register creates an account and issues a token pair.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and issues a token pair.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*model.AuthResponse, error)

	// GetProfile retrieves the user's profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

// LocationService defines operations for delivery location management.
type LocationService interface {
	// List retrieves delivery locations. Non-admin callers see active only.
	List(ctx context.Context, includeInactive bool) ([]model.DeliveryLocation, error)

	// GetByID retrieves a single location. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*model.DeliveryLocation, error)

	// Create adds a new delivery location.
	Create(ctx context.Context, req *model.LocationRequest) (*model.DeliveryLocation, error)

	// Update rewrites an existing location.
	Update(ctx context.Context, id uuid.UUID, req *model.LocationRequest) (*model.DeliveryLocation, error)
}

// CouponService defines operations for coupon management and validation.
type CouponService interface {
	// Validate previews the discount a code grants against a subtotal.
	Validate(ctx context.Context, req *model.CouponValidateRequest) (*model.CouponValidateResponse, error)

	// List retrieves coupons with pagination.
	List(ctx context.Context, page, limit int) ([]model.Coupon, model.Pagination, error)

	// Create adds a new coupon.
	Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error)

	// Update rewrites an existing coupon.
	Update(ctx context.Context, id uuid.UUID, req *model.CouponRequest) (*model.Coupon, error)

	// Import bulk-loads coupon codes from a code file.
	Import(ctx context.Context, req *model.CouponImportRequest) (*model.CouponImportResponse, error)
}
