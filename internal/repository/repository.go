package repository

import (
	"context"

	"solesnaps-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products matching the filter with pagination support,
	// returning the page and the total match count.
	List(ctx context.Context, filter model.ProductFilter, limit, offset int) ([]model.Product, int64, error)

	// GetByID retrieves a single product by its ID. Returns (nil, nil) when
	// the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create inserts a new product and fills in generated fields.
	Create(ctx context.Context, product *model.Product) error

	// Update rewrites a product's mutable fields.
	Update(ctx context.Context, product *model.Product) error

	// Deactivate soft-deletes a product by clearing its active flag.
	Deactivate(ctx context.Context, id uuid.UUID) error

	// DecrementStock atomically decrements stock within the transaction,
	// only when the product is active and has sufficient stock. The updated
	// row is returned; a domain error describes why the decrement did not
	// happen.
	DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) (*model.Product, error)

	// RestoreStock adds quantity back to a product's stock within the
	// transaction. Used by order cancellation.
	RestoreStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	UserID *uuid.UUID
	Status *model.OrderStatus
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items. Returns
	// (nil, nil, nil) when the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// List retrieves orders matching the filter, newest first, returning the
	// page and the total match count.
	List(ctx context.Context, filter OrderFilter, limit, offset int) ([]model.Order, int64, error)

	// UpdateStatus sets an order's status (and optional notes) within the
	// provided transaction, guarded on the status the caller observed.
	// Returns ErrStatusConflict when the row no longer holds that status.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to model.OrderStatus, notes *string) error
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// ListByUser retrieves a user's cart items joined with product data.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CartItemDetail, error)

	// Upsert inserts a cart item, or adds to the quantity of an existing
	// item with the same product, size and color.
	Upsert(ctx context.Context, item *model.CartItem) error

	// UpdateQuantity changes the quantity of a user's cart item. Returns
	// model.ErrCartItemNotFound when no such item belongs to the user.
	UpdateQuantity(ctx context.Context, id, userID uuid.UUID, quantity int) error

	// Delete removes a user's cart item. Returns model.ErrCartItemNotFound
	// when no such item belongs to the user.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// Clear removes all cart items for the user.
	Clear(ctx context.Context, userID uuid.UUID) error
}

// LocationRepository defines the interface for delivery location data access.
type LocationRepository interface {
	// List retrieves delivery locations, optionally only active ones.
	List(ctx context.Context, activeOnly bool) ([]model.DeliveryLocation, error)

	// GetByID retrieves a single location. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*model.DeliveryLocation, error)

	// Create inserts a new delivery location.
	Create(ctx context.Context, location *model.DeliveryLocation) error

	// Update rewrites a location's mutable fields.
	Update(ctx context.Context, location *model.DeliveryLocation) error
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user. Returns model.ErrEmailTaken when the email
	// is already registered.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user by email. Returns (nil, nil) when missing.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// CouponRepository defines the interface for coupon data access operations.
type CouponRepository interface {
	// GetByCode retrieves a coupon by its code. Returns (nil, nil) when missing.
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)

	// GetByID retrieves a coupon by its ID. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)

	// List retrieves all coupons, newest first.
	List(ctx context.Context, limit, offset int) ([]model.Coupon, int64, error)

	// Create inserts a new coupon. Returns model.ErrDuplicateCoupon when the
	// code already exists.
	Create(ctx context.Context, coupon *model.Coupon) error

	// Update rewrites a coupon's mutable fields.
	Update(ctx context.Context, coupon *model.Coupon) error

	// Redeem increments a coupon's used count within the transaction,
	// respecting the usage limit. Returns model.ErrInvalidCoupon when the
	// limit has been reached.
	Redeem(ctx context.Context, tx pgx.Tx, id uuid.UUID) error

	// BulkUpsert inserts coupons in bulk, skipping codes that already exist.
	// Returns the number inserted and the number skipped.
	BulkUpsert(ctx context.Context, coupons []model.Coupon) (inserted, skipped int, err error)
}
