package service

import (
	"context"
	"fmt"
	"time"

	"solesnaps-api/internal/model"
	"solesnaps-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// Get retrieves the user's cart with a running subtotal. The subtotal uses
// current product prices, not the price at the time the item was added.
func (s *cartService) Get(ctx context.Context, userID uuid.UUID) (*model.CartResponse, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	subtotal := decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(items[i].LineTotal())
	}

	return &model.CartResponse{Items: items, Subtotal: subtotal}, nil
}

// Add puts a product into the cart. Adding the same product/size/color
// combination again increases the quantity. Stock is only an advisory check
// here; checkout is where it is enforced.
func (s *cartService) Add(ctx context.Context, userID uuid.UUID, req *model.AddCartItemRequest) (*model.CartResponse, error) {
	if req == nil || req.ProductID == uuid.Nil {
		return nil, model.NewValidationError("product ID is required")
	}
	if req.Quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil || !product.IsActive {
		return nil, model.ErrProductNotFound
	}
	if product.StockQuantity < req.Quantity {
		return nil, model.NewInsufficientStockError(product.ID.String(), product.StockQuantity, req.Quantity)
	}

	now := time.Now()
	item := &model.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.cartRepo.Upsert(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID.String()).
		Str("product_id", req.ProductID.String()).
		Int("quantity", item.Quantity).
		Msg("cart item added")

	return s.Get(ctx, userID)
}

// UpdateQuantity changes a cart item's quantity.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*model.CartResponse, error) {
	if quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	if err := s.cartRepo.UpdateQuantity(ctx, itemID, userID, quantity); err != nil {
		return nil, err
	}

	return s.Get(ctx, userID)
}

// Remove deletes a cart item.
func (s *cartService) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	return s.cartRepo.Delete(ctx, itemID, userID)
}

// Clear removes all items from the user's cart.
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
