package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"solesnaps-api/internal/model"
	"solesnaps-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxOrderNumberRetries bounds checkout retries on order number collisions.
const maxOrderNumberRetries = 3

// orderService implements OrderService.
type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	cartRepo     repository.CartRepository
	locationRepo repository.LocationRepository
	couponRepo   repository.CouponRepository
	userRepo     repository.UserRepository
	logger       zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	locationRepo repository.LocationRepository,
	couponRepo repository.CouponRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		cartRepo:     cartRepo,
		locationRepo: locationRepo,
		couponRepo:   couponRepo,
		userRepo:     userRepo,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

// Checkout validates and creates an order. Stock decrements, coupon
// redemption, the order header and all items commit in one transaction, so
// either the whole order exists or none of it does. Cart clearing runs after
// commit and never fails the order.
func (s *orderService) Checkout(ctx context.Context, actor Actor, req *model.CreateOrderRequest) (*model.OrderResponse, error) {
	if err := s.validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	// Delivery location is a precondition check, validated before any write.
	location, err := s.locationRepo.GetByID(ctx, req.DeliveryLocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate delivery location: %w", err)
	}
	if location == nil || location.Status != model.LocationActive {
		s.logger.Warn().
			Str("location_id", req.DeliveryLocationID.String()).
			Msg("order rejected: invalid delivery location")
		return nil, model.NewInvalidLocationError(req.DeliveryLocationID.String())
	}

	// Coupon existence is checked up front; redeemability depends on the
	// subtotal and is re-checked inside the transaction.
	var coupon *model.Coupon
	if req.CouponCode != nil && *req.CouponCode != "" {
		coupon, err = s.couponRepo.GetByCode(ctx, *req.CouponCode)
		if err != nil {
			return nil, fmt.Errorf("failed to look up coupon: %w", err)
		}
		if coupon == nil {
			return nil, model.ErrInvalidCoupon
		}
	}

	// Retry loop: handles order number unique constraint collisions.
	var resp *model.OrderResponse
	for attempt := 0; attempt < maxOrderNumberRetries; attempt++ {
		resp, err = s.checkoutTx(ctx, actor, req, location, coupon)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrDuplicateOrderNumber) {
			continue
		}
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Cart clearing is deliberate best-effort cleanup: a failure here is
	// logged but never surfaces to the client or undoes the order.
	if clearErr := s.cartRepo.Clear(ctx, actor.UserID); clearErr != nil {
		s.logger.Error().
			Err(clearErr).
			Str("user_id", actor.UserID.String()).
			Str("order_id", resp.Order.ID.String()).
			Msg("failed to clear cart after checkout")
	}

	s.logger.Info().
		Str("order_id", resp.Order.ID.String()).
		Str("order_number", resp.Order.OrderNumber).
		Int("item_count", len(resp.Items)).
		Str("total", resp.Order.TotalAmount.String()).
		Msg("order created successfully")

	return resp, nil
}

// checkoutTx executes one checkout attempt in a single transaction.
func (s *orderService) checkoutTx(
	ctx context.Context,
	actor Actor,
	req *model.CreateOrderRequest,
	location *model.DeliveryLocation,
	coupon *model.Coupon,
) (*model.OrderResponse, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	orderID := uuid.New()
	subtotal := decimal.Zero
	items := make([]model.OrderItem, 0, len(req.Items))

	// Each decrement is a single conditional update: it succeeds only when
	// the product is active and stock suffices, so concurrent checkouts
	// cannot oversell. The unit price is captured from the same row.
	for _, item := range req.Items {
		product, err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, err
		}

		items = append(items, model.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	discount := decimal.Zero
	var couponID *uuid.UUID
	if coupon != nil {
		if !coupon.Redeemable(subtotal, time.Now()) {
			return nil, model.ErrInvalidCoupon
		}
		if err := s.couponRepo.Redeem(ctx, tx, coupon.ID); err != nil {
			return nil, err
		}
		discount = coupon.DiscountFor(subtotal)
		couponID = &coupon.ID
	}

	total := subtotal.Add(location.ShippingCost).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	address, err := json.Marshal(model.ShippingAddress{
		DeliveryLocationID: location.ID,
		City:               location.City,
		PickupLocation:     location.PickupLocation,
		PickupPhone:        location.PickupPhone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode shipping address: %w", err)
	}

	now := time.Now()
	order := &model.Order{
		ID:              orderID,
		UserID:          actor.UserID,
		OrderNumber:     model.NewOrderNumber(now),
		Status:          model.OrderPending,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   model.PaymentPending,
		Subtotal:        subtotal,
		ShippingAmount:  location.ShippingCost,
		DiscountAmount:  discount,
		TotalAmount:     total,
		CouponID:        couponID,
		ShippingAddress: address,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return &model.OrderResponse{
		Order:            order,
		Items:            items,
		DeliveryLocation: location,
	}, nil
}

// GetByID retrieves an order by its ID with all items and the owning user.
func (s *orderService) GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, nil
	}

	// Foreign orders look like missing orders to non-admin callers.
	if !actor.Admin() && order.UserID != actor.UserID {
		s.logger.Debug().
			Str("order_id", id.String()).
			Str("user_id", actor.UserID.String()).
			Msg("order belongs to another user")
		return nil, nil
	}

	user, err := s.userRepo.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order user: %w", err)
	}

	return &model.OrderResponse{
		Order: order,
		Items: items,
		User:  user,
	}, nil
}

// List retrieves a page of orders, newest first.
func (s *orderService) List(ctx context.Context, actor Actor, status string, page, limit int) (*model.OrderListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := repository.OrderFilter{}
	if !actor.Admin() {
		userID := actor.UserID
		filter.UserID = &userID
	}
	if status != "" {
		orderStatus := model.OrderStatus(status)
		if !orderStatus.Valid() {
			return nil, model.NewInvalidStatusError(status)
		}
		filter.Status = &orderStatus
	}

	orders, total, err := s.orderRepo.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &model.OrderListResponse{
		Orders: orders,
		Pagination: model.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// UpdateStatus transitions an order through its lifecycle. The target status
// must be in the allow-list and reachable from the current status per the
// transition table. Transitioning to cancelled restores stock.
func (s *orderService) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, req *model.UpdateStatusRequest) (*model.OrderResponse, error) {
	if !actor.Admin() {
		return nil, model.ErrForbidden
	}

	target := model.OrderStatus(req.Status)
	if !target.Valid() {
		return nil, model.NewInvalidStatusError(req.Status)
	}

	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, nil
	}

	if !order.Status.CanTransitionTo(target) {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", string(order.Status)).
			Str("to", string(target)).
			Msg("rejected status transition")
		return nil, model.NewInvalidTransitionError(order.Status, target)
	}

	if target == model.OrderCancelled {
		if err := s.cancelTx(ctx, order, items, req.Notes); err != nil {
			return nil, err
		}
	} else {
		tx, err := s.orderRepo.BeginTx(ctx)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback(ctx) //nolint:errcheck

		if err := s.orderRepo.UpdateStatus(ctx, tx, id, order.Status, target, req.Notes); err != nil {
			if errors.Is(err, repository.ErrStatusConflict) {
				return nil, model.NewTransitionConflictError(order.Status, target)
			}
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("failed to commit status update: %w", err)
		}
	}

	order.Status = target
	if req.Notes != nil {
		order.Notes = req.Notes
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(target)).
		Msg("order status updated")

	return &model.OrderResponse{Order: order, Items: items}, nil
}

// Cancel cancels an order and restores stock for each item. Owners may
// cancel pending or confirmed orders; admins may cancel any non-terminal
// order.
func (s *orderService) Cancel(ctx context.Context, actor Actor, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, nil
	}
	if !actor.Admin() && order.UserID != actor.UserID {
		return nil, nil
	}

	cancellable := order.Status == model.OrderPending || order.Status == model.OrderConfirmed
	if actor.Admin() {
		cancellable = !order.Status.Terminal()
	}
	if !cancellable {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("status", string(order.Status)).
			Msg("order cannot be cancelled")
		return nil, model.ErrCannotCancel
	}

	if err := s.cancelTx(ctx, order, items, nil); err != nil {
		return nil, err
	}

	order.Status = model.OrderCancelled

	s.logger.Info().
		Str("order_id", id.String()).
		Int("item_count", len(items)).
		Msg("order cancelled")

	return &model.OrderResponse{Order: order, Items: items}, nil
}

// cancelTx restores stock for every item and marks the order cancelled in a
// single transaction. The status update is guarded on the status the caller
// read, so a racing cancellation or admin transition rolls the stock
// restoration back instead of applying it twice.
func (s *orderService) cancelTx(ctx context.Context, order *model.Order, items []model.OrderItem, notes *string) error {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, item := range items {
		if err := s.productRepo.RestoreStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, tx, order.ID, order.Status, model.OrderCancelled, notes); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return model.NewTransitionConflictError(order.Status, model.OrderCancelled)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit cancellation: %w", err)
	}

	return nil
}

// validateCheckoutRequest validates the checkout payload before any write.
func (s *orderService) validateCheckoutRequest(req *model.CreateOrderRequest) error {
	if req == nil {
		return model.NewValidationError("order request is required")
	}

	if req.DeliveryLocationID == uuid.Nil {
		return model.NewValidationError("delivery location is required")
	}

	if !model.ValidPaymentMethod(req.PaymentMethod) {
		return model.NewValidationError(fmt.Sprintf("unsupported payment method %q", req.PaymentMethod))
	}

	if len(req.Items) == 0 {
		return model.NewValidationError("order must contain at least one item")
	}

	for i, item := range req.Items {
		if item.ProductID == uuid.Nil {
			return model.NewValidationError(fmt.Sprintf("item %d: product ID is required", i))
		}
		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID.String()).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}
