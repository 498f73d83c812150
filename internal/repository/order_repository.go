package repository

import (
	"context"
	"errors"
	"fmt"

	"solesnaps-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ErrDuplicateOrderNumber signals an order number collision; the caller
// regenerates the number and retries the transaction.
var ErrDuplicateOrderNumber = errors.New("duplicate order number")

// ErrStatusConflict signals that an order's status changed between the
// caller's read and the update. The transition must be re-evaluated against
// the current status.
var ErrStatusConflict = errors.New("order status changed concurrently")

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

const orderColumns = `id, user_id, order_number, status, payment_method, payment_status,
		subtotal, shipping_amount, discount_amount, total_amount, coupon_id,
		shipping_address, tracking_number, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	var subtotal, shipping, discount, total pgtype.Numeric
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.OrderNumber,
		&o.Status,
		&o.PaymentMethod,
		&o.PaymentStatus,
		&subtotal,
		&shipping,
		&discount,
		&total,
		&o.CouponID,
		&o.ShippingAddress,
		&o.TrackingNumber,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Subtotal = numericToDecimal(subtotal)
	o.ShippingAmount = numericToDecimal(shipping)
	o.DiscountAmount = numericToDecimal(discount)
	o.TotalAmount = numericToDecimal(total)
	return &o, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, order_number, status, payment_method, payment_status,
			subtotal, shipping_amount, discount_amount, total_amount, coupon_id,
			shipping_address, tracking_number, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.OrderNumber,
		order.Status,
		order.PaymentMethod,
		order.PaymentStatus,
		decimalToNumeric(order.Subtotal),
		decimalToNumeric(order.ShippingAmount),
		decimalToNumeric(order.DiscountAmount),
		decimalToNumeric(order.TotalAmount),
		order.CouponID,
		order.ShippingAddress,
		order.TrackingNumber,
		order.Notes,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "orders_order_number_key") {
			r.logger.Warn().
				Str("order_number", order.OrderNumber).
				Msg("order number collision")
			return ErrDuplicateOrderNumber
		}
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.OrderID, item.ProductID, item.Quantity, decimalToNumeric(item.UnitPrice))
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Str("product_id", items[i].ProductID.String()).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	orderQuery := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, orderQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	itemsQuery := `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.unit_price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Msg("failed to query order items")
		return nil, nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		var unitPrice pgtype.Numeric
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Quantity, &unitPrice)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		item.UnitPrice = numericToDecimal(unitPrice)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return order, items, nil
}

// List retrieves orders matching the filter, newest first.
func (r *orderRepository) List(ctx context.Context, filter OrderFilter, limit, offset int) ([]model.Order, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argn := 1

	if filter.UserID != nil {
		where += fmt.Sprintf(` AND user_id = $%d`, argn)
		args = append(args, *filter.UserID)
		argn++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(` AND status = $%d`, argn)
		args = append(args, *filter.Status)
		argn++
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders")
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, argn, argn+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, 0, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, total, nil
}

// UpdateStatus sets an order's status within the provided transaction. The
// update is guarded on the status the caller observed; zero rows affected
// means the order moved on (or never existed) and the transition no longer
// applies, reported as ErrStatusConflict.
func (r *orderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to model.OrderStatus, notes *string) error {
	query := `
		UPDATE orders
		SET status = $3, notes = COALESCE($4, notes), updated_at = now()
		WHERE id = $1 AND status = $2
	`

	tag, err := tx.Exec(ctx, query, id, from, to, notes)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Str("status", string(to)).
			Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Str("order_id", id.String()).
			Str("expected", string(from)).
			Str("target", string(to)).
			Msg("order status update lost the race")
		return ErrStatusConflict
	}

	r.logger.Debug().
		Str("order_id", id.String()).
		Str("status", string(to)).
		Msg("order status updated")

	return nil
}
