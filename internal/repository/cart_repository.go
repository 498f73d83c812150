package repository

import (
	"context"
	"fmt"

	"solesnaps-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// ListByUser retrieves a user's cart items joined with product data.
func (r *cartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CartItemDetail, error) {
	query := `
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.size, ci.color, ci.created_at, ci.updated_at,
		       p.id, p.name, p.description, p.brand, p.category, p.price, p.stock_quantity, p.is_active,
		       p.created_at, p.updated_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItemDetail
	for rows.Next() {
		var d model.CartItemDetail
		var price pgtype.Numeric
		err := rows.Scan(
			&d.ID, &d.UserID, &d.ProductID, &d.Quantity, &d.Size, &d.Color, &d.CreatedAt, &d.UpdatedAt,
			&d.Product.ID, &d.Product.Name, &d.Product.Description, &d.Product.Brand, &d.Product.Category,
			&price, &d.Product.StockQuantity, &d.Product.IsActive,
			&d.Product.CreatedAt, &d.Product.UpdatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		d.Product.Price = numericToDecimal(price)
		items = append(items, d)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// Upsert inserts a cart item, or adds to the quantity of an existing item
// with the same product, size and color.
func (r *cartRepository) Upsert(ctx context.Context, item *model.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity, size, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, product_id, size, color)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
		RETURNING id, quantity
	`

	err := r.pool.QueryRow(ctx, query,
		item.ID,
		item.UserID,
		item.ProductID,
		item.Quantity,
		item.Size,
		item.Color,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID, &item.Quantity)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrProductNotFound
		}
		r.logger.Error().
			Err(err).
			Str("user_id", item.UserID.String()).
			Str("product_id", item.ProductID.String()).
			Msg("failed to upsert cart item")
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	r.logger.Debug().
		Str("cart_item_id", item.ID.String()).
		Int("quantity", item.Quantity).
		Msg("cart item upserted")

	return nil
}

// UpdateQuantity changes the quantity of a user's cart item.
func (r *cartRepository) UpdateQuantity(ctx context.Context, id, userID uuid.UUID, quantity int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = now() WHERE id = $1 AND user_id = $2`,
		id, userID, quantity,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_item_id", id.String()).Msg("failed to update cart item")
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

// Delete removes a user's cart item.
func (r *cartRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_item_id", id.String()).Msg("failed to delete cart item")
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

// Clear removes all cart items for the user.
func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	r.logger.Debug().Str("user_id", userID.String()).Msg("cart cleared")
	return nil
}
