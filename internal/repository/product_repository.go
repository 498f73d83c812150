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

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, name, description, brand, category, price, stock_quantity, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	var price pgtype.Numeric
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Brand,
		&p.Category,
		&price,
		&p.StockQuantity,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Price = numericToDecimal(price)
	return &p, nil
}

// List retrieves products matching the filter with pagination support.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter, limit, offset int) ([]model.Product, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argn := 1

	if filter.ActiveOnly {
		where += ` AND is_active = true`
	}
	if filter.Category != "" {
		where += fmt.Sprintf(` AND category = $%d`, argn)
		args = append(args, filter.Category)
		argn++
	}
	if filter.Brand != "" {
		where += fmt.Sprintf(` AND brand = $%d`, argn)
		args = append(args, filter.Brand)
		argn++
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where +
		fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, argn, argn+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, name, description, brand, category, price, stock_quantity, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Brand,
		product.Category,
		decimalToNumeric(product.Price),
		product.StockQuantity,
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID.String()).Msg("product created")
	return nil
}

// Update rewrites a product's mutable fields.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, brand = $4, category = $5,
		    price = $6, stock_quantity = $7, is_active = $8, updated_at = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Brand,
		product.Category,
		decimalToNumeric(product.Price),
		product.StockQuantity,
		product.IsActive,
		product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Deactivate soft-deletes a product.
func (r *productRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to deactivate product")
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().Str("product_id", id.String()).Msg("product deactivated")
	return nil
}

// DecrementStock atomically decrements stock only when the product is active
// and has at least the requested quantity. A single conditional UPDATE keeps
// concurrent checkouts from overselling; there is no separate read step.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) (*model.Product, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $2, updated_at = now()
		WHERE id = $1 AND is_active = true AND stock_quantity >= $2
		RETURNING ` + productColumns

	p, err := scanProduct(tx.QueryRow(ctx, query, id, quantity))
	if err == nil {
		r.logger.Debug().
			Str("product_id", id.String()).
			Int("quantity", quantity).
			Int("remaining", p.StockQuantity).
			Msg("stock decremented")
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to decrement stock")
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}

	// Zero rows updated: distinguish a missing/inactive product from
	// insufficient stock so the caller can report the right error.
	var isActive bool
	var available int
	err = tx.QueryRow(ctx, `SELECT is_active, stock_quantity FROM products WHERE id = $1`, id).
		Scan(&isActive, &available)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.NewInvalidProductError(id.String())
	}
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to inspect product stock")
		return nil, fmt.Errorf("failed to inspect product stock: %w", err)
	}
	if !isActive {
		return nil, model.NewInvalidProductError(id.String())
	}

	r.logger.Warn().
		Str("product_id", id.String()).
		Int("available", available).
		Int("requested", quantity).
		Msg("insufficient stock")
	return nil, model.NewInsufficientStockError(id.String(), available, quantity)
}

// RestoreStock adds quantity back to a product's stock.
func (r *productRepository) RestoreStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error {
	tag, err := tx.Exec(ctx,
		`UPDATE products SET stock_quantity = stock_quantity + $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to restore stock")
		return fmt.Errorf("failed to restore stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().
		Str("product_id", id.String()).
		Int("quantity", quantity).
		Msg("stock restored")
	return nil
}
