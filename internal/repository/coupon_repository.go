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

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

const couponColumns = `id, code, discount_type, discount_value, min_order_amount,
		usage_limit, used_count, is_active, expires_at, created_at, updated_at`

func scanCoupon(row pgx.Row) (*model.Coupon, error) {
	var c model.Coupon
	var value, minAmount pgtype.Numeric
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.DiscountType,
		&value,
		&minAmount,
		&c.UsageLimit,
		&c.UsedCount,
		&c.IsActive,
		&c.ExpiresAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.DiscountValue = numericToDecimal(value)
	c.MinOrderAmount = numericToDecimal(minAmount)
	return &c, nil
}

// GetByCode retrieves a coupon by its code.
func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`

	c, err := scanCoupon(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("code", code).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return c, nil
}

// GetByID retrieves a coupon by its ID.
func (r *couponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`

	c, err := scanCoupon(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("coupon_id", id.String()).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return c, nil
}

// List retrieves coupons, newest first.
func (r *couponRepository) List(ctx context.Context, limit, offset int) ([]model.Coupon, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM coupons`).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count coupons")
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	query := `SELECT ` + couponColumns + ` FROM coupons ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query coupons")
		return nil, 0, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, 0, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, *c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, 0, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, total, nil
}

// Create inserts a new coupon.
func (r *couponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	query := `
		INSERT INTO coupons (id, code, discount_type, discount_value, min_order_amount,
			usage_limit, used_count, is_active, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		coupon.ID,
		coupon.Code,
		coupon.DiscountType,
		decimalToNumeric(coupon.DiscountValue),
		decimalToNumeric(coupon.MinOrderAmount),
		coupon.UsageLimit,
		coupon.UsedCount,
		coupon.IsActive,
		coupon.ExpiresAt,
		coupon.CreatedAt,
		coupon.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "coupons_code_key") {
			return model.ErrDuplicateCoupon
		}
		r.logger.Error().Err(err).Str("code", coupon.Code).Msg("failed to create coupon")
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	r.logger.Debug().Str("code", coupon.Code).Msg("coupon created")
	return nil
}

// Update rewrites a coupon's mutable fields.
func (r *couponRepository) Update(ctx context.Context, coupon *model.Coupon) error {
	query := `
		UPDATE coupons
		SET code = $2, discount_type = $3, discount_value = $4, min_order_amount = $5,
		    usage_limit = $6, is_active = $7, expires_at = $8, updated_at = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		coupon.ID,
		coupon.Code,
		coupon.DiscountType,
		decimalToNumeric(coupon.DiscountValue),
		decimalToNumeric(coupon.MinOrderAmount),
		coupon.UsageLimit,
		coupon.IsActive,
		coupon.ExpiresAt,
		coupon.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "coupons_code_key") {
			return model.ErrDuplicateCoupon
		}
		r.logger.Error().Err(err).Str("coupon_id", coupon.ID.String()).Msg("failed to update coupon")
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}

	return nil
}

// Redeem increments a coupon's used count within the transaction, only while
// under the usage limit. A single conditional UPDATE keeps concurrent
// checkouts from exceeding the limit.
func (r *couponRepository) Redeem(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `
		UPDATE coupons
		SET used_count = used_count + 1, updated_at = now()
		WHERE id = $1 AND is_active = true
		  AND (usage_limit IS NULL OR used_count < usage_limit)
	`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to redeem coupon")
		return fmt.Errorf("failed to redeem coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("coupon_id", id.String()).Msg("coupon no longer redeemable")
		return model.ErrInvalidCoupon
	}

	return nil
}

// BulkUpsert inserts coupons in bulk, skipping codes that already exist.
func (r *couponRepository) BulkUpsert(ctx context.Context, coupons []model.Coupon) (int, int, error) {
	if len(coupons) == 0 {
		return 0, 0, nil
	}

	query := `
		INSERT INTO coupons (id, code, discount_type, discount_value, min_order_amount,
			usage_limit, used_count, is_active, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (code) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, c := range coupons {
		batch.Queue(query,
			c.ID, c.Code, c.DiscountType,
			decimalToNumeric(c.DiscountValue), decimalToNumeric(c.MinOrderAmount),
			c.UsageLimit, c.UsedCount, c.IsActive, c.ExpiresAt, c.CreatedAt, c.UpdatedAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for i := 0; i < len(coupons); i++ {
		tag, err := results.Exec()
		if err != nil {
			r.logger.Error().Err(err).Str("code", coupons[i].Code).Msg("failed to import coupon")
			return 0, 0, fmt.Errorf("failed to import coupon %s: %w", coupons[i].Code, err)
		}
		inserted += int(tag.RowsAffected())
	}

	skipped := len(coupons) - inserted
	r.logger.Info().
		Int("inserted", inserted).
		Int("skipped", skipped).
		Msg("coupon bulk import completed")

	return inserted, skipped, nil
}
