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

// locationRepository implements the LocationRepository interface using PostgreSQL.
type locationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewLocationRepository creates a new PostgreSQL-backed delivery location repository.
func NewLocationRepository(pool *pgxpool.Pool, logger zerolog.Logger) LocationRepository {
	return &locationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "location").Logger(),
	}
}

const locationColumns = `id, city, shipping_cost, pickup_location, pickup_phone, status, created_at, updated_at`

func scanLocation(row pgx.Row) (*model.DeliveryLocation, error) {
	var l model.DeliveryLocation
	var cost pgtype.Numeric
	err := row.Scan(
		&l.ID,
		&l.City,
		&cost,
		&l.PickupLocation,
		&l.PickupPhone,
		&l.Status,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.ShippingCost = numericToDecimal(cost)
	return &l, nil
}

// List retrieves delivery locations, optionally only active ones.
func (r *locationRepository) List(ctx context.Context, activeOnly bool) ([]model.DeliveryLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM delivery_locations`
	if activeOnly {
		query += ` WHERE status = 'active'`
	}
	query += ` ORDER BY city`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query delivery locations")
		return nil, fmt.Errorf("failed to query delivery locations: %w", err)
	}
	defer rows.Close()

	var locations []model.DeliveryLocation
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan delivery location row")
			return nil, fmt.Errorf("failed to scan delivery location: %w", err)
		}
		locations = append(locations, *l)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating delivery location rows")
		return nil, fmt.Errorf("error iterating delivery locations: %w", err)
	}

	return locations, nil
}

// GetByID retrieves a single delivery location by its ID.
func (r *locationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DeliveryLocation, error) {
	query := `SELECT ` + locationColumns + ` FROM delivery_locations WHERE id = $1`

	l, err := scanLocation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("location_id", id.String()).Msg("delivery location not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("location_id", id.String()).Msg("failed to query delivery location")
		return nil, fmt.Errorf("failed to query delivery location: %w", err)
	}

	return l, nil
}

// Create inserts a new delivery location.
func (r *locationRepository) Create(ctx context.Context, location *model.DeliveryLocation) error {
	query := `
		INSERT INTO delivery_locations (id, city, shipping_cost, pickup_location, pickup_phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		location.ID,
		location.City,
		decimalToNumeric(location.ShippingCost),
		location.PickupLocation,
		location.PickupPhone,
		location.Status,
		location.CreatedAt,
		location.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("location_id", location.ID.String()).Msg("failed to create delivery location")
		return fmt.Errorf("failed to create delivery location: %w", err)
	}

	r.logger.Debug().Str("location_id", location.ID.String()).Msg("delivery location created")
	return nil
}

// Update rewrites a delivery location's mutable fields.
func (r *locationRepository) Update(ctx context.Context, location *model.DeliveryLocation) error {
	query := `
		UPDATE delivery_locations
		SET city = $2, shipping_cost = $3, pickup_location = $4, pickup_phone = $5, status = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		location.ID,
		location.City,
		decimalToNumeric(location.ShippingCost),
		location.PickupLocation,
		location.PickupPhone,
		location.Status,
		location.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("location_id", location.ID.String()).Msg("failed to update delivery location")
		return fmt.Errorf("failed to update delivery location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrLocationNotFound
	}

	return nil
}
