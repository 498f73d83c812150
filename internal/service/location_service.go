package service

import (
	"context"
	"fmt"
	"time"

	"solesnaps-api/internal/model"
	"solesnaps-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// locationService implements LocationService.
type locationService struct {
	locationRepo repository.LocationRepository
	logger       zerolog.Logger
}

// NewLocationService creates a new delivery location service.
func NewLocationService(locationRepo repository.LocationRepository, logger zerolog.Logger) LocationService {
	return &locationService{
		locationRepo: locationRepo,
		logger:       logger.With().Str("service", "location").Logger(),
	}
}

// List retrieves delivery locations. Customers only see active locations.
func (s *locationService) List(ctx context.Context, includeInactive bool) ([]model.DeliveryLocation, error) {
	locations, err := s.locationRepo.List(ctx, !includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery locations: %w", err)
	}
	return locations, nil
}

// GetByID retrieves a single location. Returns (nil, nil) when missing.
func (s *locationService) GetByID(ctx context.Context, id uuid.UUID) (*model.DeliveryLocation, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery location: %w", err)
	}
	return location, nil
}

// Create adds a new delivery location.
func (s *locationService) Create(ctx context.Context, req *model.LocationRequest) (*model.DeliveryLocation, error) {
	if err := validateLocationRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	location := &model.DeliveryLocation{
		ID:             uuid.New(),
		City:           req.City,
		ShippingCost:   req.ShippingCost,
		PickupLocation: req.PickupLocation,
		PickupPhone:    req.PickupPhone,
		Status:         req.Status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if location.Status == "" {
		location.Status = model.LocationActive
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to create delivery location: %w", err)
	}

	s.logger.Info().
		Str("location_id", location.ID.String()).
		Str("city", location.City).
		Msg("delivery location created")

	return location, nil
}

// Update rewrites an existing location.
func (s *locationService) Update(ctx context.Context, id uuid.UUID, req *model.LocationRequest) (*model.DeliveryLocation, error) {
	if err := validateLocationRequest(req); err != nil {
		return nil, err
	}

	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery location: %w", err)
	}
	if location == nil {
		return nil, model.ErrLocationNotFound
	}

	location.City = req.City
	location.ShippingCost = req.ShippingCost
	location.PickupLocation = req.PickupLocation
	location.PickupPhone = req.PickupPhone
	if req.Status != "" {
		location.Status = req.Status
	}
	location.UpdatedAt = time.Now()

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to update delivery location: %w", err)
	}

	s.logger.Info().
		Str("location_id", location.ID.String()).
		Str("status", string(location.Status)).
		Msg("delivery location updated")

	return location, nil
}

func validateLocationRequest(req *model.LocationRequest) error {
	if req == nil {
		return model.NewValidationError("location request is required")
	}
	if req.City == "" {
		return model.NewValidationError("city is required")
	}
	if req.ShippingCost.IsNegative() {
		return model.NewValidationError("shipping cost cannot be negative")
	}
	if req.Status != "" && !req.Status.Valid() {
		return model.NewValidationError(fmt.Sprintf("invalid location status %q", req.Status))
	}
	return nil
}
