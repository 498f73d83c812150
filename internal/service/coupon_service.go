package service

import (
	"context"
	"fmt"
	"time"

	"solesnaps-api/internal/coupon"
	"solesnaps-api/internal/model"
	"solesnaps-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// couponService implements CouponService.
type couponService struct {
	couponRepo repository.CouponRepository
	loader     coupon.Loader
	logger     zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(couponRepo repository.CouponRepository, loader coupon.Loader, logger zerolog.Logger) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		loader:     loader,
		logger:     logger.With().Str("service", "coupon").Logger(),
	}
}

// Validate previews the discount a code grants against a subtotal. It does
// not redeem the coupon; redemption happens at checkout.
func (s *couponService) Validate(ctx context.Context, req *model.CouponValidateRequest) (*model.CouponValidateResponse, error) {
	if req == nil || req.Code == "" {
		return nil, model.NewValidationError("coupon code is required")
	}

	c, err := s.couponRepo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	if c == nil || !c.Redeemable(req.Subtotal, time.Now()) {
		return nil, model.ErrInvalidCoupon
	}

	return &model.CouponValidateResponse{
		Code:           c.Code,
		DiscountAmount: c.DiscountFor(req.Subtotal),
	}, nil
}

// List retrieves coupons with pagination.
func (s *couponService) List(ctx context.Context, page, limit int) ([]model.Coupon, model.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	coupons, total, err := s.couponRepo.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to list coupons: %w", err)
	}

	pagination := model.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
	return coupons, pagination, nil
}

// Create adds a new coupon.
func (s *couponService) Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error) {
	if err := validateCouponRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &model.Coupon{
		ID:             uuid.New(),
		Code:           req.Code,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		MinOrderAmount: req.MinOrderAmount,
		UsageLimit:     req.UsageLimit,
		IsActive:       true,
		ExpiresAt:      req.ExpiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.couponRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("coupon_id", c.ID.String()).
		Str("code", c.Code).
		Msg("coupon created")

	return c, nil
}

// Update rewrites an existing coupon.
func (s *couponService) Update(ctx context.Context, id uuid.UUID, req *model.CouponRequest) (*model.Coupon, error) {
	if err := validateCouponRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	if existing == nil {
		return nil, model.ErrCouponNotFound
	}

	existing.Code = req.Code
	existing.DiscountType = req.DiscountType
	existing.DiscountValue = req.DiscountValue
	existing.MinOrderAmount = req.MinOrderAmount
	existing.UsageLimit = req.UsageLimit
	existing.ExpiresAt = req.ExpiresAt
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	existing.UpdatedAt = time.Now()

	if err := s.couponRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("coupon_id", existing.ID.String()).
		Msg("coupon updated")

	return existing, nil
}

// Import bulk-loads coupon codes from a code file. Every code in the file
// becomes a coupon with the shared discount parameters; codes that already
// exist are skipped.
func (s *couponService) Import(ctx context.Context, req *model.CouponImportRequest) (*model.CouponImportResponse, error) {
	if req == nil || req.File == "" {
		return nil, model.NewValidationError("code file is required")
	}
	if req.DiscountType != model.DiscountPercentage && req.DiscountType != model.DiscountFixed {
		return nil, model.NewValidationError(fmt.Sprintf("invalid discount type %q", req.DiscountType))
	}
	if req.DiscountValue.IsNegative() || req.DiscountValue.IsZero() {
		return nil, model.NewValidationError("discount value must be positive")
	}

	codes, err := s.loader.Load(ctx, req.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load code file: %w", err)
	}
	if len(codes) == 0 {
		return &model.CouponImportResponse{}, nil
	}

	now := time.Now()
	coupons := make([]model.Coupon, 0, len(codes))
	for _, code := range codes {
		coupons = append(coupons, model.Coupon{
			ID:             uuid.New(),
			Code:           code,
			DiscountType:   req.DiscountType,
			DiscountValue:  req.DiscountValue,
			MinOrderAmount: req.MinOrderAmount,
			IsActive:       true,
			ExpiresAt:      req.ExpiresAt,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	inserted, skipped, err := s.couponRepo.BulkUpsert(ctx, coupons)
	if err != nil {
		return nil, fmt.Errorf("failed to import coupons: %w", err)
	}

	s.logger.Info().
		Str("file", req.File).
		Int("imported", inserted).
		Int("skipped", skipped).
		Msg("coupon import complete")

	return &model.CouponImportResponse{Imported: inserted, Skipped: skipped}, nil
}

func validateCouponRequest(req *model.CouponRequest) error {
	if req == nil {
		return model.NewValidationError("coupon request is required")
	}
	if req.Code == "" {
		return model.NewValidationError("coupon code is required")
	}
	if req.DiscountType != model.DiscountPercentage && req.DiscountType != model.DiscountFixed {
		return model.NewValidationError(fmt.Sprintf("invalid discount type %q", req.DiscountType))
	}
	if req.DiscountValue.IsNegative() || req.DiscountValue.IsZero() {
		return model.NewValidationError("discount value must be positive")
	}
	if req.MinOrderAmount.IsNegative() {
		return model.NewValidationError("minimum order amount cannot be negative")
	}
	return nil
}
