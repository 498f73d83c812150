package service

import (
	"context"
	"testing"

	"solesnaps-api/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCouponService_Validate_PercentageDiscount(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(MockCouponRepository)
	svc := NewCouponService(couponRepo, new(MockLoader), zerolog.Nop())

	coupon := &model.Coupon{
		ID:            uuid.New(),
		Code:          "TEN",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	}
	couponRepo.On("GetByCode", ctx, "TEN").Return(coupon, nil)

	resp, err := svc.Validate(ctx, &model.CouponValidateRequest{Code: "TEN", Subtotal: decimal.NewFromInt(200)})

	require.NoError(t, err)
	assert.True(t, resp.DiscountAmount.Equal(decimal.NewFromInt(20)), "discount: %s", resp.DiscountAmount)
}

func TestCouponService_Validate_BelowMinimumOrder(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(MockCouponRepository)
	svc := NewCouponService(couponRepo, new(MockLoader), zerolog.Nop())

	coupon := &model.Coupon{
		ID:             uuid.New(),
		Code:           "BIGSPEND",
		DiscountType:   model.DiscountFixed,
		DiscountValue:  decimal.NewFromInt(50),
		MinOrderAmount: decimal.NewFromInt(500),
		IsActive:       true,
	}
	couponRepo.On("GetByCode", ctx, "BIGSPEND").Return(coupon, nil)

	_, err := svc.Validate(ctx, &model.CouponValidateRequest{Code: "BIGSPEND", Subtotal: decimal.NewFromInt(100)})

	assert.ErrorIs(t, err, model.ErrInvalidCoupon)
}

func TestCouponService_Validate_UnknownCode(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(MockCouponRepository)
	svc := NewCouponService(couponRepo, new(MockLoader), zerolog.Nop())

	couponRepo.On("GetByCode", ctx, "GHOST").Return(nil, nil)

	_, err := svc.Validate(ctx, &model.CouponValidateRequest{Code: "GHOST", Subtotal: decimal.NewFromInt(100)})

	assert.ErrorIs(t, err, model.ErrInvalidCoupon)
}

func TestCouponService_Create_RejectsBadDiscountType(t *testing.T) {
	ctx := context.Background()
	svc := NewCouponService(new(MockCouponRepository), new(MockLoader), zerolog.Nop())

	_, err := svc.Create(ctx, &model.CouponRequest{
		Code:          "ODD",
		DiscountType:  "bogo",
		DiscountValue: decimal.NewFromInt(5),
	})

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
}

func TestCouponService_Update_ChangesCode(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(MockCouponRepository)
	svc := NewCouponService(couponRepo, new(MockLoader), zerolog.Nop())

	couponID := uuid.New()
	existing := &model.Coupon{
		ID:            couponID,
		Code:          "SPRING",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	}
	couponRepo.On("GetByID", ctx, couponID).Return(existing, nil)
	couponRepo.On("Update", ctx, mock.MatchedBy(func(c *model.Coupon) bool {
		return c.ID == couponID && c.Code == "SUMMER" && c.DiscountValue.Equal(decimal.NewFromInt(15))
	})).Return(nil)

	updated, err := svc.Update(ctx, couponID, &model.CouponRequest{
		Code:          "SUMMER",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(15),
	})

	require.NoError(t, err)
	assert.Equal(t, "SUMMER", updated.Code)
	couponRepo.AssertExpectations(t)
}

func TestCouponService_Update_UnknownID(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(MockCouponRepository)
	svc := NewCouponService(couponRepo, new(MockLoader), zerolog.Nop())

	couponID := uuid.New()
	couponRepo.On("GetByID", ctx, couponID).Return(nil, nil)

	_, err := svc.Update(ctx, couponID, &model.CouponRequest{
		Code:          "SUMMER",
		DiscountType:  model.DiscountFixed,
		DiscountValue: decimal.NewFromInt(5),
	})

	assert.ErrorIs(t, err, model.ErrCouponNotFound)
	couponRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCouponService_Update_RenameToTakenCodeConflicts(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(MockCouponRepository)
	svc := NewCouponService(couponRepo, new(MockLoader), zerolog.Nop())

	couponID := uuid.New()
	existing := &model.Coupon{
		ID:            couponID,
		Code:          "SPRING",
		DiscountType:  model.DiscountFixed,
		DiscountValue: decimal.NewFromInt(5),
		IsActive:      true,
	}
	couponRepo.On("GetByID", ctx, couponID).Return(existing, nil)
	couponRepo.On("Update", ctx, mock.Anything).Return(model.ErrDuplicateCoupon)

	_, err := svc.Update(ctx, couponID, &model.CouponRequest{
		Code:          "TAKEN",
		DiscountType:  model.DiscountFixed,
		DiscountValue: decimal.NewFromInt(5),
	})

	assert.ErrorIs(t, err, model.ErrDuplicateCoupon)
}

func TestCouponService_Import_Success(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(MockCouponRepository)
	loader := new(MockLoader)
	svc := NewCouponService(couponRepo, loader, zerolog.Nop())

	loader.On("Load", ctx, "codes.txt").Return([]string{"AAA", "BBB", "CCC"}, nil)
	couponRepo.On("BulkUpsert", ctx, mock.MatchedBy(func(coupons []model.Coupon) bool {
		return len(coupons) == 3 && coupons[0].Code == "AAA" && coupons[0].IsActive
	})).Return(2, 1, nil)

	resp, err := svc.Import(ctx, &model.CouponImportRequest{
		File:          "codes.txt",
		DiscountType:  model.DiscountFixed,
		DiscountValue: decimal.NewFromInt(5),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 1, resp.Skipped)
	couponRepo.AssertExpectations(t)
}

func TestCouponService_Import_EmptyFile(t *testing.T) {
	ctx := context.Background()
	couponRepo := new(MockCouponRepository)
	loader := new(MockLoader)
	svc := NewCouponService(couponRepo, loader, zerolog.Nop())

	loader.On("Load", ctx, "empty.txt").Return([]string{}, nil)

	resp, err := svc.Import(ctx, &model.CouponImportRequest{
		File:          "empty.txt",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
	})

	require.NoError(t, err)
	assert.Zero(t, resp.Imported)
	couponRepo.AssertNotCalled(t, "BulkUpsert", mock.Anything, mock.Anything)
}
