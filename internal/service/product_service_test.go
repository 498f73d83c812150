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

func TestProductService_Create_Success(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	svc := NewProductService(productRepo, zerolog.Nop())

	productRepo.On("Create", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	product, err := svc.Create(ctx, &model.ProductRequest{
		Name:          "Court Classic",
		Brand:         "Solesnaps",
		Category:      "shoes",
		Price:         decimal.NewFromFloat(79.99),
		StockQuantity: 10,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.True(t, product.IsActive)
	productRepo.AssertExpectations(t)
}

func TestProductService_Create_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(new(MockProductRepository), zerolog.Nop())

	tests := []struct {
		name string
		req  *model.ProductRequest
	}{
		{"missing name", &model.ProductRequest{Price: decimal.NewFromInt(10)}},
		{"negative price", &model.ProductRequest{Name: "X", Price: decimal.NewFromInt(-1)}},
		{"negative stock", &model.ProductRequest{Name: "X", Price: decimal.NewFromInt(1), StockQuantity: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
		})
	}
}

func TestProductService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	svc := NewProductService(productRepo, zerolog.Nop())

	id := uuid.New()
	productRepo.On("GetByID", ctx, id).Return(nil, nil)

	_, err := svc.Update(ctx, id, &model.ProductRequest{Name: "X", Price: decimal.NewFromInt(1)})

	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestProductService_Delete_Deactivates(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	svc := NewProductService(productRepo, zerolog.Nop())

	product := &model.Product{ID: uuid.New(), Name: "Court Classic", IsActive: true}
	productRepo.On("GetByID", ctx, product.ID).Return(product, nil)
	productRepo.On("Deactivate", ctx, product.ID).Return(nil)

	err := svc.Delete(ctx, product.ID)

	require.NoError(t, err)
	productRepo.AssertExpectations(t)
}

func TestProductService_List_ClampsPagination(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	svc := NewProductService(productRepo, zerolog.Nop())

	filter := model.ProductFilter{ActiveOnly: true}
	productRepo.On("List", ctx, filter, 20, 0).Return([]model.Product{}, int64(45), nil)

	_, pagination, err := svc.List(ctx, filter, -1, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.Limit)
	assert.Equal(t, 3, pagination.TotalPages)
}
