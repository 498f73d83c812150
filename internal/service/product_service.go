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

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products matching the filter with pagination.
func (s *productService) List(ctx context.Context, filter model.ProductFilter, page, limit int) ([]model.Product, model.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	products, total, err := s.productRepo.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to list products: %w", err)
	}

	pagination := model.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
	return products, pagination, nil
}

// GetByID retrieves a single product. Returns (nil, nil) when missing.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// Create adds a new product to the catalogue.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &model.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		Brand:         req.Brand,
		Category:      req.Category,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("name", product.Name).
		Msg("product created")

	return product, nil
}

// Update rewrites an existing product.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Brand = req.Brand
	product.Category = req.Category
	product.Price = req.Price
	product.StockQuantity = req.StockQuantity
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Msg("product updated")

	return product, nil
}

// Delete soft-deletes a product. Existing order items keep their snapshot of
// the product's name and price.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return model.ErrProductNotFound
	}

	if err := s.productRepo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}

	s.logger.Info().
		Str("product_id", id.String()).
		Msg("product deactivated")

	return nil
}

func validateProductRequest(req *model.ProductRequest) error {
	if req == nil {
		return model.NewValidationError("product request is required")
	}
	if req.Name == "" {
		return model.NewValidationError("product name is required")
	}
	if req.Price.IsNegative() {
		return model.NewValidationError("product price cannot be negative")
	}
	if req.StockQuantity < 0 {
		return model.NewValidationError("stock quantity cannot be negative")
	}
	return nil
}
