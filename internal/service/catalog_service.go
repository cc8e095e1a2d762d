package service

import (
	"context"
	"fmt"

	"commerce-admin/internal/models"
	"commerce-admin/internal/store"
	"commerce-admin/internal/util"

	"go.uber.org/zap"
)

// CatalogService handles admin product management
type CatalogService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store *store.Store) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// ProductRequest represents a create or update request for a catalog item
type ProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	Category    string `json:"category"`
	Image       string `json:"image"`
}

// CreateProduct adds a catalog item
func (s *CatalogService) CreateProduct(ctx context.Context, req *ProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("name", product.Name))
	return product, nil
}

// UpdateProduct edits a catalog item. Existing order line items keep their
// price snapshots.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, req *ProductRequest) (*models.Product, error) {
	product := &models.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
	}

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	return s.store.GetProductByID(ctx, id)
}

// GetProduct retrieves a catalog item
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.store.GetProductByID(ctx, id)
}

// ListProducts lists catalog items, optionally by category and search term
func (s *CatalogService) ListProducts(ctx context.Context, category, search string) ([]models.Product, error) {
	return s.store.ListProducts(ctx, category, search)
}

// DeleteProduct removes a catalog item
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}
