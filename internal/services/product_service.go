package services

import (
	"context"

	"github.com/shopfront/backend/internal/models"
	"go.uber.org/zap"
)

// ProductRepository is the interface that wraps methods for Product table data access
type ProductRepository interface {
	// Method GetAll retrieves every product ordered by ID.
	GetAll(ctx context.Context) ([]models.Product, error)
	// Method GetByID retrieves a product by ID.
	//
	// If product with such ID does not exist, a not found error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Product, error)
	// Method ExistsByID checks if a product with such ID exists.
	ExistsByID(ctx context.Context, id int) (bool, error)
	// Method Create inserts a new product and sets its ID.
	Create(ctx context.Context, product *models.Product) error
	// Method Update sets only the non-nil fields of "req" on the product with such ID.
	//
	// A missing product is not reported; callers read the product back afterwards.
	Update(ctx context.Context, id int, req *models.UpdateProductRequest) error
	// Method Delete removes a product.
	//
	// If product with such ID does not exist, a not found error will be returned.
	Delete(ctx context.Context, id int) error
}

// productService implements ProductService
type productService struct {
	repo   ProductRepository
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(repo ProductRepository, logger *zap.Logger) *productService {
	return &productService{
		repo:   repo,
		logger: logger,
	}
}

// List returns the whole catalog
func (s *productService) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// Create adds a product to the catalog
func (s *productService) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Price != nil {
		product.Price = *req.Price
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.Int("productId", product.ID))
	return product, nil
}

// Get returns a single product
func (s *productService) Get(ctx context.Context, id int) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies the supplied fields to the product and returns the result.
// An empty request returns the product as stored.
func (s *productService) Update(ctx context.Context, id int, req *models.UpdateProductRequest) (*models.Product, error) {
	if !req.IsEmpty() {
		if err := s.repo.Update(ctx, id, req); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(ctx, id)
}

// Delete removes a product from the catalog
func (s *productService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.Int("productId", id))
	return nil
}
