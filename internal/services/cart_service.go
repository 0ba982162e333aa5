package services

import (
	"context"

	"github.com/shopfront/backend/internal/apperrors"
	"github.com/shopfront/backend/internal/models"
	"go.uber.org/zap"
)

// CartRepository is the interface that wraps methods for Cart and CartProduct tables data access
type CartRepository interface {
	// Method GetOrCreate returns the ID of the user's cart, creating an empty cart if needed.
	GetOrCreate(ctx context.Context, userID int) (int, error)
	// Method GetByUserID retrieves the user's cart.
	//
	// If the user has no cart, a not found error will be returned together with "nil" value.
	GetByUserID(ctx context.Context, userID int) (*models.Cart, error)
	// Method GetProducts retrieves the products of a cart ordered by product ID.
	GetProducts(ctx context.Context, cartID int) ([]models.Product, error)
	// Method AddProduct puts a product into the cart. Adding a present product is a no-op.
	AddProduct(ctx context.Context, cartID, productID int) error
	// Method RemoveProduct takes a product out of the cart. Removing an absent product is a no-op.
	RemoveProduct(ctx context.Context, cartID, productID int) error
}

// ProductChecker reports whether a product is in the catalog
type ProductChecker interface {
	ExistsByID(ctx context.Context, id int) (bool, error)
}

// cartService implements CartService
type cartService struct {
	cartRepo    CartRepository
	productRepo ProductChecker
	logger      *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(cartRepo CartRepository, productRepo ProductChecker, logger *zap.Logger) *cartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// View returns the products in the user's cart, creating an empty cart if the user has none
func (s *cartService) View(ctx context.Context, userID int) ([]models.Product, error) {
	cartID, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.cartRepo.GetProducts(ctx, cartID)
}

// Add puts a product into the user's cart
func (s *cartService) Add(ctx context.Context, userID, productID int) error {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return err
	}

	cartID, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	return s.cartRepo.AddProduct(ctx, cartID, productID)
}

// Remove takes a product out of the user's cart.
// A user without a cart gets a not found error; the cart is not created.
func (s *cartService) Remove(ctx context.Context, userID, productID int) error {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return err
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	return s.cartRepo.RemoveProduct(ctx, cart.ID, productID)
}

func (s *cartService) ensureProduct(ctx context.Context, productID int) error {
	exists, err := s.productRepo.ExistsByID(ctx, productID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("product")
	}
	return nil
}
