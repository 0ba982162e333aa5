package services

import (
	"context"

	"github.com/shopfront/backend/internal/models"
	"go.uber.org/zap"
)

// OrderRepository is the interface that wraps methods for Order and OrderItem tables data access
type OrderRepository interface {
	// Method CreateFromCart turns the user's cart into an order in one transaction and deletes the cart.
	//
	// If the user has no cart or the cart is empty, a validation error will be returned together with "nil" value.
	CreateFromCart(ctx context.Context, userID int) (*models.Order, error)
	// Method GetAllByUserID retrieves the user's orders with items, newest first.
	GetAllByUserID(ctx context.Context, userID int) ([]models.Order, error)
	// Method GetByID retrieves one of the user's orders.
	//
	// If the order does not exist or belongs to another user, a not found error will be returned together with "nil" value.
	GetByID(ctx context.Context, userID, orderID int) (*models.Order, error)
}

// orderService implements OrderService
type orderService struct {
	repo   OrderRepository
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repo OrderRepository, logger *zap.Logger) *orderService {
	return &orderService{
		repo:   repo,
		logger: logger,
	}
}

// Checkout places an order with everything in the user's cart
func (s *orderService) Checkout(ctx context.Context, userID int) (*models.Order, error) {
	order, err := s.repo.CreateFromCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.Int("orderId", order.ID),
		zap.Int("userId", userID),
		zap.Int64("orderPrice", order.OrderPrice),
		zap.Int("items", len(order.Items)),
	)
	return order, nil
}

// List returns the user's orders
func (s *orderService) List(ctx context.Context, userID int) ([]models.Order, error) {
	return s.repo.GetAllByUserID(ctx, userID)
}

// Get returns one of the user's orders
func (s *orderService) Get(ctx context.Context, userID, orderID int) (*models.Order, error) {
	return s.repo.GetByID(ctx, userID, orderID)
}
