package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	authMiddleware "github.com/shopfront/backend/internal/auth/middleware"
	"github.com/shopfront/backend/internal/models"
	"go.uber.org/zap"
)

// OrderService is the interface that wraps methods for checkout and order history.
type OrderService interface {
	// Method Checkout places an order with the contents of the user's cart and empties the cart.
	//
	// If the user has no cart or the cart is empty, a validation error is returned.
	Checkout(ctx context.Context, userID int) (*models.Order, error)
	// Method List returns the user's orders, newest first.
	List(ctx context.Context, userID int) ([]models.Order, error)
	// Method Get returns one of the user's orders.
	//
	// If the order does not exist or belongs to another user, a not found error is returned.
	Get(ctx context.Context, userID, orderID int) (*models.Order, error)
}

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	BaseHandler
	orderService OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		orderService: orderService,
	}
}

// RegisterRoutes registers all order handler routes
func (h *OrderHandler) RegisterRoutes(r chi.Router, shopperMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(shopperMiddleware)
		r.Post("/order", h.Checkout)
		r.Get("/orders", h.List)
		r.Get("/order/{id}", h.Get)
	})
}

// Checkout handles POST /order
// @Summary Place order
// @Description Turn the caller's cart into an order and empty the cart. Customers only.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.DataResponse{data=models.CheckoutResponse} "Order is processed"
// @Failure 403 {object} models.ErrorResponse "Login failed or access denied"
// @Failure 422 {object} models.ErrorResponse "Cart is empty"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /order [post]
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user, ok := authMiddleware.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusForbidden, "Login failed")
		return
	}

	order, err := h.orderService.Checkout(r.Context(), user.ID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondData(w, http.StatusCreated, models.CheckoutResponse{OrderID: order.ID, Message: "Order is processed"})
}

// List handles GET /orders
// @Summary List orders
// @Description Return the caller's orders with their items, newest first. Customers only.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse{data=[]models.Order} "Orders"
// @Failure 403 {object} models.ErrorResponse "Login failed or access denied"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /orders [get]
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := authMiddleware.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusForbidden, "Login failed")
		return
	}

	orders, err := h.orderService.List(r.Context(), user.ID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, orders)
}

// Get handles GET /order/{id}
// @Summary Get order
// @Description Return one of the caller's orders. Customers only.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} models.DataResponse{data=models.Order} "Order"
// @Failure 403 {object} models.ErrorResponse "Login failed or access denied"
// @Failure 404 {object} models.ErrorResponse "Order not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /order/{id} [get]
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := authMiddleware.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusForbidden, "Login failed")
		return
	}

	orderID, ok := pathID(r, "id")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	order, err := h.orderService.Get(r.Context(), user.ID, orderID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, order)
}
