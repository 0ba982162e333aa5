package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	authMiddleware "github.com/shopfront/backend/internal/auth/middleware"
	"github.com/shopfront/backend/internal/models"
	"go.uber.org/zap"
)

// CartService is the interface that wraps methods for cart business logic.
type CartService interface {
	// Method View returns the products in the user's cart, creating an empty cart if needed.
	View(ctx context.Context, userID int) ([]models.Product, error)
	// Method Add puts a product into the user's cart.
	//
	// If product with such ID does not exist, a not found error is returned.
	Add(ctx context.Context, userID, productID int) error
	// Method Remove takes a product out of the user's cart.
	//
	// If the product or the cart does not exist, a not found error is returned.
	Remove(ctx context.Context, userID, productID int) error
}

// CartHandler handles cart HTTP requests
type CartHandler struct {
	BaseHandler
	cartService CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		BaseHandler: BaseHandler{Logger: logger},
		cartService: cartService,
	}
}

// RegisterRoutes registers all cart handler routes
func (h *CartHandler) RegisterRoutes(r chi.Router, shopperMiddleware func(http.Handler) http.Handler) {
	r.Route("/cart", func(r chi.Router) {
		r.Use(shopperMiddleware)
		r.Get("/", h.View)
		r.Post("/{id}", h.Add)
		r.Delete("/{id}", h.Remove)
	})
}

// View handles GET /cart
// @Summary View cart
// @Description Return the products in the caller's cart. Customers only.
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse{data=models.CartResponse} "Cart contents"
// @Failure 403 {object} models.ErrorResponse "Login failed or access denied"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /cart [get]
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	user, ok := authMiddleware.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusForbidden, "Login failed")
		return
	}

	products, err := h.cartService.View(r.Context(), user.ID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, models.CartResponse{Body: products})
}

// Add handles POST /cart/{id}
// @Summary Add to cart
// @Description Put a product into the caller's cart. Adding a product twice keeps one line. Customers only.
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 201 {object} models.DataResponse{data=models.MessageResponse} "Product add to cart"
// @Failure 403 {object} models.ErrorResponse "Login failed or access denied"
// @Failure 404 {object} models.ErrorResponse "Product not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /cart/{id} [post]
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := authMiddleware.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusForbidden, "Login failed")
		return
	}

	productID, ok := pathID(r, "id")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.cartService.Add(r.Context(), user.ID, productID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondData(w, http.StatusCreated, models.MessageResponse{Message: "Product add to cart"})
}

// Remove handles DELETE /cart/{id}
// @Summary Remove from cart
// @Description Take a product out of the caller's cart. Customers only.
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 201 {object} models.DataResponse{data=models.MessageResponse} "Product removed from cart"
// @Failure 403 {object} models.ErrorResponse "Login failed or access denied"
// @Failure 404 {object} models.ErrorResponse "Product or cart not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /cart/{id} [delete]
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := authMiddleware.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusForbidden, "Login failed")
		return
	}

	productID, ok := pathID(r, "id")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.cartService.Remove(r.Context(), user.ID, productID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondData(w, http.StatusCreated, models.MessageResponse{Message: "Product removed from cart"})
}
