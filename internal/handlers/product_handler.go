package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopfront/backend/internal/models"
	"go.uber.org/zap"
)

// ProductService is the interface that wraps methods for catalog business logic.
type ProductService interface {
	// Method List returns every product ordered by ID.
	List(ctx context.Context) ([]models.Product, error)
	// Method Create adds a product and returns it with its new ID.
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	// Method Get returns a product.
	//
	// If product with such ID does not exist, a not found error is returned.
	Get(ctx context.Context, id int) (*models.Product, error)
	// Method Update applies the non-nil fields of "req" and returns the updated product.
	//
	// If "req" carries no fields, a validation error is returned.
	// If product with such ID does not exist, a not found error is returned.
	Update(ctx context.Context, id int, req *models.UpdateProductRequest) (*models.Product, error)
	// Method Delete removes a product.
	//
	// If product with such ID does not exist, a not found error is returned.
	Delete(ctx context.Context, id int) error
}

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	BaseHandler
	productService ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		productService: productService,
	}
}

// RegisterRoutes registers all product handler routes.
// Catalog listing is public; every other route requires staffMiddleware.
func (h *ProductHandler) RegisterRoutes(r chi.Router, staffMiddleware func(http.Handler) http.Handler) {
	r.Get("/products", h.List)
	r.Group(func(r chi.Router) {
		r.Use(staffMiddleware)
		r.Post("/product", h.Create)
		r.Get("/product/{id}", h.Get)
		r.Patch("/product/{id}", h.Update)
		r.Delete("/product/{id}", h.Delete)
	})
}

// List handles GET /products
// @Summary List products
// @Description Return the whole catalog ordered by ID
// @Tags products
// @Produce json
// @Success 200 {object} models.DataResponse{data=[]models.Product} "Catalog"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, products)
}

// Create handles POST /product
// @Summary Create product
// @Description Add a product to the catalog. Staff only.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateProductRequest true "Product"
// @Success 201 {object} models.DataResponse{data=models.CreateProductResponse} "Product added"
// @Failure 403 {object} models.ErrorResponse "Login failed or access denied"
// @Failure 422 {object} models.ErrorResponse "Validation failed"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /product [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	product, err := h.productService.Create(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondData(w, http.StatusCreated, models.CreateProductResponse{ID: product.ID, Message: "Product added"})
}

// Get handles GET /product/{id}
// @Summary Get product
// @Description Return a single product. Staff only.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} models.DataResponse{data=models.Product} "Product"
// @Failure 403 {object} models.ErrorResponse "Login failed or access denied"
// @Failure 404 {object} models.ErrorResponse "Product not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /product/{id} [get]
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, product)
}

// Update handles PATCH /product/{id}
// @Summary Update product
// @Description Change the supplied fields of a product. An empty body leaves it unchanged. Staff only.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body models.UpdateProductRequest false "Fields to change"
// @Success 200 {object} models.DataResponse{data=models.Product} "Updated product"
// @Failure 403 {object} models.ErrorResponse "Login failed or access denied"
// @Failure 404 {object} models.ErrorResponse "Product not found"
// @Failure 422 {object} models.ErrorResponse "Validation failed"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /product/{id} [patch]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	var req models.UpdateProductRequest
	if err := decodePartialAndValidate(r, &req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	product, err := h.productService.Update(r.Context(), id, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, product)
}

// Delete handles DELETE /product/{id}
// @Summary Delete product
// @Description Remove a product from the catalog and from every cart. Placed orders keep their copy. Staff only.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} models.DataResponse{data=models.MessageResponse} "Product removed"
// @Failure 403 {object} models.ErrorResponse "Login failed or access denied"
// @Failure 404 {object} models.ErrorResponse "Product not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /product/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, models.MessageResponse{Message: "Product removed"})
}
