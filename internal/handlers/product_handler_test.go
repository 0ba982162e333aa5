package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopfront/backend/internal/apperrors"
	"github.com/shopfront/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockProductService is an in-memory implementation of ProductService
type mockProductService struct {
	products map[int]models.Product
	nextID   int
}

func newMockProductService(products ...models.Product) *mockProductService {
	m := &mockProductService{products: make(map[int]models.Product), nextID: 1}
	for _, p := range products {
		m.products[p.ID] = p
		if p.ID >= m.nextID {
			m.nextID = p.ID + 1
		}
	}
	return m
}

func (m *mockProductService) List(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	for id := 1; id < m.nextID; id++ {
		if p, ok := m.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (m *mockProductService) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	p := models.Product{ID: m.nextID, Name: req.Name, Description: req.Description, Price: *req.Price}
	m.products[p.ID] = p
	m.nextID++
	return &p, nil
}

func (m *mockProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, apperrors.NotFound("product")
	}
	return &p, nil
}

func (m *mockProductService) Update(ctx context.Context, id int, req *models.UpdateProductRequest) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, apperrors.NotFound("product")
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	m.products[id] = p
	return &p, nil
}

func (m *mockProductService) Delete(ctx context.Context, id int) error {
	if _, ok := m.products[id]; !ok {
		return apperrors.NotFound("product")
	}
	delete(m.products, id)
	return nil
}

var keyboard = models.Product{ID: 1, Name: "Keyboard", Description: "Mechanical keyboard", Price: 100}

func newProductRouter(svc ProductService) chi.Router {
	_, staffOnly, _ := routeMiddlewares()
	r := chi.NewRouter()
	NewProductHandler(svc, zap.NewNop()).RegisterRoutes(r, staffOnly)
	return r
}

func TestProductHandler_ListIsPublic(t *testing.T) {
	router := newProductRouter(newMockProductService(keyboard))

	for _, token := range []string{"", "customer-token", "staff-token"} {
		w := doRequest(t, router, http.MethodGet, "/products", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var products []models.Product
		decodeData(t, w, &products)
		assert.Equal(t, []models.Product{keyboard}, products)
	}
}

func TestProductHandler_Permissions(t *testing.T) {
	router := newProductRouter(newMockProductService(keyboard))

	requests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/product", map[string]any{"name": "Mouse", "description": "Wireless mouse", "price": 50}},
		{http.MethodGet, "/product/1", nil},
		{http.MethodPatch, "/product/1", map[string]any{"price": 10}},
		{http.MethodDelete, "/product/1", nil},
	}

	for _, req := range requests {
		t.Run(req.method+" "+req.path, func(t *testing.T) {
			w := doRequest(t, router, req.method, req.path, "", req.body)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, "Login failed", decodeError(t, w).Message)

			w = doRequest(t, router, req.method, req.path, "customer-token", req.body)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, "Access denied", decodeError(t, w).Message)
		})
	}
}

func TestProductHandler_CreateGetUpdateDelete(t *testing.T) {
	router := newProductRouter(newMockProductService())

	// create
	w := doRequest(t, router, http.MethodPost, "/product", "staff-token",
		map[string]any{"name": "Keyboard", "description": "Mechanical keyboard", "price": 100})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.CreateProductResponse
	decodeData(t, w, &created)
	assert.Equal(t, "Product added", created.Message)
	require.Equal(t, 1, created.ID)

	// get returns the same fields
	w = doRequest(t, router, http.MethodGet, "/product/1", "staff-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var product models.Product
	decodeData(t, w, &product)
	assert.Equal(t, keyboard, product)

	// update changes only the supplied fields
	w = doRequest(t, router, http.MethodPatch, "/product/1", "staff-token", map[string]any{"price": 150})
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &product)
	assert.Equal(t, models.Product{ID: 1, Name: "Keyboard", Description: "Mechanical keyboard", Price: 150}, product)

	// delete then get is 404
	w = doRequest(t, router, http.MethodDelete, "/product/1", "staff-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var msg models.MessageResponse
	decodeData(t, w, &msg)
	assert.Equal(t, "Product removed", msg.Message)

	w = doRequest(t, router, http.MethodGet, "/product/1", "staff-token", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decodeError(t, w).Message)
}

func TestProductHandler_Errors(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           any
		expectedStatus int
	}{
		{"create with invalid payload", http.MethodPost, "/product", map[string]any{"name": "", "price": -5}, http.StatusUnprocessableEntity},
		{"get unknown product", http.MethodGet, "/product/99", nil, http.StatusNotFound},
		{"get with non-numeric id", http.MethodGet, "/product/abc", nil, http.StatusNotFound},
		{"update unknown product", http.MethodPatch, "/product/99", map[string]any{"price": 1}, http.StatusNotFound},
		{"update unknown product with empty payload", http.MethodPatch, "/product/99", map[string]any{}, http.StatusNotFound},
		{"update with invalid price", http.MethodPatch, "/product/1", map[string]any{"price": -1}, http.StatusUnprocessableEntity},
		{"update with price beyond range", http.MethodPatch, "/product/1", map[string]any{"price": 2147483648}, http.StatusUnprocessableEntity},
		{"update with malformed body", http.MethodPatch, "/product/1", "{", http.StatusUnprocessableEntity},
		{"delete unknown product", http.MethodDelete, "/product/99", nil, http.StatusNotFound},
		{"delete with zero id", http.MethodDelete, "/product/0", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newProductRouter(newMockProductService(keyboard))

			w := doRequest(t, router, tt.method, tt.path, "staff-token", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedStatus, decodeError(t, w).Code)
		})
	}
}

func TestProductHandler_PriceRange(t *testing.T) {
	tests := []struct {
		name           string
		price          int64
		expectedStatus int
	}{
		{"zero", 0, http.StatusCreated},
		{"largest accepted price", 2147483647, http.StatusCreated},
		{"one past the cap", 2147483648, http.StatusUnprocessableEntity},
		{"beyond column range", 5000000000, http.StatusUnprocessableEntity},
		{"negative", -1, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newProductRouter(newMockProductService())

			w := doRequest(t, router, http.MethodPost, "/product", "staff-token",
				map[string]any{"name": "Keyboard", "description": "Mechanical keyboard", "price": tt.price})

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusUnprocessableEntity {
				body := decodeError(t, w)
				assert.Contains(t, body.Errors, "price")
			}
		})
	}
}

func TestProductHandler_UpdateWithNoFields(t *testing.T) {
	for name, body := range map[string]any{"empty object": map[string]any{}, "empty body": nil} {
		t.Run(name, func(t *testing.T) {
			router := newProductRouter(newMockProductService(keyboard))

			w := doRequest(t, router, http.MethodPatch, "/product/1", "staff-token", body)

			require.Equal(t, http.StatusOK, w.Code)
			var product models.Product
			decodeData(t, w, &product)
			assert.Equal(t, keyboard, product)
		})
	}
}
