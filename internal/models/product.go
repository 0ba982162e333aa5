package models

// Product represents a catalog item
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

// CreateProductRequest represents a request to create a product.
// Prices are capped at the signed 32-bit range, which fits the products.price column.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Price       *int   `json:"price" validate:"required,min=0,max=2147483647"`
}

// UpdateProductRequest represents a partial product update.
// Only non-nil fields are applied; an empty request leaves the product unchanged.
type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
	Price       *int    `json:"price,omitempty" validate:"omitempty,min=0,max=2147483647"`
}

// IsEmpty reports whether the request carries no fields
func (r *UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Price == nil
}

// CreateProductResponse is returned after a product is created
type CreateProductResponse struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}
