package models

import "time"

// Order is an immutable record of a completed checkout
type Order struct {
	ID         int         `json:"id"`
	UserID     int         `json:"user_id"`
	OrderPrice int64       `json:"order_price"` // Sum of item prices, may exceed a single price
	CreatedAt  time.Time   `json:"created_at"`
	Items      []OrderItem `json:"products"`
}

// OrderItem is a copy of a product taken at checkout time.
// ProductID is nil once the product has been removed from the catalog.
type OrderItem struct {
	ID          int    `json:"id"`
	OrderID     int    `json:"-"`
	ProductID   *int   `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

// CheckoutResponse is returned after an order is placed
type CheckoutResponse struct {
	OrderID int    `json:"order_id"`
	Message string `json:"message"`
}
