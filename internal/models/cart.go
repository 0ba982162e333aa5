package models

// Cart is a user's in-progress selection of products.
// A user has at most one cart; it is consumed by checkout.
type Cart struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`
}

// CartResponse is the body of the view cart endpoint
type CartResponse struct {
	Body []Product `json:"body"`
}
