package models

// User represents a shop account
type User struct {
	ID           int    `json:"id"`
	FullName     string `json:"full_name"`
	Username     string `json:"username"`
	Email        string `json:"email"`     // Login key, unique
	IsStaff      bool   `json:"is_staff"`  // Staff manage the catalog and cannot shop
	IsActive     bool   `json:"is_active"` // Inactive users cannot log in
	PasswordHash string `json:"-"`         // Never serialize password hash
}

// SignUpRequest represents a signup request
type SignUpRequest struct {
	FullName string `json:"full_name" validate:"required,max=50"`
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by signup and login
type TokenResponse struct {
	UserToken string `json:"user_token"`
}
