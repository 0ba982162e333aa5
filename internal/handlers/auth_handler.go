package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	authMiddleware "github.com/shopfront/backend/internal/auth/middleware"
	"github.com/shopfront/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method SignUp validates uniqueness of the email, creates a non-staff user and returns its bearer token.
	//
	// "req" parameter contains full name, username, email and password.
	//
	// If the email is taken, a validation error is returned together with an empty token.
	SignUp(ctx context.Context, req *models.SignUpRequest) (string, error)
	// Method Login checks the credentials and returns the user's bearer token.
	//
	// "req" parameter contains email and password.
	//
	// If the credentials do not match an active user, apperrors.ErrAuthentication is returned.
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	// Method Logout revokes the bearer token.
	//
	// "token" parameter is the token the request was authenticated with.
	Logout(ctx context.Context, token string) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Post("/signup", h.SignUp)
	r.Post("/login", h.Login)
	r.With(authMiddleware).Get("/logout", h.Logout)
}

// SignUp handles POST /signup
// @Summary Sign up
// @Description Create a customer account and return its bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignUpRequest true "Account data"
// @Success 201 {object} models.DataResponse{data=models.TokenResponse} "Account created"
// @Failure 422 {object} models.ErrorResponse "Validation failed"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /signup [post]
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	token, err := h.authService.SignUp(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondData(w, http.StatusCreated, models.TokenResponse{UserToken: token})
}

// Login handles POST /login
// @Summary Log in
// @Description Check credentials and return the user's bearer token. Repeated logins return the same token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.DataResponse{data=models.TokenResponse} "Logged in"
// @Failure 401 {object} models.ErrorResponse "Authentication failed"
// @Failure 422 {object} models.ErrorResponse "Validation failed"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	token, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, models.TokenResponse{UserToken: token})
}

// Logout handles GET /logout
// @Summary Log out
// @Description Revoke the bearer token the request was made with
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse{data=models.MessageResponse} "Logged out"
// @Failure 403 {object} models.ErrorResponse "Login failed"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /logout [get]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := authMiddleware.GetToken(r.Context())
	if !ok {
		h.RespondError(w, http.StatusForbidden, "Login failed")
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, models.MessageResponse{Message: "logout"})
}
