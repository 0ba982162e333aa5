package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopfront/backend/internal/models"
	"go.uber.org/zap"
)

// ExpiredTokenDeleter removes tokens created at or before a point in time
type ExpiredTokenDeleter interface {
	DeleteExpiredTokens(ctx context.Context, expiryTime time.Time) (int, error)
}

// TokenCleaningHandler handles token cleaning requests
type TokenCleaningHandler struct {
	BaseHandler
	userTokenRepo ExpiredTokenDeleter
	tokenExpiry   time.Duration
}

// NewTokenCleaningHandler creates a new token cleaning handler
func NewTokenCleaningHandler(
	userTokenRepo ExpiredTokenDeleter,
	logger *zap.Logger,
	tokenExpiry time.Duration,
) *TokenCleaningHandler {
	return &TokenCleaningHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		userTokenRepo: userTokenRepo,
		tokenExpiry:   tokenExpiry,
	}
}

// RegisterRoutes registers token cleaning handler routes
func (h *TokenCleaningHandler) RegisterRoutes(r chi.Router, apiKeyMiddleware func(http.Handler) http.Handler) {
	r.With(apiKeyMiddleware).Get("/tokens/clean", h.CleanTokens)
}

// CleanTokens handles GET /tokens/clean
// @Summary Clean expired tokens
// @Description Removes all user tokens created before the configured token lifetime
// @Tags tokens
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.DataResponse{data=models.MessageResponse} "Token cleaning completed successfully"
// @Failure 401 {object} models.ErrorResponse "Invalid API key"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /tokens/clean [get]
func (h *TokenCleaningHandler) CleanTokens(w http.ResponseWriter, r *http.Request) {
	expiryTime := time.Now().Add(-h.tokenExpiry)

	deletedCount, err := h.userTokenRepo.DeleteExpiredTokens(r.Context(), expiryTime)
	if err != nil {
		h.Logger.Error("failed to delete expired tokens", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// 0 deleted rows is not an error
	h.Logger.Info("token cleaning completed successfully", zap.Int("deletedCount", deletedCount))
	h.RespondData(w, http.StatusOK, models.MessageResponse{Message: "token cleaning completed successfully"})
}
