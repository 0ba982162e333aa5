package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopfront/backend/internal/apperrors"
	"github.com/shopfront/backend/internal/models"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondData sends a success envelope
func (h *BaseHandler) RespondData(w http.ResponseWriter, status int, data any) {
	h.RespondJSON(w, status, models.DataResponse{Data: data})
}

// RespondError sends an error envelope
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, models.ErrorResponse{
		Error: models.ErrorBody{Code: status, Message: message},
	})
}

// RespondValidationError sends a 422 error envelope with field messages
func (h *BaseHandler) RespondValidationError(w http.ResponseWriter, ve *apperrors.ValidationError) {
	message := ve.Message
	if message == "" {
		message = "Validation failed"
	}
	h.RespondJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{
		Error: models.ErrorBody{
			Code:    http.StatusUnprocessableEntity,
			Message: message,
			Errors:  ve.Fields,
		},
	})
}

// RespondServiceError maps an error returned by a service to a response
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.AsValidation(err); ok {
		h.RespondValidationError(w, ve)
		return
	}

	var nf *apperrors.NotFoundError
	switch {
	case errors.As(err, &nf):
		h.RespondError(w, http.StatusNotFound, capitalize(nf.Error()))
	case errors.Is(err, apperrors.ErrAuthentication):
		h.RespondError(w, http.StatusUnauthorized, "Authentication failed")
	case errors.Is(err, apperrors.ErrForbidden):
		h.RespondError(w, http.StatusForbidden, "Access denied")
	default:
		h.Logger.Error("request failed", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID reads a positive integer URL parameter
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
