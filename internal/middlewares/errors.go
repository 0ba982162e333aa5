package middlewares

import (
	"encoding/json"
	"net/http"

	"github.com/shopfront/backend/internal/models"
)

// writeError writes the API error envelope from middleware that runs before any handler
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: models.ErrorBody{Code: status, Message: message},
	})
}
