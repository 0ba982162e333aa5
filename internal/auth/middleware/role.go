package middleware

import (
	"net/http"

	"github.com/shopfront/backend/internal/models"
	"go.uber.org/zap"
)

// Capability decides whether an authenticated user may use a group of routes
type Capability func(user *models.User) bool

// ManageCatalog is held by staff users
func ManageCatalog(user *models.User) bool {
	return user.IsStaff
}

// Shop is held by non-staff users: carts and orders
func Shop(user *models.User) bool {
	return !user.IsStaff
}

// RequireCapability rejects authenticated users lacking the capability with 403.
// It must run after AuthMiddleware.
func RequireCapability(capability Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				writeError(w, http.StatusForbidden, "Login failed")
				return
			}
			if !capability(user) {
				writeError(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RoleMiddleware authenticates the request and checks the capability
func RoleMiddleware(authenticator Authenticator, capability Capability, logger *zap.Logger) func(http.Handler) http.Handler {
	authenticate := AuthMiddleware(authenticator, logger)
	require := RequireCapability(capability)
	return func(next http.Handler) http.Handler {
		return authenticate(require(next))
	}
}
