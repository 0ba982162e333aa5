package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopfront/backend/internal/apperrors"
	authMiddleware "github.com/shopfront/backend/internal/auth/middleware"
	"github.com/shopfront/backend/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAuthenticator maps fixed tokens to users
type mockAuthenticator struct {
	users map[string]*models.User
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*models.User, error) {
	user, ok := m.users[token]
	if !ok {
		return nil, fmt.Errorf("unknown token: %w", apperrors.ErrForbidden)
	}
	return user, nil
}

var (
	customer = &models.User{ID: 1, Email: "buyer@example.com", IsActive: true}
	staff    = &models.User{ID: 2, Email: "staff@example.com", IsActive: true, IsStaff: true}

	testAuthenticator = &mockAuthenticator{users: map[string]*models.User{
		"customer-token": customer,
		"staff-token":    staff,
	}}
)

// routeMiddlewares returns the auth, staff and shopper middlewares used by the router
func routeMiddlewares() (auth, staffOnly, shopperOnly func(http.Handler) http.Handler) {
	logger := zap.NewNop()
	return authMiddleware.AuthMiddleware(testAuthenticator, logger),
		authMiddleware.RoleMiddleware(testAuthenticator, authMiddleware.ManageCatalog, logger),
		authMiddleware.RoleMiddleware(testAuthenticator, authMiddleware.Shop, logger)
}

func doRequest(t *testing.T, router chi.Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorBody {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Error
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(router chi.Router, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
