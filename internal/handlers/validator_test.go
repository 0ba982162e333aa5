package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopfront/backend/internal/apperrors"
	"github.com/shopfront/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		dst             any
		expectedError   bool
		expectedFields  []string
		expectedMessage string
	}{
		{
			name: "valid signup",
			body: `{"full_name":"Ivan Petrov","username":"ivan","email":"ivan@example.com","password":"Password123!"}`,
			dst:  &models.SignUpRequest{},
		},
		{
			name:           "missing fields",
			body:           `{}`,
			dst:            &models.SignUpRequest{},
			expectedError:  true,
			expectedFields: []string{"full_name", "username", "email", "password"},
		},
		{
			name:           "malformed email and weak password",
			body:           `{"full_name":"Ivan","username":"ivan","email":"not-an-email","password":"password"}`,
			dst:            &models.SignUpRequest{},
			expectedError:  true,
			expectedFields: []string{"email", "password"},
		},
		{
			name:           "full name too long",
			body:           `{"full_name":"` + strings.Repeat("a", 51) + `","username":"ivan","email":"ivan@example.com","password":"Password123!"}`,
			dst:            &models.SignUpRequest{},
			expectedError:  true,
			expectedFields: []string{"full_name"},
		},
		{
			name: "product with zero price",
			body: `{"name":"Sticker","description":"Free sticker","price":0}`,
			dst:  &models.CreateProductRequest{},
		},
		{
			name:           "product without price",
			body:           `{"name":"Sticker","description":"Free sticker"}`,
			dst:            &models.CreateProductRequest{},
			expectedError:  true,
			expectedFields: []string{"price"},
		},
		{
			name:           "negative price",
			body:           `{"name":"Sticker","description":"Free sticker","price":-1}`,
			dst:            &models.CreateProductRequest{},
			expectedError:  true,
			expectedFields: []string{"price"},
		},
		{
			name:           "price beyond the cap",
			body:           `{"name":"Sticker","description":"Free sticker","price":2147483648}`,
			dst:            &models.CreateProductRequest{},
			expectedError:  true,
			expectedFields: []string{"price"},
		},
		{
			name:           "price beyond the cap in partial update",
			body:           `{"price":5000000000}`,
			dst:            &models.UpdateProductRequest{},
			expectedError:  true,
			expectedFields: []string{"price"},
		},
		{
			name:           "price of wrong type",
			body:           `{"name":"Sticker","description":"Free sticker","price":"free"}`,
			dst:            &models.CreateProductRequest{},
			expectedError:  true,
			expectedFields: []string{"price"},
		},
		{
			name:           "empty name in partial update",
			body:           `{"name":""}`,
			dst:            &models.UpdateProductRequest{},
			expectedError:  true,
			expectedFields: []string{"name"},
		},
		{
			name:            "invalid JSON",
			body:            `{"name":`,
			dst:             &models.CreateProductRequest{},
			expectedError:   true,
			expectedMessage: "Invalid request body",
		},
		{
			name:            "empty body",
			body:            ``,
			dst:             &models.LoginRequest{},
			expectedError:   true,
			expectedMessage: "Request body is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))

			err := decodeAndValidate(req, tt.dst)

			if !tt.expectedError {
				assert.NoError(t, err)
				return
			}

			ve, ok := apperrors.AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			for _, field := range tt.expectedFields {
				assert.Contains(t, ve.Fields, field)
			}
			if tt.expectedMessage != "" {
				assert.Equal(t, tt.expectedMessage, ve.Message)
			}
		})
	}
}

func TestPasswordRule(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Password123!", true},
		{"Aa1_aaaa", true},
		{"Short1!", false},
		{"password123!", false},
		{"PASSWORD123!", false},
		{"Password!!!", false},
		{"Password123", false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			req := &models.SignUpRequest{
				FullName: "Ivan",
				Username: "ivan",
				Email:    "ivan@example.com",
				Password: tt.password,
			}
			err := validateStruct(req)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDecodePartialAndValidate(t *testing.T) {
	t.Run("empty body reads as no fields", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/", strings.NewReader(""))
		dst := &models.UpdateProductRequest{}

		require.NoError(t, decodePartialAndValidate(req, dst))
		assert.True(t, dst.IsEmpty())
	})

	t.Run("empty object reads as no fields", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/", strings.NewReader("{}"))
		dst := &models.UpdateProductRequest{}

		require.NoError(t, decodePartialAndValidate(req, dst))
		assert.True(t, dst.IsEmpty())
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/", strings.NewReader("{"))

		err := decodePartialAndValidate(req, &models.UpdateProductRequest{})
		ve, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Invalid request body", ve.Message)
	})

	t.Run("fields are still validated", func(t *testing.T) {
		req := httptest.NewRequest("PATCH", "/", strings.NewReader(`{"price":-1}`))

		err := decodePartialAndValidate(req, &models.UpdateProductRequest{})
		ve, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "price")
	})
}
