package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopfront/backend/internal/apperrors"
	"github.com/shopfront/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupProductTestRepository creates a product repository with a mock database
func setupProductTestRepository(t *testing.T) (*productRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewProductRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

var productColumns = []string{"id", "name", "description", "price"}

func TestProductRepository_GetAll(t *testing.T) {
	tests := []struct {
		name             string
		setupMock        func(sqlmock.Sqlmock)
		expectedProducts []models.Product
		expectedError    bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(productColumns).
					AddRow(1, "Keyboard", "Mechanical keyboard", 100).
					AddRow(2, "Mouse", "Wireless mouse", 50)
				mock.ExpectQuery(`SELECT id, name, description, price FROM products ORDER BY id`).
					WillReturnRows(rows)
			},
			expectedProducts: []models.Product{
				{ID: 1, Name: "Keyboard", Description: "Mechanical keyboard", Price: 100},
				{ID: 2, Name: "Mouse", Description: "Wireless mouse", Price: 50},
			},
		},
		{
			name: "empty catalog",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM products`).
					WillReturnRows(sqlmock.NewRows(productColumns))
			},
			expectedProducts: []models.Product{},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM products`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "scan error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(productColumns).
					AddRow("invalid", "Keyboard", "Mechanical keyboard", 100)
				mock.ExpectQuery(`SELECT (.+) FROM products`).
					WillReturnRows(rows)
			},
			expectedError: true,
		},
		{
			name: "rows error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(productColumns).
					AddRow(1, "Keyboard", "Mechanical keyboard", 100).
					RowError(0, errors.New("row error"))
				mock.ExpectQuery(`SELECT (.+) FROM products`).
					WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProductTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			products, err := repo.GetAll(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, products)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedProducts, products)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductRepository_GetByID(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		notFound      bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, description, price FROM products WHERE id = \?`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows(productColumns).AddRow(1, "Keyboard", "Mechanical keyboard", 100))
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \?`).
					WithArgs(1).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			notFound:      true,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \?`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProductTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			product, err := repo.GetByID(context.Background(), 1)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, product)
				assert.Equal(t, tt.notFound, apperrors.IsNotFound(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, &models.Product{ID: 1, Name: "Keyboard", Description: "Mechanical keyboard", Price: 100}, product)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductRepository_ExistsByID(t *testing.T) {
	repo, mock, cleanup := setupProductTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	exists, err := repo.ExistsByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	exists, err = repo.ExistsByID(context.Background(), 2)
	assert.NoError(t, err)
	assert.False(t, exists)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(3).
		WillReturnError(errors.New("database error"))
	exists, err = repo.ExistsByID(context.Background(), 3)
	assert.Error(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO products`).
					WithArgs("Keyboard", "Mechanical keyboard", 100).
					WillReturnResult(sqlmock.NewResult(5, 1))
			},
			expectedID: 5,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO products`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "last insert id error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO products`).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no id")))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProductTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			product := &models.Product{Name: "Keyboard", Description: "Mechanical keyboard", Price: 100}
			err := repo.Create(context.Background(), product)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, product.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductRepository_Update(t *testing.T) {
	tests := []struct {
		name          string
		req           *models.UpdateProductRequest
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "price only",
			req:  &models.UpdateProductRequest{Price: intPtr(120)},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE products SET price = \? WHERE id = \?`).
					WithArgs(120, 3).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "all fields",
			req: &models.UpdateProductRequest{
				Name:        stringPtr("Keyboard Pro"),
				Description: stringPtr("Low profile"),
				Price:       intPtr(200),
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE products SET name = \?, description = \?, price = \? WHERE id = \?`).
					WithArgs("Keyboard Pro", "Low profile", 200, 3).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:      "nothing supplied",
			req:       &models.UpdateProductRequest{},
			setupMock: func(mock sqlmock.Sqlmock) {},
		},
		{
			name: "database error",
			req:  &models.UpdateProductRequest{Name: stringPtr("Keyboard Pro")},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE products SET name = \? WHERE id = \?`).
					WithArgs("Keyboard Pro", 3).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProductTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Update(context.Background(), 3, tt.req)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func intPtr(v int) *int {
	return &v
}

func stringPtr(v string) *string {
	return &v
}

func TestProductRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		notFound      bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM products WHERE id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM products WHERE id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			notFound:      true,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM products`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "rows affected error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM products`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("rows affected error")))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProductTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), 1)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Equal(t, tt.notFound, apperrors.IsNotFound(err))
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
