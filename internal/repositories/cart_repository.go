package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopfront/backend/internal/apperrors"
	"github.com/shopfront/backend/internal/models"
	"go.uber.org/zap"
)

type cartRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *sql.DB, logger *zap.Logger) *cartRepository {
	return &cartRepository{
		db:     db,
		logger: logger,
	}
}

// GetOrCreate returns the ID of the user's cart, creating the cart if needed.
//
// carts.user_id is unique; on conflict LAST_INSERT_ID(id) makes LastInsertId
// report the existing row, so concurrent callers always agree on one cart.
func (r *cartRepository) GetOrCreate(ctx context.Context, userID int) (int, error) {
	query := `
		INSERT INTO carts (user_id)
		VALUES (?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)
	`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to get or create cart", zap.Error(err), zap.Int("userId", userID))
		return 0, fmt.Errorf("failed to get or create cart: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get cart id: %w", err)
	}

	return int(id), nil
}

// GetByUserID retrieves the user's cart
func (r *cartRepository) GetByUserID(ctx context.Context, userID int) (*models.Cart, error) {
	query := `SELECT id, user_id FROM carts WHERE user_id = ?`

	cart := &models.Cart{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&cart.ID, &cart.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("cart")
	}
	if err != nil {
		r.logger.Error("failed to get cart", zap.Error(err), zap.Int("userId", userID))
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return cart, nil
}

// GetProducts retrieves the products in a cart ordered by product ID
func (r *cartRepository) GetProducts(ctx context.Context, cartID int) ([]models.Product, error) {
	return queryCartProducts(ctx, r.db, cartID)
}

// AddProduct puts a product into the cart. Adding a product twice is a no-op.
func (r *cartRepository) AddProduct(ctx context.Context, cartID, productID int) error {
	query := `
		INSERT INTO cart_products (cart_id, product_id)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE product_id = product_id
	`

	if _, err := r.db.ExecContext(ctx, query, cartID, productID); err != nil {
		r.logger.Error("failed to add product to cart", zap.Error(err), zap.Int("cartId", cartID), zap.Int("productId", productID))
		return fmt.Errorf("failed to add product to cart: %w", err)
	}

	return nil
}

// RemoveProduct takes a product out of the cart. Removing an absent product is a no-op.
func (r *cartRepository) RemoveProduct(ctx context.Context, cartID, productID int) error {
	query := `DELETE FROM cart_products WHERE cart_id = ? AND product_id = ?`

	if _, err := r.db.ExecContext(ctx, query, cartID, productID); err != nil {
		r.logger.Error("failed to remove product from cart", zap.Error(err), zap.Int("cartId", cartID), zap.Int("productId", productID))
		return fmt.Errorf("failed to remove product from cart: %w", err)
	}

	return nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// queryCartProducts lists the products of a cart
func queryCartProducts(ctx context.Context, q queryer, cartID int) ([]models.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price
		FROM cart_products cp
		JOIN products p ON p.id = cp.product_id
		WHERE cp.cart_id = ?
		ORDER BY p.id
	`

	rows, err := q.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var product models.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price); err != nil {
			return nil, fmt.Errorf("failed to scan cart product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}
