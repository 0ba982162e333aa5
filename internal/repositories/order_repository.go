package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopfront/backend/internal/apperrors"
	"github.com/shopfront/backend/internal/models"
	"go.uber.org/zap"
)

// errCartEmpty is returned by checkout when there is nothing to order
var errCartEmpty = apperrors.Validation("Cart is empty")

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

// CreateFromCart turns the user's cart into an order and deletes the cart, all in one transaction.
//
// The cart row is locked first, so a concurrent checkout for the same user waits and then
// finds no cart. A missing cart and a cart without products are both rejected as empty.
// Order items copy name, description and price so later catalog changes do not alter the order.
func (r *orderRepository) CreateFromCart(ctx context.Context, userID int) (*models.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var cartID int
	err = tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id = ? FOR UPDATE`, userID).Scan(&cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errCartEmpty
	}
	if err != nil {
		r.logger.Error("failed to lock cart", zap.Error(err), zap.Int("userId", userID))
		return nil, fmt.Errorf("failed to lock cart: %w", err)
	}

	products, err := queryCartProducts(ctx, tx, cartID)
	if err != nil {
		r.logger.Error("failed to read cart products", zap.Error(err), zap.Int("cartId", cartID))
		return nil, err
	}
	if len(products) == 0 {
		return nil, errCartEmpty
	}

	order := &models.Order{
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		Items:     make([]models.OrderItem, 0, len(products)),
	}
	for _, product := range products {
		productID := product.ID
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   &productID,
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
		})
		order.OrderPrice += int64(product.Price)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, order_price, created_at) VALUES (?, ?, ?)`,
		userID, order.OrderPrice, order.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create order", zap.Error(err), zap.Int("userId", userID))
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get order id: %w", err)
	}
	order.ID = int(orderID)

	placeholders := make([]string, len(order.Items))
	args := make([]any, 0, len(order.Items)*5)
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		placeholders[i] = "(?, ?, ?, ?, ?)"
		args = append(args, order.ID, *order.Items[i].ProductID, order.Items[i].Name, order.Items[i].Description, order.Items[i].Price)
	}
	itemsQuery := fmt.Sprintf(`
		INSERT INTO order_items (order_id, product_id, name, description, price)
		VALUES %s
	`, strings.Join(placeholders, ","))
	if _, err := tx.ExecContext(ctx, itemsQuery, args...); err != nil {
		r.logger.Error("failed to create order items", zap.Error(err), zap.Int("orderId", order.ID))
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	// cart_products rows are removed by ON DELETE CASCADE
	if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE id = ?`, cartID); err != nil {
		r.logger.Error("failed to delete cart", zap.Error(err), zap.Int("cartId", cartID))
		return nil, fmt.Errorf("failed to delete cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return order, nil
}

// GetAllByUserID retrieves the user's orders with their items, newest first
func (r *orderRepository) GetAllByUserID(ctx context.Context, userID int) ([]models.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.order_price, o.created_at,
			i.id, i.product_id, i.name, i.description, i.price
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.user_id = ?
		ORDER BY o.id DESC, i.id
	`

	orders, err := r.queryOrders(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to get orders", zap.Error(err), zap.Int("userId", userID))
		return nil, err
	}

	return orders, nil
}

// GetByID retrieves one of the user's orders. Orders of other users are reported as not found.
func (r *orderRepository) GetByID(ctx context.Context, userID, orderID int) (*models.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.order_price, o.created_at,
			i.id, i.product_id, i.name, i.description, i.price
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.id = ? AND o.user_id = ?
		ORDER BY i.id
	`

	orders, err := r.queryOrders(ctx, query, orderID, userID)
	if err != nil {
		r.logger.Error("failed to get order", zap.Error(err), zap.Int("orderId", orderID))
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperrors.NotFound("order")
	}

	return &orders[0], nil
}

// queryOrders folds order/item join rows into orders, keeping the row order
func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	index := make(map[int]int)
	for rows.Next() {
		var (
			order       models.Order
			itemID      sql.NullInt64
			productID   sql.NullInt64
			name        sql.NullString
			description sql.NullString
			price       sql.NullInt64
		)
		if err := rows.Scan(
			&order.ID, &order.UserID, &order.OrderPrice, &order.CreatedAt,
			&itemID, &productID, &name, &description, &price,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		pos, ok := index[order.ID]
		if !ok {
			order.Items = []models.OrderItem{}
			orders = append(orders, order)
			pos = len(orders) - 1
			index[order.ID] = pos
		}

		if !itemID.Valid {
			continue
		}
		item := models.OrderItem{
			ID:          int(itemID.Int64),
			OrderID:     order.ID,
			Name:        name.String,
			Description: description.String,
			Price:       int(price.Int64),
		}
		if productID.Valid {
			id := int(productID.Int64)
			item.ProductID = &id
		}
		orders[pos].Items = append(orders[pos].Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return orders, nil
}
