package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateOrder inserts the order and its items in one transaction. The
// total is the sum of the item prices, and the customer's last_order_date
// moves forward so the inactivity purge sees the activity.
func (r *Repository) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	// A malformed id would fail the uuid-typed query with a syntax error
	// rather than sql.ErrNoRows, so reject it up front.
	if _, err := uuid.Parse(req.CustomerID); err != nil {
		return nil, fmt.Errorf("invalid customer ID")
	}
	for _, productID := range req.ProductIDs {
		if _, err := uuid.Parse(productID); err != nil {
			return nil, fmt.Errorf("invalid product ID: %s", productID)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var customerEmail string
	err = tx.QueryRowContext(ctx, `SELECT email FROM customers WHERE id = $1`, req.CustomerID).Scan(&customerEmail)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invalid customer ID")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	orderID := uuid.New()
	createdAt := time.Now()
	orderDate := createdAt
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, order_date, total_amount, created_at)
		VALUES ($1, $2, $3, 0, $4)
	`, orderID, req.CustomerID, orderDate, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	// Item price is snapshotted from the product at order time
	for _, productID := range req.ProductIDs {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, price)
			SELECT $1, id, price FROM products WHERE id = $2
		`, orderID, productID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return nil, fmt.Errorf("invalid product ID: %s", productID)
		}
	}

	var totalAmount string
	err = tx.QueryRowContext(ctx, `
		UPDATE orders o
		SET total_amount = (SELECT COALESCE(SUM(i.price), 0) FROM order_items i WHERE i.order_id = o.id)
		WHERE o.id = $1
		RETURNING total_amount::text
	`, orderID).Scan(&totalAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to total order: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE customers
		SET last_order_date = $1, updated_at = $2
		WHERE id = $3
	`, orderDate, createdAt, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to update customer last order date: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &OrderResponse{
		ID:            orderID.String(),
		CustomerID:    req.CustomerID,
		CustomerEmail: customerEmail,
		OrderDate:     orderDate,
		TotalAmount:   totalAmount,
		CreatedAt:     createdAt,
	}, nil
}

func (r *Repository) ListOrders(ctx context.Context, limit, offset int) ([]OrderResponse, int, error) {
	var totalCount int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `
		SELECT o.id, o.customer_id, c.email, o.order_date, o.total_amount::text, o.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		ORDER BY o.order_date DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []OrderResponse
	for rows.Next() {
		var o OrderResponse
		err := rows.Scan(&o.ID, &o.CustomerID, &o.CustomerEmail, &o.OrderDate, &o.TotalAmount, &o.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, totalCount, nil
}

func (r *Repository) GetOrder(ctx context.Context, id string) (*OrderResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("order not found")
	}

	query := `
		SELECT o.id, o.customer_id, c.email, o.order_date, o.total_amount::text, o.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1
	`

	var o OrderResponse
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.CustomerID, &o.CustomerEmail, &o.OrderDate, &o.TotalAmount, &o.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	itemsQuery := `
		SELECT i.product_id, p.name, i.price::text
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY p.name
	`

	rows, err := r.db.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return &o, nil
}

// ListRecentOrders returns orders placed on or after the given time,
// oldest first, with the customer email the reminders job writes out.
func (r *Repository) ListRecentOrders(ctx context.Context, since time.Time) ([]RecentOrder, error) {
	query := `
		SELECT o.id, c.email, o.order_date
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.order_date >= $1
		ORDER BY o.order_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent orders: %w", err)
	}
	defer rows.Close()

	var orders []RecentOrder
	for rows.Next() {
		var o RecentOrder
		if err := rows.Scan(&o.ID, &o.CustomerEmail, &o.OrderDate); err != nil {
			return nil, fmt.Errorf("failed to scan recent order: %w", err)
		}
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent orders: %w", err)
	}

	return orders, nil
}
