package order

import (
	"time"

	"github.com/alinea-commerce/crm-service/internal/pagination"
)

// CreateOrderRequest represents the request to create a new order.
// OrderDate defaults to the current time when omitted.
type CreateOrderRequest struct {
	CustomerID string     `json:"customer_id"`
	ProductIDs []string   `json:"product_ids"`
	OrderDate  *time.Time `json:"order_date,omitempty"`
}

// OrderItem is a product line on an order. Price is the product price at
// the time the order was placed.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
}

// OrderResponse represents the order data returned to clients.
// TotalAmount is the sum of item prices as a decimal string.
type OrderResponse struct {
	ID            string      `json:"id"`
	CustomerID    string      `json:"customer_id"`
	CustomerEmail string      `json:"customer_email,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
	OrderDate     time.Time   `json:"order_date"`
	TotalAmount   string      `json:"total_amount"`
	CreatedAt     time.Time   `json:"created_at"`
}

// RecentOrder is the slim projection the reminders job reads.
type RecentOrder struct {
	ID            string    `json:"id"`
	CustomerEmail string    `json:"customer_email"`
	OrderDate     time.Time `json:"order_date"`
}

// PaginatedListResponse is the paginated order list envelope
type PaginatedListResponse struct {
	Success    bool            `json:"success"`
	Orders     []OrderResponse `json:"orders"`
	Pagination pagination.Meta `json:"pagination"`
}
