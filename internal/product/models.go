package product

import (
	"time"

	"github.com/alinea-commerce/crm-service/internal/pagination"
)

// CreateProductRequest represents the request to create a new product.
// Price is a decimal string so values survive the round trip to NUMERIC
// without float rounding.
type CreateProductRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Stock int    `json:"stock"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name  *string `json:"name,omitempty"`
	Price *string `json:"price,omitempty"`
	Stock *int    `json:"stock,omitempty"`
}

// ProductResponse represents the product data returned to clients
type ProductResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Price     string     `json:"price"`
	Stock     int        `json:"stock"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// RestockResult holds the outcome of a low-stock restock run
type RestockResult struct {
	Products []ProductResponse `json:"products"`
	Message  string            `json:"message"`
}

// PaginatedListResponse is the paginated product list envelope
type PaginatedListResponse struct {
	Success    bool              `json:"success"`
	Products   []ProductResponse `json:"products"`
	Pagination pagination.Meta   `json:"pagination"`
}
