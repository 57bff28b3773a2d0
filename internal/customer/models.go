package customer

import (
	"time"

	"github.com/alinea-commerce/crm-service/internal/pagination"
)

// CreateCustomerRequest represents the request to create a new customer
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// UpdateCustomerRequest represents a partial customer update
type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// CustomerResponse represents the customer data returned to clients
type CustomerResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	LastOrderDate *time.Time `json:"last_order_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// BulkCreateCustomersRequest wraps a batch of customers to create
type BulkCreateCustomersRequest struct {
	Customers []CreateCustomerRequest `json:"customers"`
}

// BulkCreateResult holds the customers that were created plus
// per-index error strings for the ones that were rejected
type BulkCreateResult struct {
	Customers []CustomerResponse `json:"customers"`
	Errors    []string           `json:"errors"`
}

// BulkRowError reports a rejected row by its position in the batch handed
// to the repository
type BulkRowError struct {
	Index   int
	Message string
}

// PaginatedListResponse is the paginated customer list envelope
type PaginatedListResponse struct {
	Success    bool               `json:"success"`
	Customers  []CustomerResponse `json:"customers"`
	Pagination pagination.Meta    `json:"pagination"`
}
