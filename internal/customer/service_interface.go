package customer

import (
	"context"

	"github.com/alinea-commerce/crm-service/internal/pagination"
)

// ServiceInterface defines the contract for customer business logic
type ServiceInterface interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error)
	BulkCreateCustomers(ctx context.Context, req BulkCreateCustomersRequest) (*BulkCreateResult, error)
	ListCustomersWithPagination(ctx context.Context, params pagination.Params) (*PaginatedListResponse, error)
	GetCustomer(ctx context.Context, id string) (*CustomerResponse, error)
	UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
