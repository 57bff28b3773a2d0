package customer

import (
	"context"
	"time"
)

// RepositoryInterface defines the contract for customer data access
type RepositoryInterface interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error)
	BulkCreateCustomers(ctx context.Context, reqs []CreateCustomerRequest) ([]CustomerResponse, []BulkRowError, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListCustomers(ctx context.Context, limit, offset int) ([]CustomerResponse, int, error)
	GetCustomer(ctx context.Context, id string) (*CustomerResponse, error)
	UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) error
	CountInactive(ctx context.Context, cutoff time.Time) (int, error)
	DeleteInactive(ctx context.Context, cutoff time.Time) (int, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
