package product

import "context"

// RepositoryInterface defines the contract for product data access
type RepositoryInterface interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error)
	ListProducts(ctx context.Context, limit, offset int) ([]ProductResponse, int, error)
	GetProduct(ctx context.Context, id string) (*ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*ProductResponse, error)
	RestockLowStock(ctx context.Context, threshold, increment int) ([]ProductResponse, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
