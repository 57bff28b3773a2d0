package product

import (
	"context"

	"github.com/alinea-commerce/crm-service/internal/pagination"
)

// ServiceInterface defines the contract for product business logic
type ServiceInterface interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error)
	ListProductsWithPagination(ctx context.Context, params pagination.Params) (*PaginatedListResponse, error)
	GetProduct(ctx context.Context, id string) (*ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*ProductResponse, error)
	RestockLowStock(ctx context.Context, threshold, increment int) (*RestockResult, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
