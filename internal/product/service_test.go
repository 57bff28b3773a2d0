package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alinea-commerce/crm-service/internal/messaging"
	"github.com/alinea-commerce/crm-service/internal/testutil"
)

// TestCreateProduct_Success tests successful product creation
func TestCreateProduct_Success(t *testing.T) {
	mockRepo := &mockRepository{
		createProductFunc: func(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
			return &ProductResponse{
				ID:        "prod-123",
				Name:      req.Name,
				Price:     req.Price,
				Stock:     req.Stock,
				CreatedAt: time.Now(),
			}, nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	product, err := service.CreateProduct(context.Background(), CreateProductRequest{
		Name:  "Widget",
		Price: "19.99",
		Stock: 5,
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if product.Price != "19.99" {
		t.Errorf("Expected price '19.99', got '%s'", product.Price)
	}
	publisher.AssertEventCount(t, messaging.EventProductCreated, 1)
}

// TestCreateProduct_Validation tests rejection of bad inputs
func TestCreateProduct_Validation(t *testing.T) {
	service := NewService(&mockRepository{}, nil)

	cases := []struct {
		name    string
		req     CreateProductRequest
		wantErr string
	}{
		{"empty name", CreateProductRequest{Price: "10.00"}, "product name is required"},
		{"non-numeric price", CreateProductRequest{Name: "Widget", Price: "abc"}, "invalid price"},
		{"zero price", CreateProductRequest{Name: "Widget", Price: "0"}, "price must be positive"},
		{"negative price", CreateProductRequest{Name: "Widget", Price: "-5.00"}, "price must be positive"},
		{"negative stock", CreateProductRequest{Name: "Widget", Price: "10.00", Stock: -1}, "stock cannot be negative"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateProduct(context.Background(), tc.req)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if err.Error() != tc.wantErr {
				t.Errorf("Expected '%s', got '%s'", tc.wantErr, err.Error())
			}
		})
	}
}

// TestRestockLowStock_NoLowStock tests that a run with nothing under the
// threshold reports the no-op message and emits no event
func TestRestockLowStock_NoLowStock(t *testing.T) {
	mockRepo := &mockRepository{
		restockFunc: func(ctx context.Context, threshold, increment int) ([]ProductResponse, error) {
			return nil, nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	result, err := service.RestockLowStock(context.Background(), 0, 0)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Message != "No products required restocking." {
		t.Errorf("Expected no-op message, got '%s'", result.Message)
	}
	if len(result.Products) != 0 {
		t.Errorf("Expected no products, got %d", len(result.Products))
	}
	publisher.AssertEventNotPublished(t, messaging.EventProductRestocked)
}

// TestRestockLowStock_UpdatesLowStock tests the restock message and event
func TestRestockLowStock_UpdatesLowStock(t *testing.T) {
	mockRepo := &mockRepository{
		restockFunc: func(ctx context.Context, threshold, increment int) ([]ProductResponse, error) {
			if threshold != DefaultLowStockThreshold {
				t.Errorf("Expected default threshold %d, got %d", DefaultLowStockThreshold, threshold)
			}
			if increment != DefaultRestockIncrement {
				t.Errorf("Expected default increment %d, got %d", DefaultRestockIncrement, increment)
			}
			return []ProductResponse{
				{ID: "prod-1", Name: "Widget", Stock: 13},
				{ID: "prod-2", Name: "Gadget", Stock: 10},
			}, nil
		},
	}
	publisher := testutil.NewMockPublisher()
	service := NewService(mockRepo, publisher)

	result, err := service.RestockLowStock(context.Background(), 0, 0)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Message != "Successfully restocked 2 product(s)." {
		t.Errorf("Expected restock message, got '%s'", result.Message)
	}
	publisher.AssertEventCount(t, messaging.EventProductRestocked, 1)
}

// TestRestockLowStock_CustomThreshold tests that explicit arguments are
// passed through unchanged
func TestRestockLowStock_CustomThreshold(t *testing.T) {
	var gotThreshold, gotIncrement int
	mockRepo := &mockRepository{
		restockFunc: func(ctx context.Context, threshold, increment int) ([]ProductResponse, error) {
			gotThreshold = threshold
			gotIncrement = increment
			return nil, nil
		},
	}
	service := NewService(mockRepo, nil)

	if _, err := service.RestockLowStock(context.Background(), 25, 50); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotThreshold != 25 || gotIncrement != 50 {
		t.Errorf("Expected threshold=25 increment=50, got threshold=%d increment=%d", gotThreshold, gotIncrement)
	}
}

// TestRestockLowStock_RepositoryError tests error propagation
func TestRestockLowStock_RepositoryError(t *testing.T) {
	mockRepo := &mockRepository{
		restockFunc: func(ctx context.Context, threshold, increment int) ([]ProductResponse, error) {
			return nil, errors.New("database connection failed")
		},
	}
	service := NewService(mockRepo, nil)

	result, err := service.RestockLowStock(context.Background(), 0, 0)

	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if result != nil {
		t.Error("Expected nil result")
	}
}

// TestUpdateProduct_InvalidPrice tests update-time price validation
func TestUpdateProduct_InvalidPrice(t *testing.T) {
	service := NewService(&mockRepository{}, nil)

	bad := "-1.00"
	_, err := service.UpdateProduct(context.Background(), "prod-123", UpdateProductRequest{Price: &bad})

	if err == nil {
		t.Fatal("Expected error for negative price, got nil")
	}
	if err.Error() != "price must be positive" {
		t.Errorf("Expected 'price must be positive', got '%s'", err.Error())
	}
}

// mockRepository is a mock implementation of RepositoryInterface
type mockRepository struct {
	createProductFunc func(ctx context.Context, req CreateProductRequest) (*ProductResponse, error)
	listProductsFunc  func(ctx context.Context, limit, offset int) ([]ProductResponse, int, error)
	getProductFunc    func(ctx context.Context, id string) (*ProductResponse, error)
	updateProductFunc func(ctx context.Context, id string, req UpdateProductRequest) (*ProductResponse, error)
	restockFunc       func(ctx context.Context, threshold, increment int) ([]ProductResponse, error)
}

func (m *mockRepository) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if m.createProductFunc != nil {
		return m.createProductFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListProducts(ctx context.Context, limit, offset int) ([]ProductResponse, int, error) {
	if m.listProductsFunc != nil {
		return m.listProductsFunc(ctx, limit, offset)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockRepository) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	if m.getProductFunc != nil {
		return m.getProductFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*ProductResponse, error) {
	if m.updateProductFunc != nil {
		return m.updateProductFunc(ctx, id, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) RestockLowStock(ctx context.Context, threshold, increment int) ([]ProductResponse, error) {
	if m.restockFunc != nil {
		return m.restockFunc(ctx, threshold, increment)
	}
	return nil, errors.New("not implemented")
}
