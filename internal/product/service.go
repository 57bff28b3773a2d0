package product

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/alinea-commerce/crm-service/internal/messaging"
	"github.com/alinea-commerce/crm-service/internal/pagination"
)

// Restock defaults: products below the threshold get topped up by the
// increment on every restock run.
const (
	DefaultLowStockThreshold = 10
	DefaultRestockIncrement  = 10
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	price, err := strconv.ParseFloat(req.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price")
	}
	if price <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	product, err := s.repo.CreateProduct(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if s.publisher != nil {
		event := messaging.ProductCreatedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventProductCreated),
			Data: messaging.ProductCreatedData{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Stock:     product.Stock,
				CreatedAt: product.CreatedAt,
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventProductCreated, event); err != nil {
			log.Printf("Warning: failed to publish product.created event: %v", err)
		}
	}

	return product, nil
}

// ListProductsWithPagination retrieves products with pagination
func (s *Service) ListProductsWithPagination(ctx context.Context, params pagination.Params) (*PaginatedListResponse, error) {
	params.Validate()

	products, totalCount, err := s.repo.ListProducts(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	meta := params.CalculateMeta(totalCount)

	return &PaginatedListResponse{
		Success:    true,
		Products:   products,
		Pagination: meta,
	}, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*ProductResponse, error) {
	if req.Price != nil {
		price, err := strconv.ParseFloat(*req.Price, 64)
		if err != nil || price <= 0 {
			return nil, fmt.Errorf("price must be positive")
		}
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	product, err := s.repo.UpdateProduct(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// RestockLowStock tops up every product whose stock is under the threshold
// and reports which rows changed. Non-positive arguments fall back to the
// defaults.
func (s *Service) RestockLowStock(ctx context.Context, threshold, increment int) (*RestockResult, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	if increment <= 0 {
		increment = DefaultRestockIncrement
	}

	updated, err := s.repo.RestockLowStock(ctx, threshold, increment)
	if err != nil {
		return nil, fmt.Errorf("failed to restock products: %w", err)
	}

	result := &RestockResult{Products: updated}
	if len(updated) == 0 {
		result.Message = "No products required restocking."
		return result, nil
	}
	result.Message = fmt.Sprintf("Successfully restocked %d product(s).", len(updated))

	if s.publisher != nil {
		event := messaging.ProductRestockedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventProductRestocked),
			Data: messaging.ProductRestockedData{
				RestockedCount: len(updated),
				Threshold:      threshold,
				Increment:      increment,
				RestockedAt:    time.Now().UTC(),
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventProductRestocked, event); err != nil {
			log.Printf("Warning: failed to publish product.restocked event: %v", err)
		}
	}

	return result, nil
}
