package order

import (
	"context"
	"fmt"
	"log"

	"github.com/alinea-commerce/crm-service/internal/messaging"
	"github.com/alinea-commerce/crm-service/internal/pagination"
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if req.CustomerID == "" {
		return nil, fmt.Errorf("customer ID is required")
	}
	if len(req.ProductIDs) == 0 {
		return nil, fmt.Errorf("at least one product is required")
	}

	o, err := s.repo.CreateOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if s.publisher != nil {
		event := messaging.OrderCreatedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventOrderCreated),
			Data: messaging.OrderCreatedData{
				OrderID:       o.ID,
				CustomerID:    o.CustomerID,
				CustomerEmail: o.CustomerEmail,
				ProductIDs:    req.ProductIDs,
				TotalAmount:   o.TotalAmount,
				OrderDate:     o.OrderDate,
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventOrderCreated, event); err != nil {
			log.Printf("Warning: failed to publish order.created event: %v", err)
		}
	}

	return o, nil
}

// ListOrdersWithPagination retrieves orders with pagination
func (s *Service) ListOrdersWithPagination(ctx context.Context, params pagination.Params) (*PaginatedListResponse, error) {
	params.Validate()

	orders, totalCount, err := s.repo.ListOrders(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	meta := params.CalculateMeta(totalCount)

	return &PaginatedListResponse{
		Success:    true,
		Orders:     orders,
		Pagination: meta,
	}, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*OrderResponse, error) {
	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return o, nil
}
