package customer

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/alinea-commerce/crm-service/internal/messaging"
	"github.com/alinea-commerce/crm-service/internal/pagination"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?\d{1,4}[-.\s]?\(?\d{1,3}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}$`)
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	if err := validateCustomer(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email already exists")
	}

	cust, err := s.repo.CreateCustomer(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	if s.publisher != nil {
		event := messaging.CustomerCreatedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventCustomerCreated),
			Data: messaging.CustomerCreatedData{
				CustomerID: cust.ID,
				Name:       cust.Name,
				Email:      cust.Email,
				Phone:      cust.Phone,
				CreatedAt:  cust.CreatedAt,
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventCustomerCreated, event); err != nil {
			log.Printf("Warning: failed to publish customer.created event: %v", err)
		}
	}

	return cust, nil
}

// BulkCreateCustomers validates each row and creates the valid ones in a
// single repository transaction. A rejected row is recorded as a per-index
// error string and does not abort the batch; a storage failure rolls the
// whole batch back.
func (s *Service) BulkCreateCustomers(ctx context.Context, req BulkCreateCustomersRequest) (*BulkCreateResult, error) {
	if len(req.Customers) == 0 {
		return nil, fmt.Errorf("at least one customer is required")
	}

	result := &BulkCreateResult{
		Customers: []CustomerResponse{},
		Errors:    []string{},
	}

	// validIdx maps positions in the repository batch back to positions
	// in the request, so error strings keep the caller's numbering
	valid := make([]CreateCustomerRequest, 0, len(req.Customers))
	validIdx := make([]int, 0, len(req.Customers))
	for idx, c := range req.Customers {
		if err := validateCustomer(c); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Customer %d: %s", idx, err.Error()))
			continue
		}
		valid = append(valid, c)
		validIdx = append(validIdx, idx)
	}

	if len(valid) == 0 {
		return result, nil
	}

	created, rowErrs, err := s.repo.BulkCreateCustomers(ctx, valid)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk create customers: %w", err)
	}

	for _, rowErr := range rowErrs {
		result.Errors = append(result.Errors, fmt.Sprintf("Customer %d: %s", validIdx[rowErr.Index], rowErr.Message))
	}
	result.Customers = append(result.Customers, created...)

	return result, nil
}

// ListCustomersWithPagination retrieves customers with pagination
func (s *Service) ListCustomersWithPagination(ctx context.Context, params pagination.Params) (*PaginatedListResponse, error) {
	params.Validate()

	customers, totalCount, err := s.repo.ListCustomers(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	meta := params.CalculateMeta(totalCount)

	return &PaginatedListResponse{
		Success:    true,
		Customers:  customers,
		Pagination: meta,
	}, nil
}

func (s *Service) GetCustomer(ctx context.Context, id string) (*CustomerResponse, error) {
	cust, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return cust, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*CustomerResponse, error) {
	if req.Email != nil && !emailPattern.MatchString(*req.Email) {
		return nil, fmt.Errorf("invalid email format")
	}
	if req.Phone != nil && *req.Phone != "" && !phonePattern.MatchString(*req.Phone) {
		return nil, fmt.Errorf("invalid phone format")
	}

	cust, err := s.repo.UpdateCustomer(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	if s.publisher != nil {
		event := messaging.CustomerUpdatedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventCustomerUpdated),
			Data: messaging.CustomerUpdatedData{
				CustomerID: cust.ID,
				Name:       cust.Name,
				Email:      cust.Email,
				Phone:      cust.Phone,
				UpdatedAt:  time.Now().UTC(),
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventCustomerUpdated, event); err != nil {
			log.Printf("Warning: failed to publish customer.updated event: %v", err)
		}
	}

	return cust, nil
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.repo.DeleteCustomer(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	if s.publisher != nil {
		event := messaging.CustomerDeletedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventCustomerDeleted),
			Data: messaging.CustomerDeletedData{
				CustomerID: id,
				DeletedAt:  time.Now().UTC(),
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventCustomerDeleted, event); err != nil {
			log.Printf("Warning: failed to publish customer.deleted event: %v", err)
		}
	}

	return nil
}

func validateCustomer(req CreateCustomerRequest) error {
	if req.Name == "" {
		return fmt.Errorf("customer name is required")
	}
	if req.Email == "" {
		return fmt.Errorf("customer email is required")
	}
	if !emailPattern.MatchString(req.Email) {
		return fmt.Errorf("invalid email format")
	}
	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		return fmt.Errorf("invalid phone format")
	}
	return nil
}
