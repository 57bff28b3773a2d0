package customer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alinea-commerce/crm-service/internal/pagination"
	"github.com/gorilla/mux"
)

// TestHandler_CreateCustomer_Success tests a successful create returns 201
func TestHandler_CreateCustomer_Success(t *testing.T) {
	mockSvc := &mockService{
		createCustomerFunc: func(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
			return &CustomerResponse{ID: "cust-123", Name: req.Name, Email: req.Email}, nil
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(CreateCustomerRequest{Name: "Alice", Email: "alice@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.CreateCustomer(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp SuccessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("Expected success true")
	}
	if resp.Customer == nil || resp.Customer.ID != "cust-123" {
		t.Errorf("Expected customer cust-123 in response, got %+v", resp.Customer)
	}
}

// TestHandler_CreateCustomer_InvalidJSON tests malformed payload returns 400
func TestHandler_CreateCustomer_InvalidJSON(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	handler.CreateCustomer(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

// TestHandler_CreateCustomer_MissingName tests empty name returns 400
func TestHandler_CreateCustomer_MissingName(t *testing.T) {
	handler := NewHandler(&mockService{})

	body, _ := json.Marshal(CreateCustomerRequest{Email: "alice@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.CreateCustomer(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Error != "validation_error" {
		t.Errorf("Expected error 'validation_error', got '%s'", resp.Error)
	}
}

// TestHandler_CreateCustomer_DuplicateEmail tests service validation errors map to 400
func TestHandler_CreateCustomer_DuplicateEmail(t *testing.T) {
	mockSvc := &mockService{
		createCustomerFunc: func(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
			return nil, errors.New("email already exists")
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(CreateCustomerRequest{Name: "Alice", Email: "alice@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.CreateCustomer(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

// TestHandler_BulkCreateCustomers tests partial-success payload shape
func TestHandler_BulkCreateCustomers(t *testing.T) {
	mockSvc := &mockService{
		bulkCreateFunc: func(ctx context.Context, req BulkCreateCustomersRequest) (*BulkCreateResult, error) {
			return &BulkCreateResult{
				Customers: []CustomerResponse{{ID: "cust-1", Name: "Alice"}},
				Errors:    []string{"Customer 1: invalid email format"},
			}, nil
		},
	}
	handler := NewHandler(mockSvc)

	body, _ := json.Marshal(BulkCreateCustomersRequest{
		Customers: []CreateCustomerRequest{
			{Name: "Alice", Email: "alice@example.com"},
			{Name: "Bob", Email: "bad"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/customers/bulk", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.BulkCreateCustomers(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp BulkCreateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Customers) != 1 {
		t.Errorf("Expected 1 created customer, got %d", len(resp.Customers))
	}
	if len(resp.Errors) != 1 {
		t.Errorf("Expected 1 error, got %d", len(resp.Errors))
	}
}

// TestHandler_BulkCreateCustomers_EmptyBatch tests an empty batch returns 400
func TestHandler_BulkCreateCustomers_EmptyBatch(t *testing.T) {
	handler := NewHandler(&mockService{})

	body, _ := json.Marshal(BulkCreateCustomersRequest{})
	req := httptest.NewRequest(http.MethodPost, "/customers/bulk", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.BulkCreateCustomers(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

// TestHandler_ListCustomers tests the paginated listing endpoint
func TestHandler_ListCustomers(t *testing.T) {
	mockSvc := &mockService{
		listFunc: func(ctx context.Context, params pagination.Params) (*PaginatedListResponse, error) {
			if params.Page != 2 || params.Limit != 5 {
				t.Errorf("Expected page=2 limit=5, got page=%d limit=%d", params.Page, params.Limit)
			}
			return &PaginatedListResponse{
				Success:   true,
				Customers: []CustomerResponse{{ID: "cust-1"}},
				Pagination: pagination.Meta{
					CurrentPage:  2,
					PerPage:      5,
					TotalPages:   3,
					TotalRecords: 11,
					HasNext:      true,
					HasPrevious:  true,
				},
			}, nil
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/customers?page=2&limit=5", nil)
	rec := httptest.NewRecorder()

	handler.ListCustomers(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var resp PaginatedListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Pagination.TotalRecords != 11 {
		t.Errorf("Expected 11 total records, got %d", resp.Pagination.TotalRecords)
	}
}

// TestHandler_GetCustomer_NotFound tests unknown id returns 404
func TestHandler_GetCustomer_NotFound(t *testing.T) {
	mockSvc := &mockService{
		getCustomerFunc: func(ctx context.Context, id string) (*CustomerResponse, error) {
			return nil, errors.New("customer not found")
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/customers/cust-missing", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "cust-missing"})
	rec := httptest.NewRecorder()

	handler.GetCustomer(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

// TestHandler_DeleteCustomer_Success tests deletion returns 200
func TestHandler_DeleteCustomer_Success(t *testing.T) {
	mockSvc := &mockService{
		deleteCustomerFunc: func(ctx context.Context, id string) error {
			if id != "cust-123" {
				t.Errorf("Expected id 'cust-123', got '%s'", id)
			}
			return nil
		},
	}
	handler := NewHandler(mockSvc)

	req := httptest.NewRequest(http.MethodDelete, "/customers/cust-123", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "cust-123"})
	rec := httptest.NewRecorder()

	handler.DeleteCustomer(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

// mockService is a mock implementation of ServiceInterface
type mockService struct {
	createCustomerFunc func(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error)
	bulkCreateFunc     func(ctx context.Context, req BulkCreateCustomersRequest) (*BulkCreateResult, error)
	listFunc           func(ctx context.Context, params pagination.Params) (*PaginatedListResponse, error)
	getCustomerFunc    func(ctx context.Context, id string) (*CustomerResponse, error)
	updateCustomerFunc func(ctx context.Context, id string, req UpdateCustomerRequest) (*CustomerResponse, error)
	deleteCustomerFunc func(ctx context.Context, id string) error
}

func (m *mockService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	if m.createCustomerFunc != nil {
		return m.createCustomerFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) BulkCreateCustomers(ctx context.Context, req BulkCreateCustomersRequest) (*BulkCreateResult, error) {
	if m.bulkCreateFunc != nil {
		return m.bulkCreateFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) ListCustomersWithPagination(ctx context.Context, params pagination.Params) (*PaginatedListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, params)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) GetCustomer(ctx context.Context, id string) (*CustomerResponse, error) {
	if m.getCustomerFunc != nil {
		return m.getCustomerFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*CustomerResponse, error) {
	if m.updateCustomerFunc != nil {
		return m.updateCustomerFunc(ctx, id, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) DeleteCustomer(ctx context.Context, id string) error {
	if m.deleteCustomerFunc != nil {
		return m.deleteCustomerFunc(ctx, id)
	}
	return errors.New("not implemented")
}
