package messaging

import (
	"fmt"
	"time"
)

// Event routing keys as constants
const (
	// Customer events
	EventCustomerCreated = "customer.created"
	EventCustomerUpdated = "customer.updated"
	EventCustomerDeleted = "customer.deleted"
	EventCustomersPurged = "customers.purged"

	// Order events
	EventOrderCreated = "order.created"

	// Product events
	EventProductCreated   = "product.created"
	EventProductRestocked = "product.restocked"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// CustomerCreatedEvent represents a customer creation event
type CustomerCreatedEvent struct {
	BaseEvent
	Data CustomerCreatedData `json:"data"`
}

type CustomerCreatedData struct {
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CustomerUpdatedEvent represents a customer update event
type CustomerUpdatedEvent struct {
	BaseEvent
	Data CustomerUpdatedData `json:"data"`
}

type CustomerUpdatedData struct {
	CustomerID string    `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CustomerDeletedEvent represents a single customer deletion event
type CustomerDeletedEvent struct {
	BaseEvent
	Data CustomerDeletedData `json:"data"`
}

type CustomerDeletedData struct {
	CustomerID string    `json:"customer_id"`
	DeletedAt  time.Time `json:"deleted_at"`
}

// CustomersPurgedEvent represents a bulk purge of inactive customers
type CustomersPurgedEvent struct {
	BaseEvent
	Data CustomersPurgedData `json:"data"`
}

type CustomersPurgedData struct {
	DeletedCount int       `json:"deleted_count"`
	CutoffDate   time.Time `json:"cutoff_date"`
	PurgedAt     time.Time `json:"purged_at"`
}

// OrderCreatedEvent represents an order creation event
type OrderCreatedEvent struct {
	BaseEvent
	Data OrderCreatedData `json:"data"`
}

type OrderCreatedData struct {
	OrderID       string    `json:"order_id"`
	CustomerID    string    `json:"customer_id"`
	CustomerEmail string    `json:"customer_email"`
	ProductIDs    []string  `json:"product_ids"`
	TotalAmount   string    `json:"total_amount"`
	OrderDate     time.Time `json:"order_date"`
}

// ProductCreatedEvent represents a product creation event
type ProductCreatedEvent struct {
	BaseEvent
	Data ProductCreatedData `json:"data"`
}

type ProductCreatedData struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductRestockedEvent represents a low-stock restock run
type ProductRestockedEvent struct {
	BaseEvent
	Data ProductRestockedData `json:"data"`
}

type ProductRestockedData struct {
	RestockedCount int       `json:"restocked_count"`
	Threshold      int       `json:"threshold"`
	Increment      int       `json:"increment"`
	RestockedAt    time.Time `json:"restocked_at"`
}

// NewBaseEvent creates the common envelope for an event
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp:   time.Now().UTC(), // Explicitly set to UTC
		ServiceName: "crm-service",
	}
}
