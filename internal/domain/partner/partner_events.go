package partner

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeCustomer = "Customer"
	AggregateTypeSupplier = "Supplier"
)

// Event type constants
const (
	EventTypeCustomerCreated       = "CustomerCreated"
	EventTypeCustomerUpdated       = "CustomerUpdated"
	EventTypeSupplierCreated       = "SupplierCreated"
	EventTypeSupplierUpdated       = "SupplierUpdated"
	EventTypeSupplierStatusChanged = "SupplierStatusChanged"
)

// CustomerCreatedEvent is published when a new customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(customer *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
		Email:           customer.Email,
	}
}

// CustomerUpdatedEvent is published when a customer is updated
type CustomerUpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
}

// NewCustomerUpdatedEvent creates a new CustomerUpdatedEvent
func NewCustomerUpdatedEvent(customer *Customer) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerUpdated, AggregateTypeCustomer, customer.ID),
		CustomerID:      customer.ID,
		Name:            customer.Name,
	}
}

// SupplierCreatedEvent is published when a new supplier is created
type SupplierCreatedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID `json:"supplier_id"`
	Name       string    `json:"name"`
}

// NewSupplierCreatedEvent creates a new SupplierCreatedEvent
func NewSupplierCreatedEvent(supplier *Supplier) *SupplierCreatedEvent {
	return &SupplierCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierCreated, AggregateTypeSupplier, supplier.ID),
		SupplierID:      supplier.ID,
		Name:            supplier.Name,
	}
}

// SupplierUpdatedEvent is published when a supplier is updated
type SupplierUpdatedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID `json:"supplier_id"`
	Name       string    `json:"name"`
}

// NewSupplierUpdatedEvent creates a new SupplierUpdatedEvent
func NewSupplierUpdatedEvent(supplier *Supplier) *SupplierUpdatedEvent {
	return &SupplierUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierUpdated, AggregateTypeSupplier, supplier.ID),
		SupplierID:      supplier.ID,
		Name:            supplier.Name,
	}
}

// SupplierStatusChangedEvent is published when a supplier's status changes
type SupplierStatusChangedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID      `json:"supplier_id"`
	OldStatus  SupplierStatus `json:"old_status"`
	NewStatus  SupplierStatus `json:"new_status"`
}

// NewSupplierStatusChangedEvent creates a new SupplierStatusChangedEvent
func NewSupplierStatusChangedEvent(supplier *Supplier, oldStatus SupplierStatus) *SupplierStatusChangedEvent {
	return &SupplierStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierStatusChanged, AggregateTypeSupplier, supplier.ID),
		SupplierID:      supplier.ID,
		OldStatus:       oldStatus,
		NewStatus:       supplier.Status,
	}
}
