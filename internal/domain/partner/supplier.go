package partner

import (
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

// Supplier represents a goods supplier.
// It is the aggregate root for supplier-related operations.
type Supplier struct {
	shared.BaseAggregateRoot
	Name          string         `gorm:"type:varchar(200);not null"`
	ContactPerson string         `gorm:"type:varchar(100)"`
	Email         string         `gorm:"type:varchar(200);index"`
	Phone         string         `gorm:"type:varchar(50);index"`
	Address       string         `gorm:"type:text"`
	City          string         `gorm:"type:varchar(100)"`
	Status        SupplierStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes         string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, contactPerson string) (*Supplier, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	supplier := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ContactPerson:     contactPerson,
		Status:            SupplierStatusActive,
	}

	supplier.AddDomainEvent(NewSupplierCreatedEvent(supplier))

	return supplier, nil
}

// Update updates the supplier's basic information
func (s *Supplier) Update(name, contactPerson string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}

	s.Name = name
	s.ContactPerson = contactPerson
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierUpdatedEvent(s))

	return nil
}

// SetContact sets the supplier's contact fields
func (s *Supplier) SetContact(email, phone string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	s.Email = email
	s.Phone = phone
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetAddress sets the supplier's address fields
func (s *Supplier) SetAddress(address, city string) {
	s.Address = address
	s.City = city
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// SetNotes sets free-form notes
func (s *Supplier) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate marks the supplier as active
func (s *Supplier) Activate() error {
	if s.Status == SupplierStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Supplier is already active")
	}

	s.Status = SupplierStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierStatusChangedEvent(s, SupplierStatusInactive))

	return nil
}

// Deactivate marks the supplier as inactive
func (s *Supplier) Deactivate() error {
	if s.Status == SupplierStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Supplier is already inactive")
	}

	s.Status = SupplierStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierStatusChangedEvent(s, SupplierStatusActive))

	return nil
}

// IsActive returns true if the supplier is active
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}
