package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
)

// SupplierService handles supplier business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, req.ContactPerson)
	if err != nil {
		return nil, err
	}

	if req.Email != "" || req.Phone != "" {
		if err := supplier.SetContact(req.Email, req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Address != "" || req.City != "" {
		supplier.SetAddress(req.Address, req.City)
	}
	if req.Notes != "" {
		supplier.SetNotes(req.Notes)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, filter PartnerListFilter) ([]SupplierResponse, int64, error) {
	domainFilter := buildFilter(filter)

	var (
		suppliers []partner.Supplier
		err       error
	)
	switch {
	case filter.Search != "":
		suppliers, err = s.supplierRepo.Search(ctx, filter.Search, domainFilter)
	case filter.Status != "":
		suppliers, err = s.supplierRepo.FindByStatus(ctx, partner.SupplierStatus(filter.Status), domainFilter)
	default:
		suppliers, err = s.supplierRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSupplierResponses(suppliers), total, nil
}

// Update updates a supplier's details
func (s *SupplierService) Update(ctx context.Context, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.ContactPerson != nil {
		name, contactPerson := supplier.Name, supplier.ContactPerson
		if req.Name != nil {
			name = *req.Name
		}
		if req.ContactPerson != nil {
			contactPerson = *req.ContactPerson
		}
		if err := supplier.Update(name, contactPerson); err != nil {
			return nil, err
		}
	}

	if req.Email != nil || req.Phone != nil {
		email, phone := supplier.Email, supplier.Phone
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := supplier.SetContact(email, phone); err != nil {
			return nil, err
		}
	}

	if req.Address != nil || req.City != nil {
		address, city := supplier.Address, supplier.City
		if req.Address != nil {
			address = *req.Address
		}
		if req.City != nil {
			city = *req.City
		}
		supplier.SetAddress(address, city)
	}

	if req.Notes != nil {
		supplier.SetNotes(*req.Notes)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Activate re-enables a supplier
func (s *SupplierService) Activate(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	return s.changeStatus(ctx, supplierID, (*partner.Supplier).Activate)
}

// Deactivate disables a supplier without removing it
func (s *SupplierService) Deactivate(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	return s.changeStatus(ctx, supplierID, (*partner.Supplier).Deactivate)
}

// Delete removes a supplier
func (s *SupplierService) Delete(ctx context.Context, supplierID uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		return err
	}
	return s.supplierRepo.Delete(ctx, supplierID)
}

func (s *SupplierService) changeStatus(ctx context.Context, supplierID uuid.UUID, transition func(*partner.Supplier) error) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if err := transition(supplier); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}
