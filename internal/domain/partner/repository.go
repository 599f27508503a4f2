package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByIDForTenant finds a customer by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)

	// FindAllForTenant finds all customers for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// ExistsForTenant reports whether a customer exists for the tenant
	ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	// FindByIDForTenant finds a vendor by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Vendor, error)

	// FindAllForTenant finds all vendors for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Vendor, error)

	// Save creates or updates a vendor
	Save(ctx context.Context, vendor *Vendor) error

	// ExistsForTenant reports whether a vendor exists for the tenant
	ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}

// EmployeeRepository defines the interface for employee persistence
type EmployeeRepository interface {
	// FindByIDForTenant finds an employee by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Employee, error)

	// FindAllForTenant finds all employees for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Employee, error)

	// Save creates or updates an employee
	Save(ctx context.Context, employee *Employee) error

	// ExistsForTenant reports whether an employee exists for the tenant
	ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}
