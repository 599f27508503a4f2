package partner

import (
	"github.com/google/uuid"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// Vendor represents a supplier the company buys from or borrows from.
type Vendor struct {
	shared.TenantAggregateRoot
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// NewVendor creates a new vendor
func NewVendor(tenantID uuid.UUID, name, phone string) (*Vendor, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	return &Vendor{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Phone:               phone,
	}, nil
}
