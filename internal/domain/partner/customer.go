package partner

import (
	"github.com/google/uuid"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// Customer represents a customer the company sells to or lends to.
// Customers are maintained by the surrounding CRUD layer; the ledger
// engine only resolves them as dimensions and derives their outstanding
// debt position from the transaction stream.
type Customer struct {
	shared.TenantAggregateRoot
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// NewCustomer creates a new customer
func NewCustomer(tenantID uuid.UUID, name, phone string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Phone:               phone,
	}, nil
}
