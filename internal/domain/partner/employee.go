package partner

import (
	"github.com/google/uuid"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// Employee represents a staff member referenced by payroll expenses
// and advances in the ledger.
type Employee struct {
	shared.TenantAggregateRoot
	Name     string `json:"name"`
	Position string `json:"position"`
}

// NewEmployee creates a new employee
func NewEmployee(tenantID uuid.UUID, name, position string) (*Employee, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Employee name cannot be empty")
	}
	return &Employee{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Position:            position,
	}, nil
}
