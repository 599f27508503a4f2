package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/partner"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/project"
)

// DimensionRefs collects every dimension reference an event carries.
// A nil pointer or empty slice means the dimension is absent, which is
// always allowed; a present reference must resolve.
type DimensionRefs struct {
	AccountIDs []uuid.UUID
	ProjectID  *uuid.UUID
	CustomerID *uuid.UUID
	VendorID   *uuid.UUID
	EmployeeID *uuid.UUID
	ExpenseID  *uuid.UUID
}

// DimensionResolver verifies, before any write, that every reference an
// event carries points at a live row of the same tenant. It fails on
// the first unresolved reference with a typed error naming it; soft
// state such as an on-hold project never blocks resolution.
type DimensionResolver struct {
	accounts  AccountRepository
	expenses  ExpenseRepository
	projects  project.Repository
	customers partner.CustomerRepository
	vendors   partner.VendorRepository
	employees partner.EmployeeRepository
}

// NewDimensionResolver creates a new DimensionResolver
func NewDimensionResolver(
	accounts AccountRepository,
	expenses ExpenseRepository,
	projects project.Repository,
	customers partner.CustomerRepository,
	vendors partner.VendorRepository,
	employees partner.EmployeeRepository,
) *DimensionResolver {
	return &DimensionResolver{
		accounts:  accounts,
		expenses:  expenses,
		projects:  projects,
		customers: customers,
		vendors:   vendors,
		employees: employees,
	}
}

// Resolve checks every present reference and returns an
// UnknownReferenceError for the first one that does not exist
func (r *DimensionResolver) Resolve(ctx context.Context, tenantID uuid.UUID, refs DimensionRefs) error {
	for _, id := range refs.AccountIDs {
		if err := r.check(ctx, RefAccount, id, r.accounts.ExistsForTenant, tenantID); err != nil {
			return err
		}
	}
	if refs.ProjectID != nil {
		if err := r.check(ctx, RefProject, *refs.ProjectID, r.projects.ExistsForTenant, tenantID); err != nil {
			return err
		}
	}
	if refs.CustomerID != nil {
		if err := r.check(ctx, RefCustomer, *refs.CustomerID, r.customers.ExistsForTenant, tenantID); err != nil {
			return err
		}
	}
	if refs.VendorID != nil {
		if err := r.check(ctx, RefVendor, *refs.VendorID, r.vendors.ExistsForTenant, tenantID); err != nil {
			return err
		}
	}
	if refs.EmployeeID != nil {
		if err := r.check(ctx, RefEmployee, *refs.EmployeeID, r.employees.ExistsForTenant, tenantID); err != nil {
			return err
		}
	}
	if refs.ExpenseID != nil {
		if err := r.check(ctx, RefExpense, *refs.ExpenseID, r.expenses.ExistsForTenant, tenantID); err != nil {
			return err
		}
	}
	return nil
}

type existsFn func(ctx context.Context, tenantID, id uuid.UUID) (bool, error)

func (r *DimensionResolver) check(ctx context.Context, kind string, id uuid.UUID, exists existsFn, tenantID uuid.UUID) error {
	ok, err := exists(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !ok {
		return NewUnknownReferenceError(kind, id)
	}
	return nil
}
