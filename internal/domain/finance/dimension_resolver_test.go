package finance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/partner"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/project"
)

type existsSet struct {
	ids map[uuid.UUID]bool
}

func (s existsSet) exists(_ context.Context, _, id uuid.UUID) (bool, error) {
	return s.ids[id], nil
}

type fakeExistsAccountRepo struct {
	AccountRepository
	existsSet
}

func (r fakeExistsAccountRepo) ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	return r.exists(ctx, tenantID, id)
}

type fakeExistsExpenseRepo struct {
	ExpenseRepository
	existsSet
}

func (r fakeExistsExpenseRepo) ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	return r.exists(ctx, tenantID, id)
}

type fakeExistsProjectRepo struct {
	project.Repository
	existsSet
}

func (r fakeExistsProjectRepo) ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	return r.exists(ctx, tenantID, id)
}

type fakeExistsCustomerRepo struct {
	partner.CustomerRepository
	existsSet
}

func (r fakeExistsCustomerRepo) ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	return r.exists(ctx, tenantID, id)
}

type fakeExistsVendorRepo struct {
	partner.VendorRepository
	existsSet
}

func (r fakeExistsVendorRepo) ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	return r.exists(ctx, tenantID, id)
}

type fakeExistsEmployeeRepo struct {
	partner.EmployeeRepository
	existsSet
}

func (r fakeExistsEmployeeRepo) ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	return r.exists(ctx, tenantID, id)
}

func setOf(ids ...uuid.UUID) existsSet {
	s := existsSet{ids: make(map[uuid.UUID]bool)}
	for _, id := range ids {
		s.ids[id] = true
	}
	return s
}

func TestDimensionResolver(t *testing.T) {
	tenantID := uuid.New()
	accountID := uuid.New()
	projectID := uuid.New()
	customerID := uuid.New()

	resolver := NewDimensionResolver(
		fakeExistsAccountRepo{existsSet: setOf(accountID)},
		fakeExistsExpenseRepo{existsSet: setOf()},
		fakeExistsProjectRepo{existsSet: setOf(projectID)},
		fakeExistsCustomerRepo{existsSet: setOf(customerID)},
		fakeExistsVendorRepo{existsSet: setOf()},
		fakeExistsEmployeeRepo{existsSet: setOf()},
	)

	t.Run("all present references resolve", func(t *testing.T) {
		err := resolver.Resolve(context.Background(), tenantID, DimensionRefs{
			AccountIDs: []uuid.UUID{accountID},
			ProjectID:  &projectID,
			CustomerID: &customerID,
		})
		assert.NoError(t, err)
	})

	t.Run("absent references are allowed", func(t *testing.T) {
		err := resolver.Resolve(context.Background(), tenantID, DimensionRefs{
			AccountIDs: []uuid.UUID{accountID},
		})
		assert.NoError(t, err)
	})

	t.Run("unknown account is rejected with the failing reference", func(t *testing.T) {
		missing := uuid.New()
		err := resolver.Resolve(context.Background(), tenantID, DimensionRefs{
			AccountIDs: []uuid.UUID{missing},
		})
		require.Error(t, err)
		refErr, ok := err.(*UnknownReferenceError)
		require.True(t, ok)
		assert.Equal(t, RefAccount, refErr.Kind)
		assert.Equal(t, missing, refErr.ID)
	})

	t.Run("unknown vendor is rejected", func(t *testing.T) {
		missing := uuid.New()
		err := resolver.Resolve(context.Background(), tenantID, DimensionRefs{
			AccountIDs: []uuid.UUID{accountID},
			VendorID:   &missing,
		})
		require.Error(t, err)
		refErr, ok := err.(*UnknownReferenceError)
		require.True(t, ok)
		assert.Equal(t, RefVendor, refErr.Kind)
	})

	t.Run("unknown expense link is rejected", func(t *testing.T) {
		missing := uuid.New()
		err := resolver.Resolve(context.Background(), tenantID, DimensionRefs{
			AccountIDs: []uuid.UUID{accountID},
			ExpenseID:  &missing,
		})
		require.Error(t, err)
		refErr, ok := err.(*UnknownReferenceError)
		require.True(t, ok)
		assert.Equal(t, RefExpense, refErr.Kind)
	})
}
