package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/finance"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/partner"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/project"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// In-memory repositories backing the service tests. Only the methods
// the services reach are implemented; the embedded interface panics on
// anything else.

type memAccounts struct {
	finance.AccountRepository
	byID map[uuid.UUID]*finance.Account
}

func newMemAccounts(accounts ...*finance.Account) *memAccounts {
	m := &memAccounts{byID: make(map[uuid.UUID]*finance.Account)}
	for _, a := range accounts {
		m.byID[a.ID] = a
	}
	return m
}

func (m *memAccounts) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*finance.Account, error) {
	a, ok := m.byID[id]
	if !ok || a.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return a, nil
}

func (m *memAccounts) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*finance.Account, error) {
	return m.FindByIDForTenant(ctx, tenantID, id)
}

func (m *memAccounts) Create(_ context.Context, a *finance.Account) error {
	m.byID[a.ID] = a
	return nil
}

func (m *memAccounts) Save(_ context.Context, a *finance.Account) error {
	m.byID[a.ID] = a
	return nil
}

func (m *memAccounts) ExistsForTenant(_ context.Context, tenantID, id uuid.UUID) (bool, error) {
	a, ok := m.byID[id]
	return ok && a.TenantID == tenantID, nil
}

type memTransactions struct {
	finance.TransactionRepository
	byID map[uuid.UUID]*finance.Transaction
}

func newMemTransactions() *memTransactions {
	return &memTransactions{byID: make(map[uuid.UUID]*finance.Transaction)}
}

func (m *memTransactions) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*finance.Transaction, error) {
	t, ok := m.byID[id]
	if !ok || t.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return t, nil
}

func (m *memTransactions) Create(_ context.Context, t *finance.Transaction) error {
	m.byID[t.ID] = t
	return nil
}

func (m *memTransactions) Save(_ context.Context, t *finance.Transaction) error {
	m.byID[t.ID] = t
	return nil
}

func (m *memTransactions) FindActiveByExpense(_ context.Context, tenantID, expenseID uuid.UUID) ([]finance.Transaction, error) {
	var out []finance.Transaction
	for _, t := range m.byID {
		if t.TenantID == tenantID && t.IsActive() && t.ExpenseID != nil && *t.ExpenseID == expenseID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memTransactions) SumPaidForExpense(_ context.Context, tenantID, expenseID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range m.byID {
		if t.TenantID == tenantID && t.IsActive() && t.ExpenseID != nil && *t.ExpenseID == expenseID {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (m *memTransactions) SumSignedForAccount(_ context.Context, tenantID, accountID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range m.byID {
		if t.TenantID != tenantID || !t.IsActive() || t.Date.After(asOf) {
			continue
		}
		switch {
		case t.AccountID != nil && *t.AccountID == accountID:
			total = total.Add(t.SignedAmount())
		case t.FromAccountID != nil && *t.FromAccountID == accountID:
			total = total.Sub(t.Amount)
		case t.ToAccountID != nil && *t.ToAccountID == accountID:
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (m *memTransactions) HasActiveForAccount(_ context.Context, tenantID, accountID uuid.UUID) (bool, error) {
	for _, t := range m.byID {
		if t.TenantID != tenantID || !t.IsActive() {
			continue
		}
		if (t.AccountID != nil && *t.AccountID == accountID) ||
			(t.FromAccountID != nil && *t.FromAccountID == accountID) ||
			(t.ToAccountID != nil && *t.ToAccountID == accountID) {
			return true, nil
		}
	}
	return false, nil
}

type memExpenses struct {
	finance.ExpenseRepository
	byID map[uuid.UUID]*finance.Expense
}

func newMemExpenses() *memExpenses {
	return &memExpenses{byID: make(map[uuid.UUID]*finance.Expense)}
}

func (m *memExpenses) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*finance.Expense, error) {
	e, ok := m.byID[id]
	if !ok || e.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return e, nil
}

func (m *memExpenses) Create(_ context.Context, e *finance.Expense) error {
	m.byID[e.ID] = e
	return nil
}

func (m *memExpenses) Save(_ context.Context, e *finance.Expense) error {
	m.byID[e.ID] = e
	return nil
}

func (m *memExpenses) ExistsForTenant(_ context.Context, tenantID, id uuid.UUID) (bool, error) {
	e, ok := m.byID[id]
	return ok && e.TenantID == tenantID, nil
}

type memPayments struct {
	finance.PaymentRepository
	byID map[uuid.UUID]*finance.Payment
}

func newMemPayments() *memPayments {
	return &memPayments{byID: make(map[uuid.UUID]*finance.Payment)}
}

func (m *memPayments) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*finance.Payment, error) {
	p, ok := m.byID[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (m *memPayments) Create(_ context.Context, p *finance.Payment) error {
	m.byID[p.ID] = p
	return nil
}

func (m *memPayments) Save(_ context.Context, p *finance.Payment) error {
	m.byID[p.ID] = p
	return nil
}

type memProjects struct {
	project.Repository
	ids map[uuid.UUID]bool
}

func (m *memProjects) ExistsForTenant(_ context.Context, _, id uuid.UUID) (bool, error) {
	return m.ids[id], nil
}

type memCustomers struct {
	partner.CustomerRepository
	ids map[uuid.UUID]bool
}

func (m *memCustomers) ExistsForTenant(_ context.Context, _, id uuid.UUID) (bool, error) {
	return m.ids[id], nil
}

type memVendors struct {
	partner.VendorRepository
	ids map[uuid.UUID]bool
}

func (m *memVendors) ExistsForTenant(_ context.Context, _, id uuid.UUID) (bool, error) {
	return m.ids[id], nil
}

type memEmployees struct {
	partner.EmployeeRepository
	ids map[uuid.UUID]bool
}

func (m *memEmployees) ExistsForTenant(_ context.Context, _, id uuid.UUID) (bool, error) {
	return m.ids[id], nil
}

func idSet(ids ...uuid.UUID) map[uuid.UUID]bool {
	s := make(map[uuid.UUID]bool)
	for _, id := range ids {
		s[id] = true
	}
	return s
}
