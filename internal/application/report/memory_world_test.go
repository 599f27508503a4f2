package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/finance"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/inventory"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/partner"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/project"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// world is an in-memory event store backing the statement tests. It
// implements the read-side repository queries over plain slices.
type world struct {
	accounts     []*finance.Account
	transactions []*finance.Transaction
	expenses     []*finance.Expense
	payments     []*finance.Payment
	assets       []*finance.FixedAsset
	projects     []*project.Project
	items        []*inventory.Item
	customers    map[uuid.UUID]*partner.Customer
	vendors      map[uuid.UUID]*partner.Vendor
}

func newWorld() *world {
	return &world{
		customers: make(map[uuid.UUID]*partner.Customer),
		vendors:   make(map[uuid.UUID]*partner.Vendor),
	}
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// ---- finance.AccountRepository ----

type worldAccounts struct {
	finance.AccountRepository
	w *world
}

func (r worldAccounts) FindAllForTenant(_ context.Context, tenantID uuid.UUID) ([]finance.Account, error) {
	var out []finance.Account
	for _, a := range r.w.accounts {
		if a.TenantID == tenantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r worldAccounts) FindByKindsForTenant(_ context.Context, tenantID uuid.UUID, kinds []finance.AccountKind) ([]finance.Account, error) {
	var out []finance.Account
	for _, a := range r.w.accounts {
		if a.TenantID != tenantID {
			continue
		}
		for _, k := range kinds {
			if a.Kind == k {
				out = append(out, *a)
				break
			}
		}
	}
	return out, nil
}

// ---- finance.TransactionRepository ----

type worldTransactions struct {
	finance.TransactionRepository
	w *world
}

func (r worldTransactions) active(tenantID uuid.UUID) []*finance.Transaction {
	var out []*finance.Transaction
	for _, t := range r.w.transactions {
		if t.TenantID == tenantID && t.IsActive() {
			out = append(out, t)
		}
	}
	return out
}

func (r worldTransactions) SumSignedForAccount(_ context.Context, tenantID, accountID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range r.active(tenantID) {
		if t.Date.After(asOf) {
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

func (r worldTransactions) FindActiveInRange(_ context.Context, tenantID uuid.UUID, from, to time.Time) ([]finance.Transaction, error) {
	var out []finance.Transaction
	for _, t := range r.active(tenantID) {
		if inRange(t.Date, from, to) {
			out = append(out, *t)
		}
	}
	sortTransactions(out)
	return out, nil
}

func (r worldTransactions) FindActiveByAccount(_ context.Context, tenantID, accountID uuid.UUID, from, to time.Time) ([]finance.Transaction, error) {
	var out []finance.Transaction
	for _, t := range r.active(tenantID) {
		if !inRange(t.Date, from, to) {
			continue
		}
		if (t.AccountID != nil && *t.AccountID == accountID) ||
			(t.FromAccountID != nil && *t.FromAccountID == accountID) ||
			(t.ToAccountID != nil && *t.ToAccountID == accountID) {
			out = append(out, *t)
		}
	}
	sortTransactions(out)
	return out, nil
}

func (r worldTransactions) FindActiveByProject(_ context.Context, tenantID, projectID uuid.UUID, from, to time.Time) ([]finance.Transaction, error) {
	var out []finance.Transaction
	for _, t := range r.active(tenantID) {
		if inRange(t.Date, from, to) && t.ProjectID != nil && *t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	sortTransactions(out)
	return out, nil
}

func (r worldTransactions) PaidByExpense(_ context.Context, tenantID uuid.UUID, asOf time.Time) ([]finance.ExpensePaid, error) {
	totals := make(map[uuid.UUID]decimal.Decimal)
	for _, t := range r.active(tenantID) {
		if t.ExpenseID != nil && !t.Date.After(asOf) {
			totals[*t.ExpenseID] = totals[*t.ExpenseID].Add(t.Amount)
		}
	}
	out := make([]finance.ExpensePaid, 0, len(totals))
	for id, paid := range totals {
		out = append(out, finance.ExpensePaid{ExpenseID: id, Paid: paid})
	}
	return out, nil
}

func (r worldTransactions) DebtByCustomer(_ context.Context, tenantID uuid.UUID, asOf time.Time) ([]finance.PartyDebt, error) {
	return r.debtByParty(tenantID, asOf, func(t *finance.Transaction) *uuid.UUID { return t.CustomerID }, true)
}

func (r worldTransactions) DebtByVendor(_ context.Context, tenantID uuid.UUID, asOf time.Time) ([]finance.PartyDebt, error) {
	return r.debtByParty(tenantID, asOf, func(t *finance.Transaction) *uuid.UUID { return t.VendorID }, false)
}

func (r worldTransactions) debtByParty(tenantID uuid.UUID, asOf time.Time, party func(*finance.Transaction) *uuid.UUID, countIncome bool) ([]finance.PartyDebt, error) {
	debts := make(map[uuid.UUID]*finance.PartyDebt)
	get := func(id uuid.UUID) *finance.PartyDebt {
		if d, ok := debts[id]; ok {
			return d
		}
		d := &finance.PartyDebt{PartyID: id}
		debts[id] = d
		return d
	}
	for _, t := range r.active(tenantID) {
		id := party(t)
		if id == nil || t.Date.After(asOf) {
			continue
		}
		switch t.Kind {
		case finance.TransactionKindDebtTaken:
			get(*id).Taken = get(*id).Taken.Add(t.Amount)
		case finance.TransactionKindDebtRepaid:
			get(*id).Repaid = get(*id).Repaid.Add(t.Amount)
		case finance.TransactionKindIncome:
			if countIncome && t.ProjectID == nil {
				get(*id).Income = get(*id).Income.Add(t.Amount)
			}
		}
	}
	out := make([]finance.PartyDebt, 0, len(debts))
	for _, d := range debts {
		out = append(out, *d)
	}
	return out, nil
}

func sortTransactions(ts []finance.Transaction) {
	sort.Slice(ts, func(i, j int) bool {
		if !ts[i].Date.Equal(ts[j].Date) {
			return ts[i].Date.Before(ts[j].Date)
		}
		return ts[i].ID.String() < ts[j].ID.String()
	})
}

// ---- finance.ExpenseRepository ----

type worldExpenses struct {
	finance.ExpenseRepository
	w *world
}

func (r worldExpenses) active(tenantID uuid.UUID) []*finance.Expense {
	var out []*finance.Expense
	for _, e := range r.w.expenses {
		if e.TenantID == tenantID && e.IsActive() {
			out = append(out, e)
		}
	}
	return out
}

func (r worldExpenses) FindActiveInRange(_ context.Context, tenantID uuid.UUID, from, to time.Time) ([]finance.Expense, error) {
	var out []finance.Expense
	for _, e := range r.active(tenantID) {
		if inRange(e.Date, from, to) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r worldExpenses) FindActiveByProject(_ context.Context, tenantID, projectID uuid.UUID, from, to time.Time) ([]finance.Expense, error) {
	var out []finance.Expense
	for _, e := range r.active(tenantID) {
		if inRange(e.Date, from, to) && e.ProjectID != nil && *e.ProjectID == projectID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r worldExpenses) FindActiveByCategory(_ context.Context, tenantID uuid.UUID, category string, from, to time.Time) ([]finance.Expense, error) {
	var out []finance.Expense
	for _, e := range r.active(tenantID) {
		if inRange(e.Date, from, to) && e.Category == category {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r worldExpenses) FindActiveAsOf(_ context.Context, tenantID uuid.UUID, asOf time.Time) ([]finance.Expense, error) {
	var out []finance.Expense
	for _, e := range r.active(tenantID) {
		if !e.Date.After(asOf) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r worldExpenses) SumByClassAsOf(_ context.Context, tenantID uuid.UUID, class finance.CategoryClass, asOf time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.active(tenantID) {
		if e.Class == class && !e.Date.After(asOf) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

// ---- finance.PaymentRepository ----

type worldPayments struct {
	finance.PaymentRepository
	w *world
}

func (r worldPayments) SumByProjectAsOf(_ context.Context, tenantID uuid.UUID, asOf time.Time) ([]finance.ProjectPaid, error) {
	totals := make(map[uuid.UUID]decimal.Decimal)
	for _, p := range r.w.payments {
		if p.TenantID == tenantID && p.IsActive() && !p.Date.After(asOf) {
			totals[p.ProjectID] = totals[p.ProjectID].Add(p.Amount)
		}
	}
	out := make([]finance.ProjectPaid, 0, len(totals))
	for id, total := range totals {
		out = append(out, finance.ProjectPaid{ProjectID: id, Total: total})
	}
	return out, nil
}

// ---- finance.FixedAssetRepository ----

type worldAssets struct {
	finance.FixedAssetRepository
	w *world
}

func (r worldAssets) FindAllForTenant(_ context.Context, tenantID uuid.UUID) ([]finance.FixedAsset, error) {
	var out []finance.FixedAsset
	for _, a := range r.w.assets {
		if a.TenantID == tenantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r worldAssets) SumBookValueAsOf(_ context.Context, tenantID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range r.w.assets {
		if a.TenantID == tenantID && !a.PurchaseDate.After(asOf) {
			total = total.Add(a.BookValue)
		}
	}
	return total, nil
}

// ---- project.Repository ----

type worldProjects struct {
	project.Repository
	w *world
}

func (r worldProjects) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]project.Project, error) {
	var out []project.Project
	for _, p := range r.w.projects {
		if p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r worldProjects) FindByStatusAsOf(_ context.Context, tenantID uuid.UUID, statuses []project.Status, asOf time.Time) ([]project.Project, error) {
	wanted := make(map[project.Status]bool)
	for _, s := range statuses {
		wanted[s] = true
	}
	var out []project.Project
	for _, p := range r.w.projects {
		if p.TenantID == tenantID && wanted[p.Status] && !p.AgreementDate.After(asOf) {
			out = append(out, *p)
		}
	}
	return out, nil
}

// ---- inventory.Repository ----

type worldItems struct {
	inventory.Repository
	w *world
}

func (r worldItems) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]inventory.Item, error) {
	var out []inventory.Item
	for _, it := range r.w.items {
		if it.TenantID == tenantID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r worldItems) SumValueForTenant(_ context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, it := range r.w.items {
		if it.TenantID == tenantID {
			total = total.Add(it.Value())
		}
	}
	return total, nil
}

// ---- partner repositories ----

type worldCustomers struct {
	partner.CustomerRepository
	w *world
}

func (r worldCustomers) FindByIDForTenant(_ context.Context, _, id uuid.UUID) (*partner.Customer, error) {
	if c, ok := r.w.customers[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

type worldVendors struct {
	partner.VendorRepository
	w *world
}

func (r worldVendors) FindByIDForTenant(_ context.Context, _, id uuid.UUID) (*partner.Vendor, error) {
	if v, ok := r.w.vendors[id]; ok {
		return v, nil
	}
	return nil, shared.ErrNotFound
}
