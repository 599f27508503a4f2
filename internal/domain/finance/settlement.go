package finance

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/partner"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/project"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/report"
)

// SettlementResolver computes outstanding receivables and payables
// from the event stream. Every line floors at zero per entity before
// summing: one customer's overpayment never hides another's debt, and
// the totals are sums of floored lines, not a single netted figure.
type SettlementResolver struct {
	transactions TransactionRepository
	expenses     ExpenseRepository
	payments     PaymentRepository
	projects     project.Repository
	customers    partner.CustomerRepository
	vendors      partner.VendorRepository
}

// NewSettlementResolver creates a new SettlementResolver
func NewSettlementResolver(
	transactions TransactionRepository,
	expenses ExpenseRepository,
	payments PaymentRepository,
	projects project.Repository,
	customers partner.CustomerRepository,
	vendors partner.VendorRepository,
) *SettlementResolver {
	return &SettlementResolver{
		transactions: transactions,
		expenses:     expenses,
		payments:     payments,
		projects:     projects,
		customers:    customers,
		vendors:      vendors,
	}
}

// Receivables returns the outstanding receivable lines as of the given
// instant: unpaid remainders of completed project agreements plus
// per-customer outstanding debt.
func (s *SettlementResolver) Receivables(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]report.ReceivableLine, decimal.Decimal, error) {
	lines := make([]report.ReceivableLine, 0)

	completed, err := s.projects.FindByStatusAsOf(ctx, tenantID, []project.Status{project.StatusCompleted}, asOf)
	if err != nil {
		return nil, decimal.Zero, err
	}
	paidByProject, err := s.paymentTotals(ctx, tenantID, asOf)
	if err != nil {
		return nil, decimal.Zero, err
	}
	for i := range completed {
		p := &completed[i]
		remaining := p.Remaining(paidByProject[p.ID])
		if remaining.IsPositive() {
			lines = append(lines, report.ReceivableLine{
				EntityID:   p.ID,
				EntityKind: "PROJECT",
				Name:       p.Name,
				Amount:     remaining,
			})
		}
	}

	customerDebts, err := s.transactions.DebtByCustomer(ctx, tenantID, asOf)
	if err != nil {
		return nil, decimal.Zero, err
	}
	for _, debt := range customerDebts {
		outstanding := debt.Outstanding()
		if !outstanding.IsPositive() {
			continue
		}
		name := ""
		if customer, err := s.customers.FindByIDForTenant(ctx, tenantID, debt.PartyID); err == nil {
			name = customer.Name
		}
		lines = append(lines, report.ReceivableLine{
			EntityID:   debt.PartyID,
			EntityKind: "CUSTOMER",
			Name:       name,
			Amount:     outstanding,
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].EntityKind != lines[j].EntityKind {
			return lines[i].EntityKind < lines[j].EntityKind
		}
		return lines[i].EntityID.String() < lines[j].EntityID.String()
	})

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}
	return lines, total, nil
}

// Payables returns the outstanding payable lines as of the given
// instant: unpaid remainders of expense documents plus per-vendor
// outstanding debt.
func (s *SettlementResolver) Payables(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]report.PayableLine, decimal.Decimal, error) {
	lines := make([]report.PayableLine, 0)

	active, err := s.expenses.FindActiveAsOf(ctx, tenantID, asOf)
	if err != nil {
		return nil, decimal.Zero, err
	}
	paidByExpense, err := s.expenseSettlements(ctx, tenantID, asOf)
	if err != nil {
		return nil, decimal.Zero, err
	}
	for i := range active {
		e := &active[i]
		outstanding := e.Outstanding(paidByExpense[e.ID])
		if outstanding.IsPositive() {
			lines = append(lines, report.PayableLine{
				EntityID:   e.ID,
				EntityKind: "EXPENSE",
				Name:       e.Description,
				Amount:     outstanding,
			})
		}
	}

	vendorDebts, err := s.transactions.DebtByVendor(ctx, tenantID, asOf)
	if err != nil {
		return nil, decimal.Zero, err
	}
	for _, debt := range vendorDebts {
		outstanding := debt.Outstanding()
		if !outstanding.IsPositive() {
			continue
		}
		name := ""
		if vendor, err := s.vendors.FindByIDForTenant(ctx, tenantID, debt.PartyID); err == nil {
			name = vendor.Name
		}
		lines = append(lines, report.PayableLine{
			EntityID:   debt.PartyID,
			EntityKind: "VENDOR",
			Name:       name,
			Amount:     outstanding,
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].EntityKind != lines[j].EntityKind {
			return lines[i].EntityKind < lines[j].EntityKind
		}
		return lines[i].EntityID.String() < lines[j].EntityID.String()
	})

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}
	return lines, total, nil
}

// Resolve builds the combined receivables/payables report
func (s *SettlementResolver) Resolve(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (*report.ReceivablesPayables, error) {
	receivables, totalReceivables, err := s.Receivables(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	payables, totalPayables, err := s.Payables(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	return &report.ReceivablesPayables{
		TenantID:         tenantID,
		AsOf:             asOf,
		Receivables:      receivables,
		Payables:         payables,
		TotalReceivables: totalReceivables,
		TotalPayables:    totalPayables,
	}, nil
}

func (s *SettlementResolver) paymentTotals(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	rows, err := s.payments.SumByProjectAsOf(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	totals := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.ProjectID] = row.Total
	}
	return totals, nil
}

func (s *SettlementResolver) expenseSettlements(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	rows, err := s.transactions.PaidByExpense(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	totals := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.ExpenseID] = row.Paid
	}
	return totals, nil
}
