package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyDebt aggregates the debt movements attributed to one customer
// or vendor. Outstanding floors at zero per party: one party's
// overpayment never offsets another party's debt.
type PartyDebt struct {
	PartyID uuid.UUID
	Taken   decimal.Decimal
	Repaid  decimal.Decimal
	// Income holds non-project INCOME attributed to the party, which
	// settles customer debt the same way an explicit repayment does.
	Income decimal.Decimal
}

// Outstanding returns the remaining debt, floored at zero
func (d PartyDebt) Outstanding() decimal.Decimal {
	out := d.Taken.Sub(d.Repaid).Sub(d.Income)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// ExpensePaid pairs an expense with its active settlement total
type ExpensePaid struct {
	ExpenseID uuid.UUID
	Paid      decimal.Decimal
}

// ProjectPaid pairs a project with its active payment total
type ProjectPaid struct {
	ProjectID uuid.UUID
	Total     decimal.Decimal
}

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Account, error)
	// FindByIDForUpdate loads the account under a row lock held until
	// the surrounding transaction commits.
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Account, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Account, error)
	FindByKindsForTenant(ctx context.Context, tenantID uuid.UUID, kinds []AccountKind) ([]Account, error)
	Create(ctx context.Context, account *Account) error
	Save(ctx context.Context, account *Account) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}

// TransactionRepository defines the interface for the event store's
// transaction stream, including the aggregate queries reports run on
type TransactionRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Transaction, error)
	Create(ctx context.Context, txn *Transaction) error
	Save(ctx context.Context, txn *Transaction) error

	// FindActiveInRange returns active transactions dated inside the
	// inclusive range, ordered by date then id.
	FindActiveInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Transaction, error)
	// FindActiveByAccount returns active transactions touching the
	// account on either side, including transfer legs, ordered by date
	// then id.
	FindActiveByAccount(ctx context.Context, tenantID, accountID uuid.UUID, from, to time.Time) ([]Transaction, error)
	FindActiveByProject(ctx context.Context, tenantID, projectID uuid.UUID, from, to time.Time) ([]Transaction, error)
	FindActiveByExpense(ctx context.Context, tenantID, expenseID uuid.UUID) ([]Transaction, error)

	// SumSignedForAccount folds the signed amounts of all active
	// transactions touching the account up to asOf. Transfer legs
	// count toward whichever side the account sits on.
	SumSignedForAccount(ctx context.Context, tenantID, accountID uuid.UUID, asOf time.Time) (decimal.Decimal, error)
	// SumPaidForExpense totals active settlement transactions linked
	// to the expense.
	SumPaidForExpense(ctx context.Context, tenantID, expenseID uuid.UUID) (decimal.Decimal, error)
	PaidByExpense(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]ExpensePaid, error)
	DebtByCustomer(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]PartyDebt, error)
	DebtByVendor(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]PartyDebt, error)

	// HasActiveForAccount reports whether any active transaction still
	// references the account. Referenced accounts cannot be deleted.
	HasActiveForAccount(ctx context.Context, tenantID, accountID uuid.UUID) (bool, error)
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Expense, error)
	Create(ctx context.Context, expense *Expense) error
	Save(ctx context.Context, expense *Expense) error
	ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error)

	FindActiveInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Expense, error)
	FindActiveByProject(ctx context.Context, tenantID, projectID uuid.UUID, from, to time.Time) ([]Expense, error)
	FindActiveByCategory(ctx context.Context, tenantID uuid.UUID, category string, from, to time.Time) ([]Expense, error)
	FindActiveAsOf(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]Expense, error)
	// SumByClassAsOf totals active expenses of one class up to asOf,
	// e.g. DRAWING for the owner drawings equity line.
	SumByClassAsOf(ctx context.Context, tenantID uuid.UUID, class CategoryClass, asOf time.Time) (decimal.Decimal, error)
}

// PaymentRepository defines the interface for project payment persistence
type PaymentRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)
	Create(ctx context.Context, payment *Payment) error
	Save(ctx context.Context, payment *Payment) error

	FindActiveInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Payment, error)
	FindActiveByProject(ctx context.Context, tenantID, projectID uuid.UUID, from, to time.Time) ([]Payment, error)
	// SumByProjectAsOf totals active payments per project up to asOf.
	SumByProjectAsOf(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]ProjectPaid, error)
}

// FixedAssetRepository defines the interface for fixed asset persistence
type FixedAssetRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*FixedAsset, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]FixedAsset, error)
	Create(ctx context.Context, asset *FixedAsset) error
	Save(ctx context.Context, asset *FixedAsset) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	// SumBookValueAsOf totals book value of assets purchased up to asOf.
	SumBookValueAsOf(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (decimal.Decimal, error)
}
