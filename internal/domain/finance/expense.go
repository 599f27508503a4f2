package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// Reserved expense categories. Matching is exact on the normalized
// name, never by substring: a category called "Withdrawal Fees" is an
// ordinary operating category, not a drawing.
const (
	CategoryMaterial       = "Material"
	CategoryLabor          = "Labor"
	CategoryTransport      = "Transport"
	CategoryDebt           = "Debt"
	CategoryDebtRepayment  = "Debt Repayment"
	CategoryWithdrawal     = "Withdrawal"
	CategoryOwnerDrawing   = "Owner Drawing"
	CategoryCapital        = "Capital"
	CategoryCompanyExpense = "Company Expense"
)

// CategoryClass is the ledger meaning of an expense category,
// resolved once when the expense is recorded and stored with it
type CategoryClass string

const (
	ClassOperating CategoryClass = "OPERATING"
	ClassDirect    CategoryClass = "DIRECT"
	ClassDebt      CategoryClass = "DEBT"
	ClassCapital   CategoryClass = "CAPITAL"
	ClassDrawing   CategoryClass = "DRAWING"
)

// String returns the string representation of CategoryClass
func (c CategoryClass) String() string {
	return string(c)
}

// InProfitAndLoss returns true for classes that belong on the income
// statement. Debt movements, capital contributions and owner drawings
// are balance-sheet items only.
func (c CategoryClass) InProfitAndLoss() bool {
	return c == ClassOperating || c == ClassDirect
}

var (
	drawingCategories = map[string]bool{
		"withdrawal":       true,
		"drawing":          true,
		"owner drawing":    true,
		"owner withdrawal": true,
	}
	debtCategories = map[string]bool{
		"debt":           true,
		"loan":           true,
		"debt repayment": true,
		"loan repayment": true,
	}
	capitalCategories = map[string]bool{
		"capital":              true,
		"capital contribution": true,
	}
	directCategories = map[string]bool{
		"material":  true,
		"labor":     true,
		"transport": true,
	}
)

// ClassifyCategory maps a category/subcategory pair to its ledger
// class. The subcategory wins when it names a reserved class, so a
// "Company Expense" with subcategory "Withdrawal" is still a drawing.
// Direct cost classification additionally requires a project link;
// without one the same category is an operating cost.
func ClassifyCategory(category, subcategory string, hasProject bool) CategoryClass {
	for _, name := range []string{subcategory, category} {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		switch {
		case drawingCategories[key]:
			return ClassDrawing
		case debtCategories[key]:
			return ClassDebt
		case capitalCategories[key]:
			return ClassCapital
		case directCategories[key]:
			if hasProject {
				return ClassDirect
			}
			return ClassOperating
		}
	}
	return ClassOperating
}

// ExpensePaymentStatus is derived from linked settlement transactions
// and never set directly by a caller
type ExpensePaymentStatus string

const (
	PaymentStatusPaid    ExpensePaymentStatus = "PAID"
	PaymentStatusPartial ExpensePaymentStatus = "PARTIAL"
	PaymentStatusUnpaid  ExpensePaymentStatus = "UNPAID"
)

// DerivePaymentStatus computes the status from the expense amount and
// the sum of active settlement transactions linked to it
func DerivePaymentStatus(amount, paid decimal.Decimal) ExpensePaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(amount):
		return PaymentStatusPaid
	case paid.IsPositive():
		return PaymentStatusPartial
	default:
		return PaymentStatusUnpaid
	}
}

// Expense represents a cost document aggregate root. It is the source
// of truth for the cost side of the profit & loss; the cash side is
// carried by linked settlement transactions.
type Expense struct {
	shared.TenantAggregateRoot
	Description       string               `json:"description"`
	Amount            decimal.Decimal      `json:"amount"`
	Category          string               `json:"category"`
	Subcategory       string               `json:"subcategory,omitempty"`
	Class             CategoryClass        `json:"class"`
	Date              time.Time            `json:"date"`
	PaymentStatus     ExpensePaymentStatus `json:"payment_status"`
	PaidFromAccountID *uuid.UUID           `json:"paid_from_account_id,omitempty"`
	ProjectID         *uuid.UUID           `json:"project_id,omitempty"`
	VendorID          *uuid.UUID           `json:"vendor_id,omitempty"`
	CustomerID        *uuid.UUID           `json:"customer_id,omitempty"`
	EmployeeID        *uuid.UUID           `json:"employee_id,omitempty"`
	ReversedAt        *time.Time           `json:"reversed_at,omitempty"`
}

// ExpenseRefs carries the optional dimension references of an expense
type ExpenseRefs struct {
	PaidFromAccountID *uuid.UUID
	ProjectID         *uuid.UUID
	VendorID          *uuid.UUID
	CustomerID        *uuid.UUID
	EmployeeID        *uuid.UUID
}

// NewExpense creates a new expense with validation. The category class
// is resolved here and stored; later category renames do not reclassify
// history.
func NewExpense(tenantID uuid.UUID, description string, amount decimal.Decimal, category, subcategory string, date time.Time, refs ExpenseRefs) (*Expense, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if strings.TrimSpace(category) == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Expense date is required")
	}
	if date.Before(InceptionDate) {
		return nil, shared.NewDomainError("INVALID_DATE", "Expense date is before the ledger inception")
	}

	exp := &Expense{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Description:         description,
		Amount:              amount,
		Category:            category,
		Subcategory:         subcategory,
		Class:               ClassifyCategory(category, subcategory, refs.ProjectID != nil),
		Date:                date,
		PaymentStatus:       PaymentStatusUnpaid,
		PaidFromAccountID:   refs.PaidFromAccountID,
		ProjectID:           refs.ProjectID,
		VendorID:            refs.VendorID,
		CustomerID:          refs.CustomerID,
		EmployeeID:          refs.EmployeeID,
	}

	exp.AddDomainEvent(NewExpensePostedEvent(exp))
	return exp, nil
}

// IsActive returns true while the expense has not been reversed
func (e *Expense) IsActive() bool {
	return e.ReversedAt == nil
}

// Outstanding returns the unpaid remainder, floored at zero so an
// overpaid expense never shows as a negative payable
func (e *Expense) Outstanding(paid decimal.Decimal) decimal.Decimal {
	out := e.Amount.Sub(paid)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// RefreshPaymentStatus re-derives the stored status from the given
// settlement total. The stored value is a cache; readers that have the
// settlement total available should prefer DerivePaymentStatus.
func (e *Expense) RefreshPaymentStatus(paid decimal.Decimal) {
	e.PaymentStatus = DerivePaymentStatus(e.Amount, paid)
	e.Touch()
}

// MarkReversed soft-deletes the expense at the given instant
func (e *Expense) MarkReversed(at time.Time) error {
	if e.ReversedAt != nil {
		return shared.NewDomainError("ALREADY_REVERSED", "Expense has already been reversed")
	}
	e.ReversedAt = &at
	e.Touch()
	e.AddDomainEvent(NewExpenseReversedEvent(e))
	return nil
}

// DimensionRefs returns the references the resolver must verify
func (e *Expense) DimensionRefs() DimensionRefs {
	return DimensionRefs{
		AccountIDs: compactIDs(e.PaidFromAccountID),
		ProjectID:  e.ProjectID,
		CustomerID: e.CustomerID,
		VendorID:   e.VendorID,
		EmployeeID: e.EmployeeID,
	}
}
