package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// InceptionDate is the earliest event date the ledger accepts.
// From-inception report windows start here; an earlier event would
// fall outside retained earnings and surface as a spurious
// balance sheet adjustment.
var InceptionDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// TransactionKind represents the kind of a ledger transaction
type TransactionKind string

const (
	TransactionKindIncome      TransactionKind = "INCOME"
	TransactionKindExpense     TransactionKind = "EXPENSE"
	TransactionKindTransferIn  TransactionKind = "TRANSFER_IN"
	TransactionKindTransferOut TransactionKind = "TRANSFER_OUT"
	TransactionKindDebtTaken   TransactionKind = "DEBT_TAKEN"
	TransactionKindDebtRepaid  TransactionKind = "DEBT_REPAID"
)

// IsValid checks if the kind is a valid TransactionKind
func (k TransactionKind) IsValid() bool {
	switch k {
	case TransactionKindIncome, TransactionKindExpense,
		TransactionKindTransferIn, TransactionKindTransferOut,
		TransactionKindDebtTaken, TransactionKindDebtRepaid:
		return true
	}
	return false
}

// String returns the string representation of TransactionKind
func (k TransactionKind) String() string {
	return string(k)
}

// IsTransfer returns true for the two transfer kinds. Both move money
// from FromAccountID to ToAccountID; the kind only records which side
// the user entered it from.
func (k TransactionKind) IsTransfer() bool {
	return k == TransactionKindTransferIn || k == TransactionKindTransferOut
}

// Sign returns +1 for kinds that increase the referenced account and
// -1 for kinds that decrease it. Stored amounts are always positive;
// the sign is derived from the kind and never stored.
func (k TransactionKind) Sign() int {
	switch k {
	case TransactionKindIncome, TransactionKindDebtRepaid, TransactionKindTransferIn:
		return 1
	default:
		return -1
	}
}

// TransactionRefs carries the optional dimension references of a
// transaction. Every non-nil reference must resolve to an existing
// row of the same tenant before the transaction is persisted.
type TransactionRefs struct {
	AccountID     *uuid.UUID
	FromAccountID *uuid.UUID
	ToAccountID   *uuid.UUID
	ProjectID     *uuid.UUID
	CustomerID    *uuid.UUID
	VendorID      *uuid.UUID
	EmployeeID    *uuid.UUID
	ExpenseID     *uuid.UUID
}

// Transaction represents an immutable ledger event aggregate root.
// Corrections never mutate amounts in place: a posted transaction is
// reversed and a fresh one is written.
type Transaction struct {
	shared.TenantAggregateRoot
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          TransactionKind `json:"kind"`
	Date          time.Time       `json:"date"`
	AccountID     *uuid.UUID      `json:"account_id,omitempty"`
	FromAccountID *uuid.UUID      `json:"from_account_id,omitempty"`
	ToAccountID   *uuid.UUID      `json:"to_account_id,omitempty"`
	ProjectID     *uuid.UUID      `json:"project_id,omitempty"`
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
	VendorID      *uuid.UUID      `json:"vendor_id,omitempty"`
	EmployeeID    *uuid.UUID      `json:"employee_id,omitempty"`
	ExpenseID     *uuid.UUID      `json:"expense_id,omitempty"`
	ReversedAt    *time.Time      `json:"reversed_at,omitempty"`
}

// NewTransaction creates a new transaction with validation
func NewTransaction(tenantID uuid.UUID, description string, amount decimal.Decimal, kind TransactionKind, date time.Time, refs TransactionRefs) (*Transaction, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Transaction kind is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Transaction date is required")
	}
	if date.Before(InceptionDate) {
		return nil, shared.NewDomainError("INVALID_DATE", "Transaction date is before the ledger inception")
	}

	if kind.IsTransfer() {
		if refs.FromAccountID == nil || refs.ToAccountID == nil {
			return nil, shared.NewDomainError("MISSING_ACCOUNT", "Transfer requires both a source and a destination account")
		}
		if *refs.FromAccountID == *refs.ToAccountID {
			return nil, shared.NewDomainError("TRANSFER_SAME_ACCOUNT", "Transfer source and destination accounts must differ")
		}
		if refs.AccountID != nil {
			return nil, shared.NewDomainError("INVALID_REFERENCE", "Transfer cannot carry a single account reference")
		}
	} else {
		if refs.AccountID == nil {
			return nil, shared.NewDomainError("MISSING_ACCOUNT", "Transaction requires an account")
		}
		if refs.FromAccountID != nil || refs.ToAccountID != nil {
			return nil, shared.NewDomainError("INVALID_REFERENCE", "Only transfers carry source and destination accounts")
		}
	}
	if refs.ExpenseID != nil && kind != TransactionKindExpense && kind != TransactionKindDebtRepaid {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Only EXPENSE and DEBT_REPAID transactions can settle an expense")
	}

	txn := &Transaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Description:         description,
		Amount:              amount,
		Kind:                kind,
		Date:                date,
		AccountID:           refs.AccountID,
		FromAccountID:       refs.FromAccountID,
		ToAccountID:         refs.ToAccountID,
		ProjectID:           refs.ProjectID,
		CustomerID:          refs.CustomerID,
		VendorID:            refs.VendorID,
		EmployeeID:          refs.EmployeeID,
		ExpenseID:           refs.ExpenseID,
	}

	txn.AddDomainEvent(NewTransactionPostedEvent(txn))
	return txn, nil
}

// SignedAmount returns the amount with the kind-derived sign applied.
// Not meaningful for transfers, which affect two accounts with
// opposite signs; use the BalanceMaintainer for those.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Kind.Sign() < 0 {
		return t.Amount.Neg()
	}
	return t.Amount
}

// IsActive returns true while the transaction has not been reversed.
// Reversed transactions stay in the store for audit but are excluded
// from every balance and report.
func (t *Transaction) IsActive() bool {
	return t.ReversedAt == nil
}

// IsSettlement returns true for EXPENSE and DEBT_REPAID transactions
// that pay down a recorded expense document. These move cash but never
// enter the profit & loss, whose cost side is carried by the expense
// itself.
func (t *Transaction) IsSettlement() bool {
	return t.ExpenseID != nil &&
		(t.Kind == TransactionKindExpense || t.Kind == TransactionKindDebtRepaid)
}

// MarkReversed soft-deletes the transaction at the given instant
func (t *Transaction) MarkReversed(at time.Time) error {
	if t.ReversedAt != nil {
		return shared.NewDomainError("ALREADY_REVERSED", "Transaction has already been reversed")
	}
	t.ReversedAt = &at
	t.Touch()
	t.AddDomainEvent(NewTransactionReversedEvent(t))
	return nil
}

// DimensionRefs returns the references the resolver must verify
func (t *Transaction) DimensionRefs() DimensionRefs {
	return DimensionRefs{
		AccountIDs: compactIDs(t.AccountID, t.FromAccountID, t.ToAccountID),
		ProjectID:  t.ProjectID,
		CustomerID: t.CustomerID,
		VendorID:   t.VendorID,
		EmployeeID: t.EmployeeID,
		ExpenseID:  t.ExpenseID,
	}
}

func compactIDs(ids ...*uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != nil {
			out = append(out, *id)
		}
	}
	return out
}
