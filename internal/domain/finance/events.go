package finance

import (
	"github.com/shopspring/decimal"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// Event types emitted by the finance aggregates
const (
	EventTransactionPosted   = "finance.transaction.posted"
	EventTransactionReversed = "finance.transaction.reversed"
	EventExpensePosted       = "finance.expense.posted"
	EventExpenseReversed     = "finance.expense.reversed"
	EventPaymentPosted       = "finance.payment.posted"
)

// TransactionPostedEvent is raised when a transaction enters the ledger
type TransactionPostedEvent struct {
	shared.BaseDomainEvent
	Kind   TransactionKind `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// NewTransactionPostedEvent creates a new TransactionPostedEvent
func NewTransactionPostedEvent(t *Transaction) *TransactionPostedEvent {
	return &TransactionPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTransactionPosted, t.ID, "Transaction", t.TenantID),
		Kind:            t.Kind,
		Amount:          t.Amount,
	}
}

// TransactionReversedEvent is raised when a transaction is reversed
type TransactionReversedEvent struct {
	shared.BaseDomainEvent
	Kind   TransactionKind `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// NewTransactionReversedEvent creates a new TransactionReversedEvent
func NewTransactionReversedEvent(t *Transaction) *TransactionReversedEvent {
	return &TransactionReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTransactionReversed, t.ID, "Transaction", t.TenantID),
		Kind:            t.Kind,
		Amount:          t.Amount,
	}
}

// ExpensePostedEvent is raised when an expense document is recorded
type ExpensePostedEvent struct {
	shared.BaseDomainEvent
	Category string          `json:"category"`
	Class    CategoryClass   `json:"class"`
	Amount   decimal.Decimal `json:"amount"`
}

// NewExpensePostedEvent creates a new ExpensePostedEvent
func NewExpensePostedEvent(e *Expense) *ExpensePostedEvent {
	return &ExpensePostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventExpensePosted, e.ID, "Expense", e.TenantID),
		Category:        e.Category,
		Class:           e.Class,
		Amount:          e.Amount,
	}
}

// ExpenseReversedEvent is raised when an expense document is reversed
type ExpenseReversedEvent struct {
	shared.BaseDomainEvent
	Amount decimal.Decimal `json:"amount"`
}

// NewExpenseReversedEvent creates a new ExpenseReversedEvent
func NewExpenseReversedEvent(e *Expense) *ExpenseReversedEvent {
	return &ExpenseReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventExpenseReversed, e.ID, "Expense", e.TenantID),
		Amount:          e.Amount,
	}
}

// PaymentPostedEvent is raised when a project payment is recorded
type PaymentPostedEvent struct {
	shared.BaseDomainEvent
	Amount decimal.Decimal `json:"amount"`
	Method PaymentMethod   `json:"method"`
}

// NewPaymentPostedEvent creates a new PaymentPostedEvent
func NewPaymentPostedEvent(p *Payment) *PaymentPostedEvent {
	return &PaymentPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentPosted, p.ID, "Payment", p.TenantID),
		Amount:          p.Amount,
		Method:          p.Method,
	}
}
