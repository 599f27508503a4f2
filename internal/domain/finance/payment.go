package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// PaymentMethod represents how a project payment was received
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodMobileMoney, PaymentMethodCheque:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Payment represents money received against a project agreement. Its
// revenue recognition depends on the project status at report time:
// payments on a completed project are realized revenue, payments on
// any other status are unearned revenue (a liability).
type Payment struct {
	shared.TenantAggregateRoot
	ProjectID  uuid.UUID       `json:"project_id"`
	AccountID  uuid.UUID       `json:"account_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     PaymentMethod   `json:"method"`
	Date       time.Time       `json:"date"`
	Note       string          `json:"note,omitempty"`
	// LedgerTransactionID links the companion INCOME transaction that
	// carries this payment's cash effect in the event stream.
	LedgerTransactionID *uuid.UUID `json:"ledger_transaction_id,omitempty"`
	ReversedAt          *time.Time `json:"reversed_at,omitempty"`
}

// NewPayment creates a new project payment with validation
func NewPayment(tenantID, projectID, accountID uuid.UUID, amount decimal.Decimal, method PaymentMethod, date time.Time, note string) (*Payment, error) {
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_PROJECT", "Payment requires a project")
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_ACCOUNT", "Payment requires a receiving account")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method is not valid")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Payment date is required")
	}
	if date.Before(InceptionDate) {
		return nil, shared.NewDomainError("INVALID_DATE", "Payment date is before the ledger inception")
	}

	p := &Payment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProjectID:           projectID,
		AccountID:           accountID,
		Amount:              amount,
		Method:              method,
		Date:                date,
		Note:                note,
	}

	p.AddDomainEvent(NewPaymentPostedEvent(p))
	return p, nil
}

// LinkLedgerTransaction records the companion transaction's identity
func (p *Payment) LinkLedgerTransaction(id uuid.UUID) {
	p.LedgerTransactionID = &id
	p.Touch()
}

// IsActive returns true while the payment has not been reversed
func (p *Payment) IsActive() bool {
	return p.ReversedAt == nil
}

// MarkReversed soft-deletes the payment at the given instant
func (p *Payment) MarkReversed(at time.Time) error {
	if p.ReversedAt != nil {
		return shared.NewDomainError("ALREADY_REVERSED", "Payment has already been reversed")
	}
	p.ReversedAt = &at
	p.Touch()
	return nil
}

// DimensionRefs returns the references the resolver must verify
func (p *Payment) DimensionRefs() DimensionRefs {
	projectID := p.ProjectID
	return DimensionRefs{
		AccountIDs: []uuid.UUID{p.AccountID},
		ProjectID:  &projectID,
	}
}
