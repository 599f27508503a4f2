package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared/valueobject"
)

// AccountKind represents the kind of a money account
type AccountKind string

const (
	AccountKindBank        AccountKind = "BANK"
	AccountKindCash        AccountKind = "CASH"
	AccountKindMobileMoney AccountKind = "MOBILE_MONEY"
	AccountKindAsset       AccountKind = "ASSET"
	AccountKindEquity      AccountKind = "EQUITY"
)

// IsValid checks if the kind is a valid AccountKind
func (k AccountKind) IsValid() bool {
	switch k {
	case AccountKindBank, AccountKindCash, AccountKindMobileMoney, AccountKindAsset, AccountKindEquity:
		return true
	}
	return false
}

// String returns the string representation of AccountKind
func (k AccountKind) String() string {
	return string(k)
}

// CashLikeKinds returns the account kinds aggregated into the balance
// sheet's cash & bank line. EQUITY-kind accounts feed Capital instead.
func CashLikeKinds() []AccountKind {
	return []AccountKind{AccountKindBank, AccountKindCash, AccountKindMobileMoney, AccountKindAsset}
}

// Account represents a money account aggregate root. Balance is a
// derived cache over the transaction stream: it must always equal the
// sum of signed amounts of all active transactions referencing the
// account, and is mutated only by the BalanceMaintainer inside the
// same transactional scope as the event write.
type Account struct {
	shared.TenantAggregateRoot
	Name     string               `json:"name"`
	Kind     AccountKind          `json:"kind"`
	Currency valueobject.Currency `json:"currency"`
	Balance  decimal.Decimal      `json:"balance"`
}

// NewAccount creates a new account with a zero balance
func NewAccount(tenantID uuid.UUID, name string, kind AccountKind, currency valueobject.Currency) (*Account, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Account name cannot exceed 100 characters")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Account kind is not valid")
	}
	if !valueobject.IsValidCurrency(currency) {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Account currency is not supported")
	}

	return &Account{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Kind:                kind,
		Currency:            currency,
		Balance:             decimal.Zero,
	}, nil
}

// AdjustBalance moves the cached balance by delta. Callers must hold
// the account row lock and run inside the same transaction as the
// event write that caused the adjustment.
func (a *Account) AdjustBalance(delta decimal.Decimal) {
	a.Balance = a.Balance.Add(delta)
	a.Touch()
}

// SetBalance overwrites the cached balance. Used only by Recompute when
// rebuilding the cache from the event stream.
func (a *Account) SetBalance(balance decimal.Decimal) {
	a.Balance = balance
	a.Touch()
}
