package finance

import (
	"fmt"

	"github.com/google/uuid"
)

// Dimension kinds used by UnknownReferenceError
const (
	RefAccount  = "account"
	RefProject  = "project"
	RefCustomer = "customer"
	RefVendor   = "vendor"
	RefEmployee = "employee"
	RefExpense  = "expense"
)

// UnknownReferenceError reports a dimension reference that does not
// resolve to a live row of the caller's tenant. The write that carried
// it must be rejected before anything is persisted.
type UnknownReferenceError struct {
	Kind string
	ID   uuid.UUID
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown %s reference: %s", e.Kind, e.ID)
}

// NewUnknownReferenceError creates an UnknownReferenceError
func NewUnknownReferenceError(kind string, id uuid.UUID) *UnknownReferenceError {
	return &UnknownReferenceError{Kind: kind, ID: id}
}

// BalanceApplyError reports a failed balance adjustment. It is fatal
// to the enclosing write: the transactional scope must roll back so
// the event store and the balance cache never diverge.
type BalanceApplyError struct {
	AccountID uuid.UUID
	Err       error
}

func (e *BalanceApplyError) Error() string {
	return fmt.Sprintf("balance apply failed for account %s: %v", e.AccountID, e.Err)
}

func (e *BalanceApplyError) Unwrap() error {
	return e.Err
}
