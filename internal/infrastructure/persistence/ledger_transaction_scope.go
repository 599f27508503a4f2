package persistence

import (
	"context"

	"gorm.io/gorm"

	appfinance "github.com/hamsefx10-lgtm/revlo-backend/internal/application/finance"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/finance"
)

// GormLedgerTransactionScope implements LedgerTransactionScope using
// GORM transactions. The event write and its balance adjustment commit
// or roll back as one unit.
type GormLedgerTransactionScope struct {
	db *gorm.DB
}

// NewGormLedgerTransactionScope creates a new GormLedgerTransactionScope
func NewGormLedgerTransactionScope(db *gorm.DB) *GormLedgerTransactionScope {
	return &GormLedgerTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormLedgerTransactionScope) Execute(ctx context.Context, fn func(repos appfinance.LedgerRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormLedgerRepositories{tx: tx})
	})
}

// gormLedgerRepositories provides access to the ledger repositories
// bound to one open transaction.
type gormLedgerRepositories struct {
	tx *gorm.DB
}

// Accounts returns the account repository scoped to the current transaction
func (r *gormLedgerRepositories) Accounts() finance.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

// Transactions returns the transaction repository scoped to the current transaction
func (r *gormLedgerRepositories) Transactions() finance.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

// Expenses returns the expense repository scoped to the current transaction
func (r *gormLedgerRepositories) Expenses() finance.ExpenseRepository {
	return NewGormExpenseRepository(r.tx)
}

// Payments returns the payment repository scoped to the current transaction
func (r *gormLedgerRepositories) Payments() finance.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

var _ appfinance.LedgerTransactionScope = (*GormLedgerTransactionScope)(nil)
var _ appfinance.LedgerRepositories = (*gormLedgerRepositories)(nil)
