package finance

import (
	"context"

	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/finance"
)

// LedgerTransactionScope provides transactional access to the ledger
// repositories. Everything executed inside one scope commits or rolls
// back as a unit: the event write and its balance adjustment are never
// visible half-applied.
type LedgerTransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos LedgerRepositories) error) error
}

// LedgerRepositories provides access to the ledger repositories within
// a transaction. All repositories returned share the same underlying
// database transaction.
type LedgerRepositories interface {
	// Accounts returns the account repository scoped to the current transaction
	Accounts() finance.AccountRepository
	// Transactions returns the transaction repository scoped to the current transaction
	Transactions() finance.TransactionRepository
	// Expenses returns the expense repository scoped to the current transaction
	Expenses() finance.ExpenseRepository
	// Payments returns the payment repository scoped to the current transaction
	Payments() finance.PaymentRepository
}

// NoOpLedgerTransactionScope runs the function without a real database
// transaction. Useful for tests built on in-memory repositories.
type NoOpLedgerTransactionScope struct {
	accounts     finance.AccountRepository
	transactions finance.TransactionRepository
	expenses     finance.ExpenseRepository
	payments     finance.PaymentRepository
}

// NewNoOpLedgerTransactionScope creates a NoOpLedgerTransactionScope
func NewNoOpLedgerTransactionScope(
	accounts finance.AccountRepository,
	transactions finance.TransactionRepository,
	expenses finance.ExpenseRepository,
	payments finance.PaymentRepository,
) *NoOpLedgerTransactionScope {
	return &NoOpLedgerTransactionScope{
		accounts:     accounts,
		transactions: transactions,
		expenses:     expenses,
		payments:     payments,
	}
}

// Execute runs the function without transactional guarantees
func (s *NoOpLedgerTransactionScope) Execute(_ context.Context, fn func(repos LedgerRepositories) error) error {
	return fn(s)
}

// Accounts returns the account repository
func (s *NoOpLedgerTransactionScope) Accounts() finance.AccountRepository { return s.accounts }

// Transactions returns the transaction repository
func (s *NoOpLedgerTransactionScope) Transactions() finance.TransactionRepository {
	return s.transactions
}

// Expenses returns the expense repository
func (s *NoOpLedgerTransactionScope) Expenses() finance.ExpenseRepository { return s.expenses }

// Payments returns the payment repository
func (s *NoOpLedgerTransactionScope) Payments() finance.PaymentRepository { return s.payments }

var _ LedgerTransactionScope = (*NoOpLedgerTransactionScope)(nil)
var _ LedgerRepositories = (*NoOpLedgerTransactionScope)(nil)
