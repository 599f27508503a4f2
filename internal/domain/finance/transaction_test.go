package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func TestNewTransaction(t *testing.T) {
	tenantID := uuid.New()
	accountID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("valid income transaction", func(t *testing.T) {
		txn, err := NewTransaction(tenantID, "Consulting fee", decimal.NewFromInt(500), TransactionKindIncome, date, TransactionRefs{
			AccountID: ptr(accountID),
		})
		require.NoError(t, err)
		assert.Equal(t, tenantID, txn.TenantID)
		assert.True(t, txn.IsActive())
		assert.True(t, txn.SignedAmount().Equal(decimal.NewFromInt(500)))
		assert.Len(t, txn.GetDomainEvents(), 1)
		assert.Equal(t, EventTransactionPosted, txn.GetDomainEvents()[0].EventType())
	})

	t.Run("expense sign is negative", func(t *testing.T) {
		txn, err := NewTransaction(tenantID, "Fuel", decimal.NewFromInt(80), TransactionKindExpense, date, TransactionRefs{
			AccountID: ptr(accountID),
		})
		require.NoError(t, err)
		assert.True(t, txn.SignedAmount().Equal(decimal.NewFromInt(-80)))
		assert.True(t, txn.Amount.IsPositive(), "stored amount stays positive")
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		_, err := NewTransaction(tenantID, "Nothing", decimal.Zero, TransactionKindIncome, date, TransactionRefs{
			AccountID: ptr(accountID),
		})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := NewTransaction(tenantID, "Refund", decimal.NewFromInt(-50), TransactionKindIncome, date, TransactionRefs{
			AccountID: ptr(accountID),
		})
		require.Error(t, err)
	})

	t.Run("invalid kind rejected", func(t *testing.T) {
		_, err := NewTransaction(tenantID, "???", decimal.NewFromInt(10), TransactionKind("REFUND"), date, TransactionRefs{
			AccountID: ptr(accountID),
		})
		require.Error(t, err)
	})

	t.Run("non-transfer requires an account", func(t *testing.T) {
		_, err := NewTransaction(tenantID, "Fee", decimal.NewFromInt(10), TransactionKindIncome, date, TransactionRefs{})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "MISSING_ACCOUNT", domainErr.Code)
	})

	t.Run("transfer requires both endpoints", func(t *testing.T) {
		_, err := NewTransaction(tenantID, "Move", decimal.NewFromInt(100), TransactionKindTransferOut, date, TransactionRefs{
			FromAccountID: ptr(accountID),
		})
		require.Error(t, err)
	})

	t.Run("transfer endpoints must differ", func(t *testing.T) {
		_, err := NewTransaction(tenantID, "Move", decimal.NewFromInt(100), TransactionKindTransferOut, date, TransactionRefs{
			FromAccountID: ptr(accountID),
			ToAccountID:   ptr(accountID),
		})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "TRANSFER_SAME_ACCOUNT", domainErr.Code)
	})

	t.Run("expense link only on settling kinds", func(t *testing.T) {
		_, err := NewTransaction(tenantID, "Pay down", decimal.NewFromInt(100), TransactionKindIncome, date, TransactionRefs{
			AccountID: ptr(accountID),
			ExpenseID: ptr(uuid.New()),
		})
		require.Error(t, err)
	})

	t.Run("DEBT_REPAID may settle an expense", func(t *testing.T) {
		txn, err := NewTransaction(tenantID, "Repay supplier debt", decimal.NewFromInt(100), TransactionKindDebtRepaid, date, TransactionRefs{
			AccountID: ptr(accountID),
			ExpenseID: ptr(uuid.New()),
		})
		require.NoError(t, err)
		assert.True(t, txn.IsSettlement())
	})

	t.Run("date before inception rejected", func(t *testing.T) {
		_, err := NewTransaction(tenantID, "Backdated", decimal.NewFromInt(100), TransactionKindIncome,
			time.Date(1999, 6, 1, 0, 0, 0, 0, time.UTC), TransactionRefs{
				AccountID: ptr(accountID),
			})
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_DATE", domainErr.Code)
	})
}

func TestTransactionKindSign(t *testing.T) {
	assert.Equal(t, 1, TransactionKindIncome.Sign())
	assert.Equal(t, 1, TransactionKindDebtRepaid.Sign())
	assert.Equal(t, 1, TransactionKindTransferIn.Sign())
	assert.Equal(t, -1, TransactionKindExpense.Sign())
	assert.Equal(t, -1, TransactionKindDebtTaken.Sign())
	assert.Equal(t, -1, TransactionKindTransferOut.Sign())
}

func TestTransactionMarkReversed(t *testing.T) {
	tenantID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	txn, err := NewTransaction(tenantID, "Fee", decimal.NewFromInt(25), TransactionKindIncome, date, TransactionRefs{
		AccountID: ptr(uuid.New()),
	})
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, txn.MarkReversed(now))
	assert.False(t, txn.IsActive())
	assert.Equal(t, now, *txn.ReversedAt)

	err = txn.MarkReversed(time.Now())
	require.Error(t, err, "second reversal must fail")
}

func TestTransactionIsSettlement(t *testing.T) {
	tenantID := uuid.New()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	settlement, err := NewTransaction(tenantID, "Pay cement invoice", decimal.NewFromInt(300), TransactionKindExpense, date, TransactionRefs{
		AccountID: ptr(uuid.New()),
		ExpenseID: ptr(uuid.New()),
	})
	require.NoError(t, err)
	assert.True(t, settlement.IsSettlement())

	plain, err := NewTransaction(tenantID, "Fuel", decimal.NewFromInt(40), TransactionKindExpense, date, TransactionRefs{
		AccountID: ptr(uuid.New()),
	})
	require.NoError(t, err)
	assert.False(t, plain.IsSettlement())
}
