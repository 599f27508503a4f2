package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appfinance "github.com/hamsefx10-lgtm/revlo-backend/internal/application/finance"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/finance"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/infrastructure/persistence/models"
)

// newSqliteDB opens an in-memory database with the full schema for
// integration-style repository tests.
func newSqliteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.AccountModel{},
		&models.TransactionModel{},
		&models.ExpenseModel{},
		&models.PaymentModel{},
	))
	return db
}

func postTransaction(t *testing.T, repo finance.TransactionRepository, tenantID uuid.UUID, kind finance.TransactionKind, amount int64, date time.Time, refs finance.TransactionRefs) *finance.Transaction {
	t.Helper()
	txn, err := finance.NewTransaction(tenantID, string(kind)+" entry", decimal.NewFromInt(amount), kind, date, refs)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), txn))
	return txn
}

func TestTransactionRepositoryAggregates(t *testing.T) {
	db := newSqliteDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	bank := uuid.New()
	cash := uuid.New()
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	postTransaction(t, repo, tenantID, finance.TransactionKindIncome, 1000, day, finance.TransactionRefs{AccountID: &bank})
	postTransaction(t, repo, tenantID, finance.TransactionKindExpense, 300, day.AddDate(0, 0, 1), finance.TransactionRefs{AccountID: &bank})
	postTransaction(t, repo, tenantID, finance.TransactionKindTransferOut, 200, day.AddDate(0, 0, 2), finance.TransactionRefs{FromAccountID: &bank, ToAccountID: &cash})

	t.Run("sums signed amounts including transfer legs", func(t *testing.T) {
		total, err := repo.SumSignedForAccount(ctx, tenantID, bank, day.AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(500)), "got %s", total)

		total, err = repo.SumSignedForAccount(ctx, tenantID, cash, day.AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(200)), "got %s", total)
	})

	t.Run("asOf cuts off later events", func(t *testing.T) {
		total, err := repo.SumSignedForAccount(ctx, tenantID, bank, day)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(1000)), "got %s", total)
	})

	t.Run("reversed rows are excluded", func(t *testing.T) {
		txn := postTransaction(t, repo, tenantID, finance.TransactionKindExpense, 400, day, finance.TransactionRefs{AccountID: &bank})
		require.NoError(t, txn.MarkReversed(time.Now()))
		require.NoError(t, repo.Save(ctx, txn))

		total, err := repo.SumSignedForAccount(ctx, tenantID, bank, day.AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(500)), "got %s", total)
	})

	t.Run("finds account rows ordered by date then id", func(t *testing.T) {
		txns, err := repo.FindActiveByAccount(ctx, tenantID, bank, day, day.AddDate(0, 0, 7))
		require.NoError(t, err)
		require.Len(t, txns, 3)
		for i := 1; i < len(txns); i++ {
			prev, curr := txns[i-1], txns[i]
			assert.False(t, curr.Date.Before(prev.Date))
		}
	})

	t.Run("ignores other tenants", func(t *testing.T) {
		total, err := repo.SumSignedForAccount(ctx, uuid.New(), bank, day.AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestTransactionRepositoryDebtGrouping(t *testing.T) {
	db := newSqliteDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	bank := uuid.New()
	customer := uuid.New()
	vendor := uuid.New()
	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	postTransaction(t, repo, tenantID, finance.TransactionKindDebtTaken, 500, day, finance.TransactionRefs{AccountID: &bank, CustomerID: &customer})
	postTransaction(t, repo, tenantID, finance.TransactionKindDebtRepaid, 100, day, finance.TransactionRefs{AccountID: &bank, CustomerID: &customer})
	postTransaction(t, repo, tenantID, finance.TransactionKindIncome, 50, day, finance.TransactionRefs{AccountID: &bank, CustomerID: &customer})
	postTransaction(t, repo, tenantID, finance.TransactionKindDebtTaken, 800, day, finance.TransactionRefs{AccountID: &bank, VendorID: &vendor})

	customerDebts, err := repo.DebtByCustomer(ctx, tenantID, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, customerDebts, 1)
	assert.Equal(t, customer, customerDebts[0].PartyID)
	assert.True(t, customerDebts[0].Outstanding().Equal(decimal.NewFromInt(350)))

	vendorDebts, err := repo.DebtByVendor(ctx, tenantID, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, vendorDebts, 1)
	assert.Equal(t, vendor, vendorDebts[0].PartyID)
	assert.True(t, vendorDebts[0].Outstanding().Equal(decimal.NewFromInt(800)))
}

func TestGormLedgerTransactionScopeRollback(t *testing.T) {
	db := newSqliteDB(t)
	scope := NewGormLedgerTransactionScope(db)
	ctx := context.Background()

	tenantID := uuid.New()
	bank := uuid.New()
	boom := errors.New("boom")

	err := scope.Execute(ctx, func(repos appfinance.LedgerRepositories) error {
		txn, err := finance.NewTransaction(tenantID, "doomed", decimal.NewFromInt(100),
			finance.TransactionKindIncome, time.Now(), finance.TransactionRefs{AccountID: &bank})
		if err != nil {
			return err
		}
		if err := repos.Transactions().Create(ctx, txn); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&models.TransactionModel{}).Count(&count).Error)
	assert.Zero(t, count, "rolled back transaction must not persist")
}

func TestGormLedgerTransactionScopeCommit(t *testing.T) {
	db := newSqliteDB(t)
	scope := NewGormLedgerTransactionScope(db)
	ctx := context.Background()

	tenantID := uuid.New()
	bank := uuid.New()

	err := scope.Execute(ctx, func(repos appfinance.LedgerRepositories) error {
		txn, err := finance.NewTransaction(tenantID, "kept", decimal.NewFromInt(100),
			finance.TransactionKindIncome, time.Now(), finance.TransactionRefs{AccountID: &bank})
		if err != nil {
			return err
		}
		return repos.Transactions().Create(ctx, txn)
	})
	require.NoError(t, err)

	repo := NewGormTransactionRepository(db)
	total, err := repo.SumSignedForAccount(ctx, tenantID, bank, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(100)))
}
