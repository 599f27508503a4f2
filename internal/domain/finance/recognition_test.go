package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/project"
)

func statusOf(statuses map[uuid.UUID]project.Status) ProjectStatusLookup {
	return func(id uuid.UUID) (project.Status, bool) {
		s, ok := statuses[id]
		return s, ok
	}
}

func TestClassifyTransaction(t *testing.T) {
	tenantID := uuid.New()
	accountID := uuid.New()
	activeProject := uuid.New()
	completedProject := uuid.New()
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	policy := NewRecognitionPolicy()
	lookup := statusOf(map[uuid.UUID]project.Status{
		activeProject:    project.StatusActive,
		completedProject: project.StatusCompleted,
	})

	post := func(t *testing.T, kind TransactionKind, refs TransactionRefs) *Transaction {
		t.Helper()
		txn, err := NewTransaction(tenantID, "test", decimal.NewFromInt(100), kind, date, refs)
		require.NoError(t, err)
		return txn
	}

	t.Run("debt kinds win over project links", func(t *testing.T) {
		txn := post(t, TransactionKindDebtTaken, TransactionRefs{
			AccountID: ptr(accountID),
			ProjectID: ptr(completedProject),
		})
		assert.Equal(t, BucketDebtMovement, policy.ClassifyTransaction(txn, lookup))
	})

	t.Run("transfers never reach the income statement", func(t *testing.T) {
		txn := post(t, TransactionKindTransferOut, TransactionRefs{
			FromAccountID: ptr(accountID),
			ToAccountID:   ptr(uuid.New()),
		})
		bucket := policy.ClassifyTransaction(txn, lookup)
		assert.Equal(t, BucketTransfer, bucket)
		assert.False(t, bucket.InProfitAndLoss())
	})

	t.Run("settlement of an expense is excluded", func(t *testing.T) {
		txn := post(t, TransactionKindExpense, TransactionRefs{
			AccountID: ptr(accountID),
			ExpenseID: ptr(uuid.New()),
		})
		bucket := policy.ClassifyTransaction(txn, lookup)
		assert.Equal(t, BucketSettlement, bucket)
		assert.False(t, bucket.InProfitAndLoss())
	})

	t.Run("DEBT_REPAID settlement wins over debt movement", func(t *testing.T) {
		txn := post(t, TransactionKindDebtRepaid, TransactionRefs{
			AccountID: ptr(accountID),
			ExpenseID: ptr(uuid.New()),
		})
		bucket := policy.ClassifyTransaction(txn, lookup)
		assert.Equal(t, BucketSettlement, bucket)
		assert.False(t, bucket.InProfitAndLoss())
	})

	t.Run("income on an active project is unearned", func(t *testing.T) {
		txn := post(t, TransactionKindIncome, TransactionRefs{
			AccountID: ptr(accountID),
			ProjectID: ptr(activeProject),
		})
		assert.Equal(t, BucketUnearnedRevenue, policy.ClassifyTransaction(txn, lookup))
	})

	t.Run("income on a completed project is realized", func(t *testing.T) {
		txn := post(t, TransactionKindIncome, TransactionRefs{
			AccountID: ptr(accountID),
			ProjectID: ptr(completedProject),
		})
		assert.Equal(t, BucketRealizedRevenue, policy.ClassifyTransaction(txn, lookup))
	})

	t.Run("status change reclassifies the same stored row", func(t *testing.T) {
		txn := post(t, TransactionKindIncome, TransactionRefs{
			AccountID: ptr(accountID),
			ProjectID: ptr(activeProject),
		})
		assert.Equal(t, BucketUnearnedRevenue, policy.ClassifyTransaction(txn, lookup))

		after := statusOf(map[uuid.UUID]project.Status{activeProject: project.StatusCompleted})
		assert.Equal(t, BucketRealizedRevenue, policy.ClassifyTransaction(txn, after))
	})

	t.Run("income without a project is other income", func(t *testing.T) {
		txn := post(t, TransactionKindIncome, TransactionRefs{
			AccountID: ptr(accountID),
		})
		assert.Equal(t, BucketOtherIncome, policy.ClassifyTransaction(txn, lookup))
	})

	t.Run("plain expense transaction is operating", func(t *testing.T) {
		txn := post(t, TransactionKindExpense, TransactionRefs{
			AccountID: ptr(accountID),
		})
		assert.Equal(t, BucketOperatingExpense, policy.ClassifyTransaction(txn, lookup))
	})
}

func TestClassifyExpense(t *testing.T) {
	tenantID := uuid.New()
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	policy := NewRecognitionPolicy()

	t.Run("direct project cost", func(t *testing.T) {
		exp, err := NewExpense(tenantID, "Cement", decimal.NewFromInt(400), CategoryMaterial, "", date, ExpenseRefs{
			ProjectID: ptr(uuid.New()),
		})
		require.NoError(t, err)
		assert.Equal(t, BucketDirectCost, policy.ClassifyExpense(exp))
	})

	t.Run("operating expense", func(t *testing.T) {
		exp, err := NewExpense(tenantID, "Office rent", decimal.NewFromInt(900), "Rent", "", date, ExpenseRefs{})
		require.NoError(t, err)
		assert.Equal(t, BucketOperatingExpense, policy.ClassifyExpense(exp))
	})

	t.Run("drawing stays off the income statement", func(t *testing.T) {
		exp, err := NewExpense(tenantID, "Owner cash out", decimal.NewFromInt(500), CategoryWithdrawal, "", date, ExpenseRefs{})
		require.NoError(t, err)
		bucket := policy.ClassifyExpense(exp)
		assert.Equal(t, BucketNonOperating, bucket)
		assert.False(t, bucket.InProfitAndLoss())
	})
}

func TestClassifyPayment(t *testing.T) {
	policy := NewRecognitionPolicy()

	assert.Equal(t, BucketRealizedRevenue, policy.ClassifyPayment(project.StatusCompleted))
	assert.Equal(t, BucketUnearnedRevenue, policy.ClassifyPayment(project.StatusActive))
	assert.Equal(t, BucketUnearnedRevenue, policy.ClassifyPayment(project.StatusOnHold))
}
