package finance

import (
	"github.com/google/uuid"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/project"
)

// Bucket is the profit & loss destination of a ledger event, decided
// at report time from the event and current project status
type Bucket string

const (
	BucketRealizedRevenue  Bucket = "REALIZED_REVENUE"
	BucketUnearnedRevenue  Bucket = "UNEARNED_REVENUE"
	BucketOtherIncome      Bucket = "OTHER_INCOME"
	BucketDirectCost       Bucket = "DIRECT_COST"
	BucketOperatingExpense Bucket = "OPERATING_EXPENSE"
	BucketDebtMovement     Bucket = "DEBT_MOVEMENT"
	BucketTransfer         Bucket = "TRANSFER"
	BucketSettlement       Bucket = "SETTLEMENT"
	BucketNonOperating     Bucket = "NON_OPERATING"
)

// InProfitAndLoss returns true for buckets that enter the income
// statement. Transfers, settlements, debt movements and non-operating
// classes move money without creating income or cost.
func (b Bucket) InProfitAndLoss() bool {
	switch b {
	case BucketRealizedRevenue, BucketOtherIncome, BucketDirectCost, BucketOperatingExpense:
		return true
	}
	return false
}

// ProjectStatusLookup resolves a project's current status. The second
// return is false when the project is unknown to the caller's snapshot.
type ProjectStatusLookup func(id uuid.UUID) (project.Status, bool)

// RecognitionPolicy maps ledger events to profit & loss buckets. Rules
// are checked in order and the first match wins.
type RecognitionPolicy struct{}

// NewRecognitionPolicy creates a new RecognitionPolicy
func NewRecognitionPolicy() *RecognitionPolicy {
	return &RecognitionPolicy{}
}

// ClassifyTransaction decides the bucket for a ledger transaction.
// Project income follows the project's status at report time: the same
// stored row moves from unearned to realized when the project
// completes, with no rewrite of history.
func (p *RecognitionPolicy) ClassifyTransaction(t *Transaction, status ProjectStatusLookup) Bucket {
	switch {
	case t.IsSettlement():
		return BucketSettlement
	case t.Kind == TransactionKindDebtTaken || t.Kind == TransactionKindDebtRepaid:
		return BucketDebtMovement
	case t.Kind.IsTransfer():
		return BucketTransfer
	case t.Kind == TransactionKindIncome && t.ProjectID != nil:
		if s, ok := status(*t.ProjectID); ok && s.IsCompleted() {
			return BucketRealizedRevenue
		}
		return BucketUnearnedRevenue
	case t.Kind == TransactionKindIncome:
		return BucketOtherIncome
	default:
		return BucketOperatingExpense
	}
}

// ClassifyExpense decides the bucket for an expense document from its
// stored category class
func (p *RecognitionPolicy) ClassifyExpense(e *Expense) Bucket {
	switch {
	case !e.Class.InProfitAndLoss():
		return BucketNonOperating
	case e.Class == ClassDirect:
		return BucketDirectCost
	default:
		return BucketOperatingExpense
	}
}

// ClassifyPayment decides the bucket for a project payment from the
// project's current status
func (p *RecognitionPolicy) ClassifyPayment(status project.Status) Bucket {
	if status.IsCompleted() {
		return BucketRealizedRevenue
	}
	return BucketUnearnedRevenue
}
