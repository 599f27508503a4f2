package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/finance"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/infrastructure/persistence/models"
)

// signedAmountExpr computes the signed effect of a transaction row on
// one account. Transfer legs take their sign from which side the
// account sits on; everything else takes it from the kind.
const signedAmountExpr = `CASE
	WHEN from_account_id = ? THEN -amount
	WHEN to_account_id = ? THEN amount
	WHEN kind IN ('INCOME', 'DEBT_REPAID') THEN amount
	ELSE -amount
END`

// touchesAccountExpr matches rows referencing an account on any side
const touchesAccountExpr = "account_id = ? OR from_account_id = ? OR to_account_id = ?"

// GormTransactionRepository implements finance.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByIDForTenant finds a transaction by ID for a specific tenant
func (r *GormTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create appends a new transaction to the event stream
func (r *GormTransactionRepository) Create(ctx context.Context, txn *finance.Transaction) error {
	model := models.TransactionModelFromDomain(txn)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates a transaction with optimistic locking. Only the
// reversal marker ever changes after the initial write.
func (r *GormTransactionRepository) Save(ctx context.Context, txn *finance.Transaction) error {
	model := models.TransactionModelFromDomain(txn)
	result := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]any{
			"reversed_at": model.ReversedAt,
			"version":     model.Version + 1,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	txn.IncrementVersion()
	return nil
}

// FindActiveInRange returns active transactions dated inside the
// inclusive range, ordered by date then id
func (r *GormTransactionRepository) FindActiveInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]finance.Transaction, error) {
	var txnModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reversed_at IS NULL AND date >= ? AND date <= ?", tenantID, from, to).
		Order("date ASC, id ASC").
		Find(&txnModels).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(txnModels), nil
}

// FindActiveByAccount returns active transactions touching the account
// on either side, including transfer legs, ordered by date then id
func (r *GormTransactionRepository) FindActiveByAccount(ctx context.Context, tenantID, accountID uuid.UUID, from, to time.Time) ([]finance.Transaction, error) {
	var txnModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reversed_at IS NULL AND date >= ? AND date <= ?", tenantID, from, to).
		Where(touchesAccountExpr, accountID, accountID, accountID).
		Order("date ASC, id ASC").
		Find(&txnModels).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(txnModels), nil
}

// FindActiveByProject returns active transactions for a project
// ordered by date then id
func (r *GormTransactionRepository) FindActiveByProject(ctx context.Context, tenantID, projectID uuid.UUID, from, to time.Time) ([]finance.Transaction, error) {
	var txnModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reversed_at IS NULL AND project_id = ? AND date >= ? AND date <= ?",
			tenantID, projectID, from, to).
		Order("date ASC, id ASC").
		Find(&txnModels).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(txnModels), nil
}

// FindActiveByExpense returns active settlement transactions linked to
// the expense
func (r *GormTransactionRepository) FindActiveByExpense(ctx context.Context, tenantID, expenseID uuid.UUID) ([]finance.Transaction, error) {
	var txnModels []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reversed_at IS NULL AND expense_id = ?", tenantID, expenseID).
		Order("date ASC, id ASC").
		Find(&txnModels).Error; err != nil {
		return nil, err
	}
	return toDomainTransactions(txnModels), nil
}

// SumSignedForAccount folds the signed amounts of all active
// transactions touching the account up to asOf
func (r *GormTransactionRepository) SumSignedForAccount(ctx context.Context, tenantID, accountID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select("COALESCE(SUM("+signedAmountExpr+"), 0) as total", accountID, accountID).
		Where("tenant_id = ? AND reversed_at IS NULL AND date <= ?", tenantID, asOf).
		Where(touchesAccountExpr, accountID, accountID, accountID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumPaidForExpense totals active settlement transactions linked to the expense
func (r *GormTransactionRepository) SumPaidForExpense(ctx context.Context, tenantID, expenseID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND reversed_at IS NULL AND expense_id = ?", tenantID, expenseID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// PaidByExpense returns the active settlement total per expense up to asOf
func (r *GormTransactionRepository) PaidByExpense(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]finance.ExpensePaid, error) {
	var rows []struct {
		ExpenseID uuid.UUID
		Paid      decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select("expense_id, COALESCE(SUM(amount), 0) as paid").
		Where("tenant_id = ? AND reversed_at IS NULL AND expense_id IS NOT NULL AND date <= ?", tenantID, asOf).
		Group("expense_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]finance.ExpensePaid, len(rows))
	for i, row := range rows {
		out[i] = finance.ExpensePaid{ExpenseID: row.ExpenseID, Paid: row.Paid}
	}
	return out, nil
}

// DebtByCustomer aggregates debt movements per customer up to asOf.
// Non-project INCOME attributed to a customer counts toward repayment.
func (r *GormTransactionRepository) DebtByCustomer(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]finance.PartyDebt, error) {
	var rows []partyDebtRow
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select(`customer_id as party_id,
			COALESCE(SUM(CASE WHEN kind = 'DEBT_TAKEN' THEN amount ELSE 0 END), 0) as taken,
			COALESCE(SUM(CASE WHEN kind = 'DEBT_REPAID' THEN amount ELSE 0 END), 0) as repaid,
			COALESCE(SUM(CASE WHEN kind = 'INCOME' AND project_id IS NULL THEN amount ELSE 0 END), 0) as income`).
		Where("tenant_id = ? AND reversed_at IS NULL AND customer_id IS NOT NULL AND date <= ?", tenantID, asOf).
		Group("customer_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toPartyDebts(rows), nil
}

// DebtByVendor aggregates debt movements per vendor up to asOf
func (r *GormTransactionRepository) DebtByVendor(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]finance.PartyDebt, error) {
	var rows []partyDebtRow
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Select(`vendor_id as party_id,
			COALESCE(SUM(CASE WHEN kind = 'DEBT_TAKEN' THEN amount ELSE 0 END), 0) as taken,
			COALESCE(SUM(CASE WHEN kind = 'DEBT_REPAID' THEN amount ELSE 0 END), 0) as repaid,
			0 as income`).
		Where("tenant_id = ? AND reversed_at IS NULL AND vendor_id IS NOT NULL AND date <= ?", tenantID, asOf).
		Group("vendor_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toPartyDebts(rows), nil
}

// HasActiveForAccount reports whether any active transaction still
// references the account
func (r *GormTransactionRepository) HasActiveForAccount(ctx context.Context, tenantID, accountID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("tenant_id = ? AND reversed_at IS NULL", tenantID).
		Where(touchesAccountExpr, accountID, accountID, accountID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type partyDebtRow struct {
	PartyID uuid.UUID
	Taken   decimal.Decimal
	Repaid  decimal.Decimal
	Income  decimal.Decimal
}

func toPartyDebts(rows []partyDebtRow) []finance.PartyDebt {
	out := make([]finance.PartyDebt, len(rows))
	for i, row := range rows {
		out[i] = finance.PartyDebt{
			PartyID: row.PartyID,
			Taken:   row.Taken,
			Repaid:  row.Repaid,
			Income:  row.Income,
		}
	}
	return out
}

func toDomainTransactions(txnModels []models.TransactionModel) []finance.Transaction {
	txns := make([]finance.Transaction, len(txnModels))
	for i, model := range txnModels {
		txns[i] = *model.ToDomain()
	}
	return txns
}

var _ finance.TransactionRepository = (*GormTransactionRepository)(nil)
