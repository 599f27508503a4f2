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

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByIDForTenant finds an expense by ID for a specific tenant
func (r *GormExpenseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
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

// Create inserts a new expense
func (r *GormExpenseRepository) Create(ctx context.Context, expense *finance.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates an expense with optimistic locking
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	result := r.db.WithContext(ctx).
		Model(&models.ExpenseModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]any{
			"payment_status": model.PaymentStatus,
			"reversed_at":    model.ReversedAt,
			"version":        model.Version + 1,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	expense.IncrementVersion()
	return nil
}

// ExistsForTenant reports whether an expense exists for the tenant
func (r *GormExpenseRepository) ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindActiveInRange returns active expenses dated inside the inclusive
// range, ordered by date then id
func (r *GormExpenseRepository) FindActiveInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reversed_at IS NULL AND date >= ? AND date <= ?", tenantID, from, to).
		Order("date ASC, id ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toDomainExpenses(expenseModels), nil
}

// FindActiveByProject returns active expenses for a project ordered by
// date then id
func (r *GormExpenseRepository) FindActiveByProject(ctx context.Context, tenantID, projectID uuid.UUID, from, to time.Time) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reversed_at IS NULL AND project_id = ? AND date >= ? AND date <= ?",
			tenantID, projectID, from, to).
		Order("date ASC, id ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toDomainExpenses(expenseModels), nil
}

// FindActiveByCategory returns active expenses of one category ordered
// by date then id
func (r *GormExpenseRepository) FindActiveByCategory(ctx context.Context, tenantID uuid.UUID, category string, from, to time.Time) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reversed_at IS NULL AND category = ? AND date >= ? AND date <= ?",
			tenantID, category, from, to).
		Order("date ASC, id ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toDomainExpenses(expenseModels), nil
}

// FindActiveAsOf returns all active expenses dated up to asOf
func (r *GormExpenseRepository) FindActiveAsOf(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reversed_at IS NULL AND date <= ?", tenantID, asOf).
		Order("date ASC, id ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	return toDomainExpenses(expenseModels), nil
}

// SumByClassAsOf totals active expenses of one class up to asOf
func (r *GormExpenseRepository) SumByClassAsOf(ctx context.Context, tenantID uuid.UUID, class finance.CategoryClass, asOf time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND reversed_at IS NULL AND class = ? AND date <= ?", tenantID, class, asOf).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func toDomainExpenses(expenseModels []models.ExpenseModel) []finance.Expense {
	expenses := make([]finance.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses
}

var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
