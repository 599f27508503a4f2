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

// GormPaymentRepository implements finance.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByIDForTenant finds a payment by ID for a specific tenant
func (r *GormPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Payment, error) {
	var model models.PaymentModel
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

// Create inserts a new payment
func (r *GormPaymentRepository) Create(ctx context.Context, payment *finance.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates a payment with optimistic locking
func (r *GormPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	result := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]any{
			"ledger_transaction_id": model.LedgerTransactionID,
			"reversed_at":           model.ReversedAt,
			"version":               model.Version + 1,
			"updated_at":            time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	payment.IncrementVersion()
	return nil
}

// FindActiveInRange returns active payments dated inside the inclusive
// range, ordered by date then id
func (r *GormPaymentRepository) FindActiveInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]finance.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reversed_at IS NULL AND date >= ? AND date <= ?", tenantID, from, to).
		Order("date ASC, id ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindActiveByProject returns active payments for a project ordered by
// date then id
func (r *GormPaymentRepository) FindActiveByProject(ctx context.Context, tenantID, projectID uuid.UUID, from, to time.Time) ([]finance.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND reversed_at IS NULL AND project_id = ? AND date >= ? AND date <= ?",
			tenantID, projectID, from, to).
		Order("date ASC, id ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// SumByProjectAsOf totals active payments per project up to asOf
func (r *GormPaymentRepository) SumByProjectAsOf(ctx context.Context, tenantID uuid.UUID, asOf time.Time) ([]finance.ProjectPaid, error) {
	var rows []struct {
		ProjectID uuid.UUID
		Total     decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Select("project_id, COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND reversed_at IS NULL AND date <= ?", tenantID, asOf).
		Group("project_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]finance.ProjectPaid, len(rows))
	for i, row := range rows {
		out[i] = finance.ProjectPaid{ProjectID: row.ProjectID, Total: row.Total}
	}
	return out, nil
}

func toDomainPayments(paymentModels []models.PaymentModel) []finance.Payment {
	payments := make([]finance.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments
}

var _ finance.PaymentRepository = (*GormPaymentRepository)(nil)
