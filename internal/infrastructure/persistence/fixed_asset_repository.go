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

// GormFixedAssetRepository implements finance.FixedAssetRepository using GORM
type GormFixedAssetRepository struct {
	db *gorm.DB
}

// NewGormFixedAssetRepository creates a new GormFixedAssetRepository
func NewGormFixedAssetRepository(db *gorm.DB) *GormFixedAssetRepository {
	return &GormFixedAssetRepository{db: db}
}

// FindByIDForTenant finds a fixed asset by ID for a specific tenant
func (r *GormFixedAssetRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.FixedAsset, error) {
	var model models.FixedAssetModel
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

// FindAllForTenant finds all fixed assets for a tenant
func (r *GormFixedAssetRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]finance.FixedAsset, error) {
	var assetModels []models.FixedAssetModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("purchase_date ASC, id ASC").
		Find(&assetModels).Error; err != nil {
		return nil, err
	}
	assets := make([]finance.FixedAsset, len(assetModels))
	for i, model := range assetModels {
		assets[i] = *model.ToDomain()
	}
	return assets, nil
}

// Create inserts a new fixed asset
func (r *GormFixedAssetRepository) Create(ctx context.Context, asset *finance.FixedAsset) error {
	model := models.FixedAssetModelFromDomain(asset)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates a fixed asset with optimistic locking
func (r *GormFixedAssetRepository) Save(ctx context.Context, asset *finance.FixedAsset) error {
	model := models.FixedAssetModelFromDomain(asset)
	result := r.db.WithContext(ctx).
		Model(&models.FixedAssetModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]any{
			"name":       model.Name,
			"book_value": model.BookValue,
			"version":    model.Version + 1,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	asset.IncrementVersion()
	return nil
}

// Delete removes a fixed asset for a tenant
func (r *GormFixedAssetRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.FixedAssetModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumBookValueAsOf totals book value of assets purchased up to asOf
func (r *GormFixedAssetRepository) SumBookValueAsOf(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.FixedAssetModel{}).
		Select("COALESCE(SUM(book_value), 0) as total").
		Where("tenant_id = ? AND purchase_date <= ?", tenantID, asOf).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

var _ finance.FixedAssetRepository = (*GormFixedAssetRepository)(nil)
