package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/inventory"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/infrastructure/persistence/models"
)

// itemSortFields whitelists sortable columns for item queries
var itemSortFields = map[string]bool{
	"created_at": true,
	"name":       true,
	"quantity":   true,
}

// GormItemRepository implements inventory.Repository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByIDForTenant finds an item by ID for a specific tenant
func (r *GormItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Item, error) {
	var model models.ItemModel
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

// FindAllForTenant finds all items for a tenant with filtering
func (r *GormItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Item, error) {
	var itemModels []models.ItemModel
	query := r.db.WithContext(ctx).Model(&models.ItemModel{}).
		Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	query = ApplyFilter(query, filter, itemSortFields)

	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]inventory.Item, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	model := models.ItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// SumValueForTenant returns the total stock value, sum of quantity x
// purchase price over all items
func (r *GormItemRepository) SumValueForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.ItemModel{}).
		Select("COALESCE(SUM(quantity * purchase_price), 0) as total").
		Where("tenant_id = ?", tenantID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

var _ inventory.Repository = (*GormItemRepository)(nil)
