package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// Repository defines the interface for inventory item persistence
type Repository interface {
	// FindByIDForTenant finds an item by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Item, error)

	// FindAllForTenant finds all items for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// SumValueForTenant returns the total stock value, sum of quantity x
	// purchase price over all items
	SumValueForTenant(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
}
