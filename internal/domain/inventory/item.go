package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// Item represents a stocked product. Stock movements are owned by the
// surrounding CRUD layer; the ledger engine only reads the current
// quantity and purchase price to value inventory on the balance sheet.
type Item struct {
	shared.TenantAggregateRoot
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
}

// NewItem creates a new inventory item
func NewItem(tenantID uuid.UUID, name string, quantity, purchasePrice decimal.Decimal) (*Item, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if purchasePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}
	return &Item{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Quantity:            quantity,
		PurchasePrice:       purchasePrice,
	}, nil
}

// Value returns the balance-sheet value of the item: quantity x purchase price
func (i *Item) Value() decimal.Decimal {
	return i.Quantity.Mul(i.PurchasePrice)
}
