package models

import (
	"github.com/shopspring/decimal"

	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/inventory"
)

// ItemModel is the persistence model for the inventory Item aggregate root.
type ItemModel struct {
	TenantAggregateModel
	Name          string          `gorm:"type:varchar(200);not null;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(20,4);not null"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item entity.
func (m *ItemModel) ToDomain() *inventory.Item {
	return &inventory.Item{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Quantity:            m.Quantity,
		PurchasePrice:       m.PurchasePrice,
	}
}

// FromDomain populates the persistence model from a domain Item entity.
func (m *ItemModel) FromDomain(i *inventory.Item) {
	m.FromDomainTenantAggregateRoot(i.TenantAggregateRoot)
	m.Name = i.Name
	m.Quantity = i.Quantity
	m.PurchasePrice = i.PurchasePrice
}

// ItemModelFromDomain creates a new persistence model from a domain Item.
func ItemModelFromDomain(i *inventory.Item) *ItemModel {
	m := &ItemModel{}
	m.FromDomain(i)
	return m
}
