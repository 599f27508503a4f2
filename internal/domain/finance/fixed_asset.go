package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// FixedAsset represents a long-lived asset held at book value. Book
// value feeds the balance sheet's fixed asset line; accumulated
// depreciation is the gap between purchase value and book value.
type FixedAsset struct {
	shared.TenantAggregateRoot
	Name          string          `json:"name"`
	PurchaseValue decimal.Decimal `json:"purchase_value"`
	BookValue     decimal.Decimal `json:"book_value"`
	PurchaseDate  time.Time       `json:"purchase_date"`
}

// NewFixedAsset creates a new fixed asset carried at its purchase value
func NewFixedAsset(tenantID uuid.UUID, name string, purchaseValue decimal.Decimal, purchaseDate time.Time) (*FixedAsset, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Fixed asset name cannot be empty")
	}
	if !purchaseValue.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Fixed asset purchase value must be positive")
	}
	if purchaseDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Fixed asset purchase date is required")
	}

	return &FixedAsset{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		PurchaseValue:       purchaseValue,
		BookValue:           purchaseValue,
		PurchaseDate:        purchaseDate,
	}, nil
}

// Depreciate writes down the book value by the given amount
func (f *FixedAsset) Depreciate(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Depreciation amount must be positive")
	}
	if amount.GreaterThan(f.BookValue) {
		return shared.NewDomainError("INVALID_AMOUNT", "Depreciation cannot exceed the remaining book value")
	}
	f.BookValue = f.BookValue.Sub(amount)
	f.Touch()
	return nil
}

// AccumulatedDepreciation returns the total written down so far
func (f *FixedAsset) AccumulatedDepreciation() decimal.Decimal {
	return f.PurchaseValue.Sub(f.BookValue)
}
