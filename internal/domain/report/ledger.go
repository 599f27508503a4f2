package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerDimension selects which aggregate line a drill-down ledger
// explains.
type LedgerDimension string

const (
	DimensionAccount   LedgerDimension = "ACCOUNT"
	DimensionCategory  LedgerDimension = "CATEGORY"
	DimensionProject   LedgerDimension = "PROJECT"
	DimensionAsset     LedgerDimension = "ASSET"
	DimensionInventory LedgerDimension = "INVENTORY"
)

// IsValid checks if the dimension is a known LedgerDimension
func (d LedgerDimension) IsValid() bool {
	switch d {
	case DimensionAccount, DimensionCategory, DimensionProject, DimensionAsset, DimensionInventory:
		return true
	}
	return false
}

// LedgerRow is one contributing event in a drill-down ledger. Debit
// increases the dimension's value, credit decreases it; RunningBalance
// is the fold over the date-ordered rows.
type LedgerRow struct {
	Date           time.Time       `json:"date"`
	EventID        uuid.UUID       `json:"event_id"`
	EventType      string          `json:"event_type"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// Ledger is the ordered, running-balance event list underlying a single
// aggregate report line. Row order is total: by date, then by event ID
// to break ties, so two runs over the same data are identical.
type Ledger struct {
	TenantID       uuid.UUID       `json:"tenant_id"`
	Dimension      LedgerDimension `json:"dimension"`
	ReferenceID    string          `json:"reference_id"`
	Period         DateRange       `json:"period"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Rows           []LedgerRow     `json:"rows"`
}

// ReceivableLine is one entity's outstanding receivable.
type ReceivableLine struct {
	EntityID   uuid.UUID       `json:"entity_id"`
	EntityKind string          `json:"entity_kind"` // PROJECT or CUSTOMER
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
}

// PayableLine is one entity's outstanding payable.
type PayableLine struct {
	EntityID   uuid.UUID       `json:"entity_id"`
	EntityKind string          `json:"entity_kind"` // EXPENSE or VENDOR
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
}

// ReceivablesPayables is the combined outstanding-balances report.
type ReceivablesPayables struct {
	TenantID         uuid.UUID        `json:"tenant_id"`
	AsOf             time.Time        `json:"as_of"`
	Receivables      []ReceivableLine `json:"receivables"`
	Payables         []PayableLine    `json:"payables"`
	TotalReceivables decimal.Decimal  `json:"total_receivables"`
	TotalPayables    decimal.Decimal  `json:"total_payables"`
}
