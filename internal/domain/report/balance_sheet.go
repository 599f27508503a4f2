package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceSheet is a point-in-time statement of financial position.
// Assets must equal liabilities plus equity; when they do not, the
// unexplained difference is carried in Adjustment rather than being
// silently folded into another line.
type BalanceSheet struct {
	TenantID uuid.UUID `json:"tenant_id"`
	AsOf     time.Time `json:"as_of"`

	// Assets
	CashAndBank        decimal.Decimal `json:"cash_and_bank"`
	AccountsReceivable decimal.Decimal `json:"accounts_receivable"`
	InventoryValue     decimal.Decimal `json:"inventory_value"`
	FixedAssetsValue   decimal.Decimal `json:"fixed_assets_value"` // at book value
	TotalAssets        decimal.Decimal `json:"total_assets"`

	// Liabilities
	AccountsPayable  decimal.Decimal `json:"accounts_payable"`
	UnearnedRevenue  decimal.Decimal `json:"unearned_revenue"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`

	// Equity. Retained earnings are reported twice on purpose: the source
	// system computed them both gross and net of owner drawings, and the
	// two figures are kept side by side instead of picking one.
	Capital                       decimal.Decimal `json:"capital"`
	RetainedEarnings              decimal.Decimal `json:"retained_earnings"`
	RetainedEarningsAfterDrawings decimal.Decimal `json:"retained_earnings_after_drawings"`
	OwnerDrawings                 decimal.Decimal `json:"owner_drawings"`
	TotalEquity                   decimal.Decimal `json:"total_equity"`

	// Adjustment is TotalAssets - (TotalLiabilities + TotalEquity). A
	// non-zero value is a visible signal for the operator, not an error.
	Adjustment decimal.Decimal `json:"adjustment"`
	Balanced   bool            `json:"balanced"`
}

// AccountBalance is one account's contribution to the cash & bank line.
type AccountBalance struct {
	AccountID uuid.UUID       `json:"account_id"`
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Balance   decimal.Decimal `json:"balance"`
}
