package finance

import (
	"github.com/shopspring/decimal"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/report"
)

// ConsistencyChecker verifies the accounting identity on an assembled
// balance sheet. Variance is surfaced as an explicit adjustment line;
// it is never folded into another figure and never an error.
type ConsistencyChecker struct{}

// NewConsistencyChecker creates a new ConsistencyChecker
func NewConsistencyChecker() *ConsistencyChecker {
	return &ConsistencyChecker{}
}

// Variance returns assets minus liabilities plus equity
func (c *ConsistencyChecker) Variance(assets, liabilities, equity decimal.Decimal) decimal.Decimal {
	return assets.Sub(liabilities.Add(equity))
}

// Annotate computes the totals and the adjustment line of a balance
// sheet whose component figures are already filled in
func (c *ConsistencyChecker) Annotate(bs *report.BalanceSheet) {
	bs.TotalAssets = bs.CashAndBank.
		Add(bs.AccountsReceivable).
		Add(bs.InventoryValue).
		Add(bs.FixedAssetsValue)
	bs.TotalLiabilities = bs.AccountsPayable.Add(bs.UnearnedRevenue)
	bs.TotalEquity = bs.Capital.Add(bs.RetainedEarningsAfterDrawings)
	bs.Adjustment = c.Variance(bs.TotalAssets, bs.TotalLiabilities, bs.TotalEquity)
	bs.Balanced = bs.Adjustment.IsZero()
}
