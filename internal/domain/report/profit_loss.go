package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfitLoss is the income statement for a period. Lines map one to one
// onto the recognition buckets: realized revenue and other income on the
// credit side, direct project costs and operating expenses on the debit
// side. Unearned revenue, debt movements, transfers, capitalized assets
// and non-operating outflows never appear here.
type ProfitLoss struct {
	TenantID    uuid.UUID `json:"tenant_id"`
	Period      DateRange `json:"period"`

	RealizedRevenue   decimal.Decimal `json:"realized_revenue"`
	OtherIncome       decimal.Decimal `json:"other_income"`
	TotalIncome       decimal.Decimal `json:"total_income"`
	DirectCosts       decimal.Decimal `json:"direct_costs"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	NetProfit         decimal.Decimal `json:"net_profit"`

	ExpenseByCategory []CategoryAmount `json:"expense_by_category"`
}

// CategoryAmount is a per-category expense subtotal for the P&L breakdown.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}
