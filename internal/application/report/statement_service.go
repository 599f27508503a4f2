package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/finance"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/inventory"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/project"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/report"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// StatementService assembles financial statements from the event
// stream. Every figure is recomputed from active events at call time;
// nothing here writes.
type StatementService struct {
	accounts     finance.AccountRepository
	transactions finance.TransactionRepository
	expenses     finance.ExpenseRepository
	payments     finance.PaymentRepository
	fixedAssets  finance.FixedAssetRepository
	projects     project.Repository
	items        inventory.Repository
	settlements  *finance.SettlementResolver
	recognition  *finance.RecognitionPolicy
	consistency  *finance.ConsistencyChecker
	logger       *zap.Logger

	// maxLedgerRows caps drill-down ledgers; 0 means unbounded
	maxLedgerRows int
}

// NewStatementService creates a new StatementService
func NewStatementService(
	accounts finance.AccountRepository,
	transactions finance.TransactionRepository,
	expenses finance.ExpenseRepository,
	payments finance.PaymentRepository,
	fixedAssets finance.FixedAssetRepository,
	projects project.Repository,
	items inventory.Repository,
	settlements *finance.SettlementResolver,
	logger *zap.Logger,
) *StatementService {
	return &StatementService{
		accounts:     accounts,
		transactions: transactions,
		expenses:     expenses,
		payments:     payments,
		fixedAssets:  fixedAssets,
		projects:     projects,
		items:        items,
		settlements:  settlements,
		recognition:  finance.NewRecognitionPolicy(),
		consistency:  finance.NewConsistencyChecker(),
		logger:       logger,
	}
}

// SetMaxLedgerRows caps the number of rows a drill-down ledger returns.
// Oldest rows beyond the cap are folded into the opening balance so the
// closing balance stays exact.
func (s *StatementService) SetMaxLedgerRows(n int) {
	s.maxLedgerRows = n
}

// ===================== Balance sheet =====================

// GetBalanceSheet assembles the statement of financial position as of
// the given instant. The accounting identity is checked and any
// variance lands in the Adjustment line, visibly.
func (s *StatementService) GetBalanceSheet(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (*report.BalanceSheet, error) {
	bs := &report.BalanceSheet{TenantID: tenantID, AsOf: asOf}

	cash, capital, err := s.accountSums(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	bs.CashAndBank = cash
	bs.Capital = capital

	_, receivables, err := s.settlements.Receivables(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	bs.AccountsReceivable = receivables

	inventoryValue, err := s.items.SumValueForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	bs.InventoryValue = inventoryValue

	fixedAssets, err := s.fixedAssets.SumBookValueAsOf(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	bs.FixedAssetsValue = fixedAssets

	_, payables, err := s.settlements.Payables(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	bs.AccountsPayable = payables

	unearned, err := s.unearnedRevenue(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	bs.UnearnedRevenue = unearned

	drawings, err := s.expenses.SumByClassAsOf(ctx, tenantID, finance.ClassDrawing, asOf)
	if err != nil {
		return nil, err
	}
	bs.OwnerDrawings = drawings

	sinceInception, err := report.NewDateRange(finance.InceptionDate, asOf)
	if err != nil {
		return nil, err
	}
	pnl, err := s.GetProfitAndLoss(ctx, tenantID, sinceInception)
	if err != nil {
		return nil, err
	}
	bs.RetainedEarnings = pnl.NetProfit
	bs.RetainedEarningsAfterDrawings = pnl.NetProfit.Sub(drawings)

	s.consistency.Annotate(bs)
	if !bs.Balanced {
		s.logger.Warn("Balance sheet variance",
			zap.String("tenant_id", tenantID.String()),
			zap.String("adjustment", bs.Adjustment.String()))
	}
	return bs, nil
}

// accountSums folds the event stream per account: cash-like kinds feed
// the cash & bank line, EQUITY kinds feed capital. As-of figures come
// from date-bounded sums, not the cached balance.
func (s *StatementService) accountSums(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (cash, capital decimal.Decimal, err error) {
	cash, err = s.sumAccountKinds(ctx, tenantID, finance.CashLikeKinds(), asOf)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	capital, err = s.sumAccountKinds(ctx, tenantID, []finance.AccountKind{finance.AccountKindEquity}, asOf)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return cash, capital, nil
}

func (s *StatementService) sumAccountKinds(ctx context.Context, tenantID uuid.UUID, kinds []finance.AccountKind, asOf time.Time) (decimal.Decimal, error) {
	accounts, err := s.accounts.FindByKindsForTenant(ctx, tenantID, kinds)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range accounts {
		sum, err := s.transactions.SumSignedForAccount(ctx, tenantID, accounts[i].ID, asOf)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(sum)
	}
	return total, nil
}

// unearnedRevenue totals the liability for money received on projects
// that are not yet completed: the advance plus all payments.
func (s *StatementService) unearnedRevenue(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	open, err := s.projects.FindByStatusAsOf(ctx, tenantID, []project.Status{
		project.StatusActive, project.StatusOnHold, project.StatusCancelled,
	}, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	paid, err := s.payments.SumByProjectAsOf(ctx, tenantID, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	paidByProject := make(map[uuid.UUID]decimal.Decimal, len(paid))
	for _, row := range paid {
		paidByProject[row.ProjectID] = row.Total
	}

	total := decimal.Zero
	for i := range open {
		p := &open[i]
		total = total.Add(p.AdvancePaid).Add(paidByProject[p.ID])
	}
	return total, nil
}

// ===================== Profit & loss =====================

// GetProfitAndLossPreset resolves a named period and builds the income
// statement for it
func (s *StatementService) GetProfitAndLossPreset(ctx context.Context, tenantID uuid.UUID, preset report.RangePreset, now time.Time) (*report.ProfitLoss, error) {
	period, err := report.ResolvePreset(preset, now)
	if err != nil {
		return nil, err
	}
	return s.GetProfitAndLoss(ctx, tenantID, period)
}

// GetProfitAndLoss builds the income statement for a period. Each
// active event is routed through the recognition policy; only realized
// revenue, other income, direct costs and operating expenses enter.
func (s *StatementService) GetProfitAndLoss(ctx context.Context, tenantID uuid.UUID, period report.DateRange) (*report.ProfitLoss, error) {
	pnl := &report.ProfitLoss{TenantID: tenantID, Period: period}
	pnl.RealizedRevenue = decimal.Zero
	pnl.OtherIncome = decimal.Zero
	pnl.DirectCosts = decimal.Zero
	pnl.OperatingExpenses = decimal.Zero

	statusLookup, projectsByID, err := s.projectStatuses(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactions.FindActiveInRange(ctx, tenantID, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	for i := range transactions {
		txn := &transactions[i]
		switch s.recognition.ClassifyTransaction(txn, statusLookup) {
		case finance.BucketRealizedRevenue:
			pnl.RealizedRevenue = pnl.RealizedRevenue.Add(txn.Amount)
		case finance.BucketOtherIncome:
			pnl.OtherIncome = pnl.OtherIncome.Add(txn.Amount)
		case finance.BucketOperatingExpense:
			pnl.OperatingExpenses = pnl.OperatingExpenses.Add(txn.Amount)
		}
	}

	// The advance of a completed project is recognized at its
	// agreement date.
	for _, p := range projectsByID {
		if p.Status.IsCompleted() && period.Contains(p.AgreementDate) {
			pnl.RealizedRevenue = pnl.RealizedRevenue.Add(p.AdvancePaid)
		}
	}

	expenses, err := s.expenses.FindActiveInRange(ctx, tenantID, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[string]decimal.Decimal)
	for i := range expenses {
		exp := &expenses[i]
		switch s.recognition.ClassifyExpense(exp) {
		case finance.BucketDirectCost:
			pnl.DirectCosts = pnl.DirectCosts.Add(exp.Amount)
			byCategory[exp.Category] = byCategory[exp.Category].Add(exp.Amount)
		case finance.BucketOperatingExpense:
			pnl.OperatingExpenses = pnl.OperatingExpenses.Add(exp.Amount)
			byCategory[exp.Category] = byCategory[exp.Category].Add(exp.Amount)
		}
	}

	pnl.TotalIncome = pnl.RealizedRevenue.Add(pnl.OtherIncome)
	pnl.GrossProfit = pnl.TotalIncome.Sub(pnl.DirectCosts)
	pnl.NetProfit = pnl.GrossProfit.Sub(pnl.OperatingExpenses)

	pnl.ExpenseByCategory = make([]report.CategoryAmount, 0, len(byCategory))
	for category, amount := range byCategory {
		pnl.ExpenseByCategory = append(pnl.ExpenseByCategory, report.CategoryAmount{
			Category: category,
			Amount:   amount,
		})
	}
	sort.Slice(pnl.ExpenseByCategory, func(i, j int) bool {
		return pnl.ExpenseByCategory[i].Category < pnl.ExpenseByCategory[j].Category
	})

	return pnl, nil
}

func (s *StatementService) projectStatuses(ctx context.Context, tenantID uuid.UUID) (finance.ProjectStatusLookup, map[uuid.UUID]*project.Project, error) {
	all, err := s.projects.FindAllForTenant(ctx, tenantID, shared.DefaultFilter())
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[uuid.UUID]*project.Project, len(all))
	for i := range all {
		byID[all[i].ID] = &all[i]
	}
	lookup := func(id uuid.UUID) (project.Status, bool) {
		p, ok := byID[id]
		if !ok {
			return "", false
		}
		return p.Status, true
	}
	return lookup, byID, nil
}

// ===================== Ledger drill-down =====================

// GetLedger builds the ordered, running-balance event list behind one
// aggregate line. Rows are ordered by date, then event id, so repeated
// runs over the same data are identical.
func (s *StatementService) GetLedger(ctx context.Context, tenantID uuid.UUID, dimension report.LedgerDimension, referenceID uuid.UUID, period report.DateRange) (*report.Ledger, error) {
	if !dimension.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIMENSION", "Unknown ledger dimension")
	}

	ledger := &report.Ledger{
		TenantID:    tenantID,
		Dimension:   dimension,
		ReferenceID: referenceID.String(),
		Period:      period,
	}

	var rows []report.LedgerRow
	var opening decimal.Decimal
	var err error

	switch dimension {
	case report.DimensionAccount:
		opening, rows, err = s.accountLedger(ctx, tenantID, referenceID, period)
	case report.DimensionProject:
		opening, rows, err = s.projectLedger(ctx, tenantID, referenceID, period)
	case report.DimensionCategory:
		opening, rows, err = s.categoryLedger(ctx, tenantID, referenceID, period)
	case report.DimensionAsset:
		opening, rows, err = s.assetLedger(ctx, tenantID, referenceID, period)
	case report.DimensionInventory:
		opening, rows, err = s.inventoryLedger(ctx, tenantID, referenceID, period)
	}
	if err != nil {
		return nil, err
	}

	ledger.Rows, ledger.OpeningBalance = s.capRows(fold(opening, rows), opening)
	ledger.ClosingBalance = ledger.OpeningBalance
	if len(ledger.Rows) > 0 {
		ledger.ClosingBalance = ledger.Rows[len(ledger.Rows)-1].RunningBalance
	}
	return ledger, nil
}

// capRows enforces the configured row cap. The oldest overflow rows are
// folded into the opening balance so the closing balance stays exact.
func (s *StatementService) capRows(rows []report.LedgerRow, opening decimal.Decimal) ([]report.LedgerRow, decimal.Decimal) {
	if s.maxLedgerRows <= 0 || len(rows) <= s.maxLedgerRows {
		return rows, opening
	}
	cut := len(rows) - s.maxLedgerRows
	return rows[cut:], rows[cut-1].RunningBalance
}

// fold orders rows by date then event id and computes running balances
func fold(opening decimal.Decimal, rows []report.LedgerRow) []report.LedgerRow {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].EventID.String() < rows[j].EventID.String()
	})
	running := opening
	for i := range rows {
		running = running.Add(rows[i].Debit).Sub(rows[i].Credit)
		rows[i].RunningBalance = running
	}
	return rows
}

func (s *StatementService) accountLedger(ctx context.Context, tenantID, accountID uuid.UUID, period report.DateRange) (decimal.Decimal, []report.LedgerRow, error) {
	opening, err := s.transactions.SumSignedForAccount(ctx, tenantID, accountID, period.Start.Add(-time.Nanosecond))
	if err != nil {
		return decimal.Zero, nil, err
	}
	transactions, err := s.transactions.FindActiveByAccount(ctx, tenantID, accountID, period.Start, period.End)
	if err != nil {
		return decimal.Zero, nil, err
	}

	rows := make([]report.LedgerRow, 0, len(transactions))
	for i := range transactions {
		txn := &transactions[i]
		delta := txn.SignedAmount()
		if txn.Kind.IsTransfer() {
			// The side the account sits on decides the direction.
			if txn.FromAccountID != nil && *txn.FromAccountID == accountID {
				delta = txn.Amount.Neg()
			} else {
				delta = txn.Amount
			}
		}
		rows = append(rows, ledgerRow(txn.Date, txn.ID, txn.Kind.String(), txn.Description, delta))
	}
	return opening, rows, nil
}

func (s *StatementService) projectLedger(ctx context.Context, tenantID, projectID uuid.UUID, period report.DateRange) (decimal.Decimal, []report.LedgerRow, error) {
	var rows []report.LedgerRow

	transactions, err := s.transactions.FindActiveByProject(ctx, tenantID, projectID, period.Start, period.End)
	if err != nil {
		return decimal.Zero, nil, err
	}
	for i := range transactions {
		txn := &transactions[i]
		rows = append(rows, ledgerRow(txn.Date, txn.ID, txn.Kind.String(), txn.Description, txn.SignedAmount()))
	}

	expenses, err := s.expenses.FindActiveByProject(ctx, tenantID, projectID, period.Start, period.End)
	if err != nil {
		return decimal.Zero, nil, err
	}
	for i := range expenses {
		exp := &expenses[i]
		rows = append(rows, ledgerRow(exp.Date, exp.ID, "EXPENSE_DOC", exp.Description, exp.Amount.Neg()))
	}

	return decimal.Zero, rows, nil
}

func (s *StatementService) categoryLedger(ctx context.Context, tenantID, _ uuid.UUID, period report.DateRange) (decimal.Decimal, []report.LedgerRow, error) {
	return decimal.Zero, nil, shared.NewDomainError("INVALID_DIMENSION", "Category ledgers are addressed by name, use GetCategoryLedger")
}

// GetCategoryLedger builds the drill-down for one expense category,
// addressed by its name rather than an id
func (s *StatementService) GetCategoryLedger(ctx context.Context, tenantID uuid.UUID, category string, period report.DateRange) (*report.Ledger, error) {
	expenses, err := s.expenses.FindActiveByCategory(ctx, tenantID, category, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	rows := make([]report.LedgerRow, 0, len(expenses))
	for i := range expenses {
		exp := &expenses[i]
		rows = append(rows, ledgerRow(exp.Date, exp.ID, "EXPENSE_DOC", exp.Description, exp.Amount))
	}

	ledger := &report.Ledger{
		TenantID:    tenantID,
		Dimension:   report.DimensionCategory,
		ReferenceID: category,
		Period:      period,
	}
	ledger.Rows, ledger.OpeningBalance = s.capRows(fold(decimal.Zero, rows), decimal.Zero)
	ledger.ClosingBalance = ledger.OpeningBalance
	if len(ledger.Rows) > 0 {
		ledger.ClosingBalance = ledger.Rows[len(ledger.Rows)-1].RunningBalance
	}
	return ledger, nil
}

func (s *StatementService) assetLedger(ctx context.Context, tenantID, _ uuid.UUID, period report.DateRange) (decimal.Decimal, []report.LedgerRow, error) {
	assets, err := s.fixedAssets.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	opening := decimal.Zero
	var rows []report.LedgerRow
	for i := range assets {
		asset := &assets[i]
		if asset.PurchaseDate.Before(period.Start) {
			opening = opening.Add(asset.BookValue)
			continue
		}
		if period.Contains(asset.PurchaseDate) {
			rows = append(rows, ledgerRow(asset.PurchaseDate, asset.ID, "FIXED_ASSET", asset.Name, asset.BookValue))
		}
	}
	return opening, rows, nil
}

func (s *StatementService) inventoryLedger(ctx context.Context, tenantID, _ uuid.UUID, period report.DateRange) (decimal.Decimal, []report.LedgerRow, error) {
	items, err := s.items.FindAllForTenant(ctx, tenantID, shared.DefaultFilter())
	if err != nil {
		return decimal.Zero, nil, err
	}
	opening := decimal.Zero
	var rows []report.LedgerRow
	for i := range items {
		item := &items[i]
		if item.CreatedAt.Before(period.Start) {
			opening = opening.Add(item.Value())
			continue
		}
		if period.Contains(item.CreatedAt) {
			rows = append(rows, ledgerRow(item.CreatedAt, item.ID, "INVENTORY_ITEM", item.Name, item.Value()))
		}
	}
	return opening, rows, nil
}

func ledgerRow(date time.Time, id uuid.UUID, eventType, description string, delta decimal.Decimal) report.LedgerRow {
	row := report.LedgerRow{
		Date:        date,
		EventID:     id,
		EventType:   eventType,
		Description: description,
	}
	if delta.IsNegative() {
		row.Credit = delta.Neg()
		row.Debit = decimal.Zero
	} else {
		row.Debit = delta
		row.Credit = decimal.Zero
	}
	return row
}

// ===================== Receivables / payables =====================

// GetReceivablesPayables builds the combined outstanding-balances report
func (s *StatementService) GetReceivablesPayables(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (*report.ReceivablesPayables, error) {
	return s.settlements.Resolve(ctx, tenantID, asOf)
}
