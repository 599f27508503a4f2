package finance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/finance"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// conflictRetries bounds how often a write is retried after losing an
// optimistic-lock race. Only transient conflicts are retried; every
// other error aborts immediately.
const conflictRetries = 3

// LedgerService coordinates event-store writes: dimension resolution,
// the event write and its balance adjustment run as one unit.
type LedgerService struct {
	scope      LedgerTransactionScope
	resolver   *finance.DimensionResolver
	maintainer *finance.BalanceMaintainer
	logger     *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	scope LedgerTransactionScope,
	resolver *finance.DimensionResolver,
	maintainer *finance.BalanceMaintainer,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		scope:      scope,
		resolver:   resolver,
		maintainer: maintainer,
		logger:     logger,
	}
}

// ===================== Requests and responses =====================

// PostTransactionRequest represents a request to post a ledger transaction
type PostTransactionRequest struct {
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Kind          string          `json:"kind" binding:"required,txn_kind"`
	Date          time.Time       `json:"date" binding:"required"`
	AccountID     *uuid.UUID      `json:"account_id,omitempty"`
	FromAccountID *uuid.UUID      `json:"from_account_id,omitempty"`
	ToAccountID   *uuid.UUID      `json:"to_account_id,omitempty"`
	ProjectID     *uuid.UUID      `json:"project_id,omitempty"`
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
	VendorID      *uuid.UUID      `json:"vendor_id,omitempty"`
	EmployeeID    *uuid.UUID      `json:"employee_id,omitempty"`
	ExpenseID     *uuid.UUID      `json:"expense_id,omitempty"`
}

// TransactionResponse represents a ledger transaction in API responses
type TransactionResponse struct {
	ID            uuid.UUID       `json:"id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	SignedAmount  decimal.Decimal `json:"signed_amount"`
	Kind          string          `json:"kind"`
	Date          time.Time       `json:"date"`
	AccountID     *uuid.UUID      `json:"account_id,omitempty"`
	FromAccountID *uuid.UUID      `json:"from_account_id,omitempty"`
	ToAccountID   *uuid.UUID      `json:"to_account_id,omitempty"`
	ProjectID     *uuid.UUID      `json:"project_id,omitempty"`
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
	VendorID      *uuid.UUID      `json:"vendor_id,omitempty"`
	EmployeeID    *uuid.UUID      `json:"employee_id,omitempty"`
	ExpenseID     *uuid.UUID      `json:"expense_id,omitempty"`
	ReversedAt    *time.Time      `json:"reversed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PostExpenseRequest represents a request to record an expense document
type PostExpenseRequest struct {
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Category          string          `json:"category" binding:"required"`
	Subcategory       string          `json:"subcategory"`
	Date              time.Time       `json:"date" binding:"required"`
	PaidFromAccountID *uuid.UUID      `json:"paid_from_account_id,omitempty"`
	ProjectID         *uuid.UUID      `json:"project_id,omitempty"`
	VendorID          *uuid.UUID      `json:"vendor_id,omitempty"`
	CustomerID        *uuid.UUID      `json:"customer_id,omitempty"`
	EmployeeID        *uuid.UUID      `json:"employee_id,omitempty"`
	// PayNow settles the full amount from PaidFromAccountID in the
	// same unit of work.
	PayNow bool `json:"pay_now"`
}

// ExpenseResponse represents an expense document in API responses
type ExpenseResponse struct {
	ID                uuid.UUID       `json:"id"`
	TenantID          uuid.UUID       `json:"tenant_id"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	Category          string          `json:"category"`
	Subcategory       string          `json:"subcategory,omitempty"`
	Class             string          `json:"class"`
	Date              time.Time       `json:"date"`
	PaymentStatus     string          `json:"payment_status"`
	PaidFromAccountID *uuid.UUID      `json:"paid_from_account_id,omitempty"`
	ProjectID         *uuid.UUID      `json:"project_id,omitempty"`
	VendorID          *uuid.UUID      `json:"vendor_id,omitempty"`
	ReversedAt        *time.Time      `json:"reversed_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// SettleExpenseRequest represents a request to pay down an expense
type SettleExpenseRequest struct {
	AccountID uuid.UUID       `json:"account_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
}

// PostPaymentRequest represents a request to record a project payment
type PostPaymentRequest struct {
	ProjectID uuid.UUID       `json:"project_id" binding:"required"`
	AccountID uuid.UUID       `json:"account_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required,payment_method"`
	Date      time.Time       `json:"date" binding:"required"`
	Note      string          `json:"note"`
}

// PaymentResponse represents a project payment in API responses
type PaymentResponse struct {
	ID                  uuid.UUID       `json:"id"`
	TenantID            uuid.UUID       `json:"tenant_id"`
	ProjectID           uuid.UUID       `json:"project_id"`
	AccountID           uuid.UUID       `json:"account_id"`
	Amount              decimal.Decimal `json:"amount"`
	Method              string          `json:"method"`
	Date                time.Time       `json:"date"`
	Note                string          `json:"note,omitempty"`
	LedgerTransactionID *uuid.UUID      `json:"ledger_transaction_id,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

// RecomputeBalanceResponse reports a balance cache rebuild
type RecomputeBalanceResponse struct {
	AccountID uuid.UUID       `json:"account_id"`
	Previous  decimal.Decimal `json:"previous"`
	Computed  decimal.Decimal `json:"computed"`
	Drift     decimal.Decimal `json:"drift"`
}

// ===================== Transaction operations =====================

// PostTransaction validates, resolves references and writes a new
// transaction together with its balance effect
func (s *LedgerService) PostTransaction(ctx context.Context, tenantID uuid.UUID, req PostTransactionRequest) (*TransactionResponse, error) {
	txn, err := finance.NewTransaction(tenantID, req.Description, req.Amount, finance.TransactionKind(req.Kind), req.Date, finance.TransactionRefs{
		AccountID:     req.AccountID,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		ProjectID:     req.ProjectID,
		CustomerID:    req.CustomerID,
		VendorID:      req.VendorID,
		EmployeeID:    req.EmployeeID,
		ExpenseID:     req.ExpenseID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.resolver.Resolve(ctx, tenantID, txn.DimensionRefs()); err != nil {
		return nil, err
	}

	err = s.withRetry(ctx, func(repos LedgerRepositories) error {
		if err := repos.Transactions().Create(ctx, txn); err != nil {
			return err
		}
		if err := s.maintainer.Apply(ctx, repos.Accounts(), txn); err != nil {
			return err
		}
		if txn.IsSettlement() {
			return s.refreshExpenseStatus(ctx, repos, tenantID, *txn.ExpenseID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logEvents(txn.GetDomainEvents())
	txn.ClearDomainEvents()
	return toTransactionResponse(txn), nil
}

// ReverseTransaction soft-deletes a transaction and undoes its balance
// effect in the same unit of work
func (s *LedgerService) ReverseTransaction(ctx context.Context, tenantID, id uuid.UUID) (*TransactionResponse, error) {
	var reversed *finance.Transaction
	err := s.withRetry(ctx, func(repos LedgerRepositories) error {
		txn, err := repos.Transactions().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := txn.MarkReversed(time.Now()); err != nil {
			return err
		}
		if err := repos.Transactions().Save(ctx, txn); err != nil {
			return err
		}
		if err := s.maintainer.Reverse(ctx, repos.Accounts(), txn); err != nil {
			return err
		}
		if txn.IsSettlement() {
			if err := s.refreshExpenseStatus(ctx, repos, tenantID, *txn.ExpenseID); err != nil {
				return err
			}
		}
		reversed = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logEvents(reversed.GetDomainEvents())
	reversed.ClearDomainEvents()
	return toTransactionResponse(reversed), nil
}

// UpdateTransaction corrects a transaction by reversing the stored one
// and posting a replacement. The original stays in the store for audit
// and the replacement gets a fresh identity.
func (s *LedgerService) UpdateTransaction(ctx context.Context, tenantID, id uuid.UUID, req PostTransactionRequest) (*TransactionResponse, error) {
	replacement, err := finance.NewTransaction(tenantID, req.Description, req.Amount, finance.TransactionKind(req.Kind), req.Date, finance.TransactionRefs{
		AccountID:     req.AccountID,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		ProjectID:     req.ProjectID,
		CustomerID:    req.CustomerID,
		VendorID:      req.VendorID,
		EmployeeID:    req.EmployeeID,
		ExpenseID:     req.ExpenseID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.resolver.Resolve(ctx, tenantID, replacement.DimensionRefs()); err != nil {
		return nil, err
	}

	err = s.withRetry(ctx, func(repos LedgerRepositories) error {
		original, err := repos.Transactions().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := original.MarkReversed(time.Now()); err != nil {
			return err
		}
		if err := repos.Transactions().Save(ctx, original); err != nil {
			return err
		}
		if err := s.maintainer.Reverse(ctx, repos.Accounts(), original); err != nil {
			return err
		}
		if err := repos.Transactions().Create(ctx, replacement); err != nil {
			return err
		}
		if err := s.maintainer.Apply(ctx, repos.Accounts(), replacement); err != nil {
			return err
		}
		if original.IsSettlement() {
			if err := s.refreshExpenseStatus(ctx, repos, tenantID, *original.ExpenseID); err != nil {
				return err
			}
		}
		if replacement.IsSettlement() {
			if err := s.refreshExpenseStatus(ctx, repos, tenantID, *replacement.ExpenseID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logEvents(replacement.GetDomainEvents())
	replacement.ClearDomainEvents()
	return toTransactionResponse(replacement), nil
}

// ===================== Expense operations =====================

// PostExpense records an expense document, optionally settling it from
// an account in the same unit of work
func (s *LedgerService) PostExpense(ctx context.Context, tenantID uuid.UUID, req PostExpenseRequest) (*ExpenseResponse, error) {
	expense, err := finance.NewExpense(tenantID, req.Description, req.Amount, req.Category, req.Subcategory, req.Date, finance.ExpenseRefs{
		PaidFromAccountID: req.PaidFromAccountID,
		ProjectID:         req.ProjectID,
		VendorID:          req.VendorID,
		CustomerID:        req.CustomerID,
		EmployeeID:        req.EmployeeID,
	})
	if err != nil {
		return nil, err
	}
	if req.PayNow && req.PaidFromAccountID == nil {
		return nil, shared.NewDomainError("MISSING_ACCOUNT", "Immediate settlement requires a paying account")
	}
	if err := s.resolver.Resolve(ctx, tenantID, expense.DimensionRefs()); err != nil {
		return nil, err
	}

	err = s.withRetry(ctx, func(repos LedgerRepositories) error {
		if err := repos.Expenses().Create(ctx, expense); err != nil {
			return err
		}
		if !req.PayNow {
			return nil
		}
		expenseID := expense.ID
		settlement, err := finance.NewTransaction(tenantID, "Settlement: "+expense.Description, expense.Amount, finance.TransactionKindExpense, req.Date, finance.TransactionRefs{
			AccountID: req.PaidFromAccountID,
			ProjectID: req.ProjectID,
			VendorID:  req.VendorID,
			ExpenseID: &expenseID,
		})
		if err != nil {
			return err
		}
		if err := repos.Transactions().Create(ctx, settlement); err != nil {
			return err
		}
		if err := s.maintainer.Apply(ctx, repos.Accounts(), settlement); err != nil {
			return err
		}
		expense.RefreshPaymentStatus(expense.Amount)
		return repos.Expenses().Save(ctx, expense)
	})
	if err != nil {
		return nil, err
	}

	s.logEvents(expense.GetDomainEvents())
	expense.ClearDomainEvents()
	return toExpenseResponse(expense), nil
}

// SettleExpense pays down an expense through a linked settlement
// transaction and re-derives the expense's payment status
func (s *LedgerService) SettleExpense(ctx context.Context, tenantID, expenseID uuid.UUID, req SettleExpenseRequest) (*TransactionResponse, error) {
	accountID := req.AccountID
	return s.PostTransaction(ctx, tenantID, PostTransactionRequest{
		Description: "Expense settlement",
		Amount:      req.Amount,
		Kind:        finance.TransactionKindExpense.String(),
		Date:        req.Date,
		AccountID:   &accountID,
		ExpenseID:   &expenseID,
	})
}

// ReverseExpense soft-deletes an expense document together with its
// active settlement transactions, undoing their balance effects
func (s *LedgerService) ReverseExpense(ctx context.Context, tenantID, id uuid.UUID) (*ExpenseResponse, error) {
	var reversed *finance.Expense
	err := s.withRetry(ctx, func(repos LedgerRepositories) error {
		expense, err := repos.Expenses().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := expense.MarkReversed(time.Now()); err != nil {
			return err
		}

		settlements, err := repos.Transactions().FindActiveByExpense(ctx, tenantID, id)
		if err != nil {
			return err
		}
		for i := range settlements {
			settlement := &settlements[i]
			if err := settlement.MarkReversed(time.Now()); err != nil {
				return err
			}
			if err := repos.Transactions().Save(ctx, settlement); err != nil {
				return err
			}
			if err := s.maintainer.Reverse(ctx, repos.Accounts(), settlement); err != nil {
				return err
			}
		}

		if err := repos.Expenses().Save(ctx, expense); err != nil {
			return err
		}
		reversed = expense
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logEvents(reversed.GetDomainEvents())
	reversed.ClearDomainEvents()
	return toExpenseResponse(reversed), nil
}

// ===================== Payment operations =====================

// PostPayment records a project payment and the companion INCOME
// transaction that carries its cash effect
func (s *LedgerService) PostPayment(ctx context.Context, tenantID uuid.UUID, req PostPaymentRequest) (*PaymentResponse, error) {
	payment, err := finance.NewPayment(tenantID, req.ProjectID, req.AccountID, req.Amount, finance.PaymentMethod(req.Method), req.Date, req.Note)
	if err != nil {
		return nil, err
	}
	if err := s.resolver.Resolve(ctx, tenantID, payment.DimensionRefs()); err != nil {
		return nil, err
	}

	err = s.withRetry(ctx, func(repos LedgerRepositories) error {
		accountID := req.AccountID
		projectID := req.ProjectID
		companion, err := finance.NewTransaction(tenantID, "Project payment", req.Amount, finance.TransactionKindIncome, req.Date, finance.TransactionRefs{
			AccountID: &accountID,
			ProjectID: &projectID,
		})
		if err != nil {
			return err
		}
		if err := repos.Transactions().Create(ctx, companion); err != nil {
			return err
		}
		if err := s.maintainer.Apply(ctx, repos.Accounts(), companion); err != nil {
			return err
		}
		payment.LinkLedgerTransaction(companion.ID)
		return repos.Payments().Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	s.logEvents(payment.GetDomainEvents())
	payment.ClearDomainEvents()
	return toPaymentResponse(payment), nil
}

// ReversePayment soft-deletes a payment and its companion transaction
func (s *LedgerService) ReversePayment(ctx context.Context, tenantID, id uuid.UUID) (*PaymentResponse, error) {
	var reversed *finance.Payment
	err := s.withRetry(ctx, func(repos LedgerRepositories) error {
		payment, err := repos.Payments().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := payment.MarkReversed(time.Now()); err != nil {
			return err
		}
		if payment.LedgerTransactionID != nil {
			companion, err := repos.Transactions().FindByIDForTenant(ctx, tenantID, *payment.LedgerTransactionID)
			if err != nil {
				return err
			}
			if err := companion.MarkReversed(time.Now()); err != nil {
				return err
			}
			if err := repos.Transactions().Save(ctx, companion); err != nil {
				return err
			}
			if err := s.maintainer.Reverse(ctx, repos.Accounts(), companion); err != nil {
				return err
			}
		}
		if err := repos.Payments().Save(ctx, payment); err != nil {
			return err
		}
		reversed = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(reversed), nil
}

// ===================== Maintenance =====================

// RecomputeBalance rebuilds an account's cached balance from the event
// stream and reports any drift that was found
func (s *LedgerService) RecomputeBalance(ctx context.Context, tenantID, accountID uuid.UUID) (*RecomputeBalanceResponse, error) {
	var result *RecomputeBalanceResponse
	err := s.withRetry(ctx, func(repos LedgerRepositories) error {
		account, err := repos.Accounts().FindByIDForUpdate(ctx, tenantID, accountID)
		if err != nil {
			return err
		}
		computed, err := repos.Transactions().SumSignedForAccount(ctx, tenantID, accountID, time.Now())
		if err != nil {
			return err
		}
		previous := account.Balance
		account.SetBalance(computed)
		if err := repos.Accounts().Save(ctx, account); err != nil {
			return err
		}
		result = &RecomputeBalanceResponse{
			AccountID: accountID,
			Previous:  previous,
			Computed:  computed,
			Drift:     computed.Sub(previous),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !result.Drift.IsZero() {
		s.logger.Warn("Account balance drift corrected",
			zap.String("account_id", accountID.String()),
			zap.String("drift", result.Drift.String()))
	}
	return result, nil
}

// ===================== Helpers =====================

func (s *LedgerService) refreshExpenseStatus(ctx context.Context, repos LedgerRepositories, tenantID, expenseID uuid.UUID) error {
	expense, err := repos.Expenses().FindByIDForTenant(ctx, tenantID, expenseID)
	if err != nil {
		return err
	}
	paid, err := repos.Transactions().SumPaidForExpense(ctx, tenantID, expenseID)
	if err != nil {
		return err
	}
	expense.RefreshPaymentStatus(paid)
	return repos.Expenses().Save(ctx, expense)
}

func (s *LedgerService) withRetry(ctx context.Context, fn func(repos LedgerRepositories) error) error {
	var err error
	for attempt := 0; attempt < conflictRetries; attempt++ {
		err = s.scope.Execute(ctx, fn)
		if err == nil || !errors.Is(err, shared.ErrConcurrencyConflict) {
			return err
		}
		s.logger.Debug("Retrying ledger write after concurrency conflict", zap.Int("attempt", attempt+1))
	}
	return err
}

func (s *LedgerService) logEvents(events []shared.DomainEvent) {
	for _, event := range events {
		s.logger.Info("Domain event",
			zap.String("type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.String("tenant_id", event.TenantID().String()))
	}
}

func toTransactionResponse(t *finance.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		TenantID:      t.TenantID,
		Description:   t.Description,
		Amount:        t.Amount,
		SignedAmount:  t.SignedAmount(),
		Kind:          t.Kind.String(),
		Date:          t.Date,
		AccountID:     t.AccountID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		ProjectID:     t.ProjectID,
		CustomerID:    t.CustomerID,
		VendorID:      t.VendorID,
		EmployeeID:    t.EmployeeID,
		ExpenseID:     t.ExpenseID,
		ReversedAt:    t.ReversedAt,
		CreatedAt:     t.CreatedAt,
	}
}

func toExpenseResponse(e *finance.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:                e.ID,
		TenantID:          e.TenantID,
		Description:       e.Description,
		Amount:            e.Amount,
		Category:          e.Category,
		Subcategory:       e.Subcategory,
		Class:             e.Class.String(),
		Date:              e.Date,
		PaymentStatus:     string(e.PaymentStatus),
		PaidFromAccountID: e.PaidFromAccountID,
		ProjectID:         e.ProjectID,
		VendorID:          e.VendorID,
		ReversedAt:        e.ReversedAt,
		CreatedAt:         e.CreatedAt,
	}
}

func toPaymentResponse(p *finance.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:                  p.ID,
		TenantID:            p.TenantID,
		ProjectID:           p.ProjectID,
		AccountID:           p.AccountID,
		Amount:              p.Amount,
		Method:              p.Method.String(),
		Date:                p.Date,
		Note:                p.Note,
		LedgerTransactionID: p.LedgerTransactionID,
		CreatedAt:           p.CreatedAt,
	}
}
