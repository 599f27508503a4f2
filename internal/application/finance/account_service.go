package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/finance"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared/valueobject"
)

// AccountService provides application-level account operations
type AccountService struct {
	accounts     finance.AccountRepository
	transactions finance.TransactionRepository
	logger       *zap.Logger

	// defaultCurrency is used when a create request carries none
	defaultCurrency valueobject.Currency
}

// NewAccountService creates a new AccountService
func NewAccountService(
	accounts finance.AccountRepository,
	transactions finance.TransactionRepository,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accounts:        accounts,
		transactions:    transactions,
		logger:          logger,
		defaultCurrency: valueobject.DefaultCurrency,
	}
}

// SetDefaultCurrency overrides the currency applied to accounts created
// without one
func (s *AccountService) SetDefaultCurrency(currency valueobject.Currency) {
	if valueobject.IsValidCurrency(currency) {
		s.defaultCurrency = currency
	}
}

// CreateAccountRequest represents a request to create a money account
type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required"`
	Kind     string `json:"kind" binding:"required"`
	Currency string `json:"currency" binding:"omitempty,currency"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID        uuid.UUID       `json:"id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateAccount creates a new account with a zero balance
func (s *AccountService) CreateAccount(ctx context.Context, tenantID uuid.UUID, req CreateAccountRequest) (*AccountResponse, error) {
	currency := valueobject.Currency(req.Currency)
	if req.Currency == "" {
		currency = s.defaultCurrency
	}
	account, err := finance.NewAccount(tenantID, req.Name, finance.AccountKind(req.Kind), currency)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info("Account created",
		zap.String("account_id", account.ID.String()),
		zap.String("tenant_id", tenantID.String()),
		zap.String("kind", req.Kind))
	return toAccountResponse(account), nil
}

// GetAccount fetches one account
func (s *AccountService) GetAccount(ctx context.Context, tenantID, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accounts.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// ListAccounts fetches all accounts of the tenant
func (s *AccountService) ListAccounts(ctx context.Context, tenantID uuid.UUID) ([]AccountResponse, error) {
	accounts, err := s.accounts.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, *toAccountResponse(&accounts[i]))
	}
	return responses, nil
}

// DeleteAccount removes an account that no active ledger event still
// references. Referenced accounts must keep their history; the caller
// gets a typed error instead of a cascade.
func (s *AccountService) DeleteAccount(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.accounts.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	referenced, err := s.transactions.HasActiveForAccount(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if referenced {
		return shared.ErrAccountReferenced
	}
	return s.accounts.Delete(ctx, tenantID, id)
}

func toAccountResponse(a *finance.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		TenantID:  a.TenantID,
		Name:      a.Name,
		Kind:      a.Kind.String(),
		Currency:  string(a.Currency),
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}
