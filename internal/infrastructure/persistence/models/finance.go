package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/finance"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared/valueobject"
)

// AccountModel is the persistence model for the Account aggregate root.
type AccountModel struct {
	TenantAggregateModel
	Name     string              `gorm:"type:varchar(100);not null;uniqueIndex:idx_account_tenant_name,priority:2"`
	Kind     finance.AccountKind `gorm:"type:varchar(20);not null;index"`
	Currency string              `gorm:"type:varchar(10);not null"`
	Balance  decimal.Decimal     `gorm:"type:decimal(20,4);not null"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *finance.Account {
	return &finance.Account{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Kind:                m.Kind,
		Currency:            valueobject.Currency(m.Currency),
		Balance:             m.Balance,
	}
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *finance.Account) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.Name = a.Name
	m.Kind = a.Kind
	m.Currency = string(a.Currency)
	m.Balance = a.Balance
}

// AccountModelFromDomain creates a new persistence model from a domain Account.
func AccountModelFromDomain(a *finance.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// TransactionModel is the persistence model for the Transaction aggregate root.
// Rows are append-only: a reversal sets ReversedAt instead of deleting.
type TransactionModel struct {
	TenantAggregateModel
	Description   string                  `gorm:"type:varchar(500);not null"`
	Amount        decimal.Decimal         `gorm:"type:decimal(20,4);not null"`
	Kind          finance.TransactionKind `gorm:"type:varchar(20);not null;index"`
	Date          time.Time               `gorm:"not null;index"`
	AccountID     *uuid.UUID              `gorm:"type:uuid;index"`
	FromAccountID *uuid.UUID              `gorm:"type:uuid;index"`
	ToAccountID   *uuid.UUID              `gorm:"type:uuid;index"`
	ProjectID     *uuid.UUID              `gorm:"type:uuid;index"`
	CustomerID    *uuid.UUID              `gorm:"type:uuid;index"`
	VendorID      *uuid.UUID              `gorm:"type:uuid;index"`
	EmployeeID    *uuid.UUID              `gorm:"type:uuid;index"`
	ExpenseID     *uuid.UUID              `gorm:"type:uuid;index"`
	ReversedAt    *time.Time              `gorm:"index"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction entity.
func (m *TransactionModel) ToDomain() *finance.Transaction {
	return &finance.Transaction{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Description:         m.Description,
		Amount:              m.Amount,
		Kind:                m.Kind,
		Date:                m.Date,
		AccountID:           m.AccountID,
		FromAccountID:       m.FromAccountID,
		ToAccountID:         m.ToAccountID,
		ProjectID:           m.ProjectID,
		CustomerID:          m.CustomerID,
		VendorID:            m.VendorID,
		EmployeeID:          m.EmployeeID,
		ExpenseID:           m.ExpenseID,
		ReversedAt:          m.ReversedAt,
	}
}

// FromDomain populates the persistence model from a domain Transaction entity.
func (m *TransactionModel) FromDomain(t *finance.Transaction) {
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	m.Description = t.Description
	m.Amount = t.Amount
	m.Kind = t.Kind
	m.Date = t.Date
	m.AccountID = t.AccountID
	m.FromAccountID = t.FromAccountID
	m.ToAccountID = t.ToAccountID
	m.ProjectID = t.ProjectID
	m.CustomerID = t.CustomerID
	m.VendorID = t.VendorID
	m.EmployeeID = t.EmployeeID
	m.ExpenseID = t.ExpenseID
	m.ReversedAt = t.ReversedAt
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction.
func TransactionModelFromDomain(t *finance.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}

// ExpenseModel is the persistence model for the Expense aggregate root.
type ExpenseModel struct {
	TenantAggregateModel
	Description       string                       `gorm:"type:varchar(500);not null"`
	Amount            decimal.Decimal              `gorm:"type:decimal(20,4);not null"`
	Category          string                       `gorm:"type:varchar(100);not null;index"`
	Subcategory       string                       `gorm:"type:varchar(100)"`
	Class             finance.CategoryClass        `gorm:"type:varchar(20);not null;index"`
	Date              time.Time                    `gorm:"not null;index"`
	PaymentStatus     finance.ExpensePaymentStatus `gorm:"type:varchar(20);not null;default:'UNPAID';index"`
	PaidFromAccountID *uuid.UUID                   `gorm:"type:uuid;index"`
	ProjectID         *uuid.UUID                   `gorm:"type:uuid;index"`
	VendorID          *uuid.UUID                   `gorm:"type:uuid;index"`
	CustomerID        *uuid.UUID                   `gorm:"type:uuid;index"`
	EmployeeID        *uuid.UUID                   `gorm:"type:uuid;index"`
	ReversedAt        *time.Time                   `gorm:"index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Description:         m.Description,
		Amount:              m.Amount,
		Category:            m.Category,
		Subcategory:         m.Subcategory,
		Class:               m.Class,
		Date:                m.Date,
		PaymentStatus:       m.PaymentStatus,
		PaidFromAccountID:   m.PaidFromAccountID,
		ProjectID:           m.ProjectID,
		VendorID:            m.VendorID,
		CustomerID:          m.CustomerID,
		EmployeeID:          m.EmployeeID,
		ReversedAt:          m.ReversedAt,
	}
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	m.Description = e.Description
	m.Amount = e.Amount
	m.Category = e.Category
	m.Subcategory = e.Subcategory
	m.Class = e.Class
	m.Date = e.Date
	m.PaymentStatus = e.PaymentStatus
	m.PaidFromAccountID = e.PaidFromAccountID
	m.ProjectID = e.ProjectID
	m.VendorID = e.VendorID
	m.CustomerID = e.CustomerID
	m.EmployeeID = e.EmployeeID
	m.ReversedAt = e.ReversedAt
}

// ExpenseModelFromDomain creates a new persistence model from a domain Expense.
func ExpenseModelFromDomain(e *finance.Expense) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}

// PaymentModel is the persistence model for the Payment aggregate root.
type PaymentModel struct {
	TenantAggregateModel
	ProjectID           uuid.UUID             `gorm:"type:uuid;not null;index"`
	AccountID           uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount              decimal.Decimal       `gorm:"type:decimal(20,4);not null"`
	Method              finance.PaymentMethod `gorm:"type:varchar(20);not null"`
	Date                time.Time             `gorm:"not null;index"`
	Note                string                `gorm:"type:varchar(500)"`
	LedgerTransactionID *uuid.UUID            `gorm:"type:uuid;index"`
	ReversedAt          *time.Time            `gorm:"index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *finance.Payment {
	return &finance.Payment{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		ProjectID:           m.ProjectID,
		AccountID:           m.AccountID,
		Amount:              m.Amount,
		Method:              m.Method,
		Date:                m.Date,
		Note:                m.Note,
		LedgerTransactionID: m.LedgerTransactionID,
		ReversedAt:          m.ReversedAt,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *finance.Payment) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.ProjectID = p.ProjectID
	m.AccountID = p.AccountID
	m.Amount = p.Amount
	m.Method = p.Method
	m.Date = p.Date
	m.Note = p.Note
	m.LedgerTransactionID = p.LedgerTransactionID
	m.ReversedAt = p.ReversedAt
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *finance.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// FixedAssetModel is the persistence model for the FixedAsset aggregate root.
type FixedAssetModel struct {
	TenantAggregateModel
	Name          string          `gorm:"type:varchar(200);not null"`
	PurchaseValue decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	BookValue     decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	PurchaseDate  time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (FixedAssetModel) TableName() string {
	return "fixed_assets"
}

// ToDomain converts the persistence model to a domain FixedAsset entity.
func (m *FixedAssetModel) ToDomain() *finance.FixedAsset {
	return &finance.FixedAsset{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		PurchaseValue:       m.PurchaseValue,
		BookValue:           m.BookValue,
		PurchaseDate:        m.PurchaseDate,
	}
}

// FromDomain populates the persistence model from a domain FixedAsset entity.
func (m *FixedAssetModel) FromDomain(a *finance.FixedAsset) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.Name = a.Name
	m.PurchaseValue = a.PurchaseValue
	m.BookValue = a.BookValue
	m.PurchaseDate = a.PurchaseDate
}

// FixedAssetModelFromDomain creates a new persistence model from a domain FixedAsset.
func FixedAssetModelFromDomain(a *finance.FixedAsset) *FixedAssetModel {
	m := &FixedAssetModel{}
	m.FromDomain(a)
	return m
}
