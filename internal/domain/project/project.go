package project

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// Status represents the lifecycle status of a project. It is the key
// recognition switch: Completed projects contribute realized revenue,
// anything else carries its advance as an unearned-revenue liability
// while costs are expensed immediately.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusOnHold    Status = "ON_HOLD"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the status is a valid project Status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusOnHold, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsCompleted returns true if the project has been completed
func (s Status) IsCompleted() bool {
	return s == StatusCompleted
}

// Project represents a customer project agreement. AgreementAmount is the
// contracted total; AdvancePaid is the cash received up front when the
// agreement was signed.
type Project struct {
	shared.TenantAggregateRoot
	Name            string          `json:"name"`
	CustomerID      *uuid.UUID      `json:"customer_id"`
	AgreementAmount decimal.Decimal `json:"agreement_amount"`
	AdvancePaid     decimal.Decimal `json:"advance_paid"`
	Status          Status          `json:"status"`
	AgreementDate   time.Time       `json:"agreement_date"`
}

// NewProject creates a new project agreement
func NewProject(tenantID uuid.UUID, name string, agreementAmount, advancePaid decimal.Decimal, agreementDate time.Time) (*Project, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if agreementAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Agreement amount must be positive")
	}
	if advancePaid.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Advance paid cannot be negative")
	}
	if advancePaid.GreaterThan(agreementAmount) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Advance paid cannot exceed the agreement amount")
	}
	return &Project{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		AgreementAmount:     agreementAmount,
		AdvancePaid:         advancePaid,
		Status:              StatusActive,
		AgreementDate:       agreementDate,
	}, nil
}

// ChangeStatus moves the project to a new lifecycle status
func (p *Project) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Project status is not valid")
	}
	p.Status = status
	p.Touch()
	return nil
}

// Remaining returns the agreement amount not yet covered by the advance
// and the given total of received payments, floored at zero.
func (p *Project) Remaining(paymentsTotal decimal.Decimal) decimal.Decimal {
	remaining := p.AgreementAmount.Sub(p.AdvancePaid).Sub(paymentsTotal)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
