package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/project"
)

// ProjectModel is the persistence model for the Project aggregate root.
type ProjectModel struct {
	TenantAggregateModel
	Name            string          `gorm:"type:varchar(200);not null;index"`
	CustomerID      *uuid.UUID      `gorm:"type:uuid;index"`
	AgreementAmount decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	AdvancePaid     decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Status          project.Status  `gorm:"type:varchar(20);not null;index"`
	AgreementDate   time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project entity.
func (m *ProjectModel) ToDomain() *project.Project {
	return &project.Project{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		CustomerID:          m.CustomerID,
		AgreementAmount:     m.AgreementAmount,
		AdvancePaid:         m.AdvancePaid,
		Status:              m.Status,
		AgreementDate:       m.AgreementDate,
	}
}

// FromDomain populates the persistence model from a domain Project entity.
func (m *ProjectModel) FromDomain(p *project.Project) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Name = p.Name
	m.CustomerID = p.CustomerID
	m.AgreementAmount = p.AgreementAmount
	m.AdvancePaid = p.AdvancePaid
	m.Status = p.Status
	m.AgreementDate = p.AgreementDate
}

// ProjectModelFromDomain creates a new persistence model from a domain Project.
func ProjectModelFromDomain(p *project.Project) *ProjectModel {
	m := &ProjectModel{}
	m.FromDomain(p)
	return m
}
