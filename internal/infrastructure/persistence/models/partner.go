package models

import (
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer aggregate root.
type CustomerModel struct {
	TenantAggregateModel
	Name  string `gorm:"type:varchar(200);not null;index"`
	Phone string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Phone:               m.Phone,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Name = c.Name
	m.Phone = c.Phone
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// VendorModel is the persistence model for the Vendor aggregate root.
type VendorModel struct {
	TenantAggregateModel
	Name  string `gorm:"type:varchar(200);not null;index"`
	Phone string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor entity.
func (m *VendorModel) ToDomain() *partner.Vendor {
	return &partner.Vendor{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Phone:               m.Phone,
	}
}

// FromDomain populates the persistence model from a domain Vendor entity.
func (m *VendorModel) FromDomain(v *partner.Vendor) {
	m.FromDomainTenantAggregateRoot(v.TenantAggregateRoot)
	m.Name = v.Name
	m.Phone = v.Phone
}

// VendorModelFromDomain creates a new persistence model from a domain Vendor.
func VendorModelFromDomain(v *partner.Vendor) *VendorModel {
	m := &VendorModel{}
	m.FromDomain(v)
	return m
}

// EmployeeModel is the persistence model for the Employee aggregate root.
type EmployeeModel struct {
	TenantAggregateModel
	Name     string `gorm:"type:varchar(200);not null;index"`
	Position string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee entity.
func (m *EmployeeModel) ToDomain() *partner.Employee {
	return &partner.Employee{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Position:            m.Position,
	}
}

// FromDomain populates the persistence model from a domain Employee entity.
func (m *EmployeeModel) FromDomain(e *partner.Employee) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	m.Name = e.Name
	m.Position = e.Position
}

// EmployeeModelFromDomain creates a new persistence model from a domain Employee.
func EmployeeModelFromDomain(e *partner.Employee) *EmployeeModel {
	m := &EmployeeModel{}
	m.FromDomain(e)
	return m
}
