package persistence

import (
	"github.com/hamsefx10-lgtm/revlo-backend/internal/infrastructure/persistence/models"
)

// AutoMigrate creates or updates the database schema for all models
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(
		&models.AccountModel{},
		&models.TransactionModel{},
		&models.ExpenseModel{},
		&models.PaymentModel{},
		&models.FixedAssetModel{},
		&models.ProjectModel{},
		&models.CustomerModel{},
		&models.VendorModel{},
		&models.EmployeeModel{},
		&models.ItemModel{},
	)
}
