package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
)

const (
	createCustomerTable = "20260101000000_create_customer_table"
	createProductsTable = "20260101000001_create_products_table"
	createOrdersTable   = "20260101000002_create_orders_table"
)

// -------- 0001: customer --------

type CreateCustomerTable struct{}

func (m *CreateCustomerTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Customer{})
}

func (m *CreateCustomerTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(models.Customer{}.TableName())
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(models.Product{}.TableName())
}

// -------- 0003: orders + order_products --------

// CreateOrdersTable also creates the order_products join table, which gorm
// derives from Order.Products.
type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	if err := db.Migrator().DropTable(models.OrderProductsTable); err != nil {
		return err
	}
	return db.Migrator().DropTable(models.Order{}.TableName())
}
