package models

// OrderProductsTable links orders to products. Its primary key is
// (order_id, product_id), so an order references a product at most once.
const OrderProductsTable = "order_products"

// Order belongs to one customer and references a set of products.
type Order struct {
	ID         uint `gorm:"primaryKey"     json:"id"`
	OrderDate  Date `gorm:"type:date;not null" json:"order_date"`
	CustomerID uint `gorm:"not null;index" json:"customer_id"`

	Customer *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Products []Product `gorm:"many2many:order_products"                      json:"-"`
}

func (Order) TableName() string { return "orders" }

// OrderProduct is a row of the association table.
type OrderProduct struct {
	OrderID   uint `gorm:"primaryKey;autoIncrement:false"`
	ProductID uint `gorm:"primaryKey;autoIncrement:false"`
}

func (OrderProduct) TableName() string { return OrderProductsTable }
