package models

// Customer is a buyer. Name is mandatory; the contact fields are free text.
type Customer struct {
	ID           uint   `gorm:"primaryKey"        json:"id"`
	CustomerName string `gorm:"size:75;not null"  json:"customer_name"`
	Email        string `gorm:"size:150"          json:"email"`
	Phone        string `gorm:"size:16"           json:"phone"`
	Address      string `gorm:"size:150"          json:"address"`
}

func (Customer) TableName() string { return "customer" }
