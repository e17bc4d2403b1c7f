package models

// Product is a catalogue entry.
type Product struct {
	ID          uint    `gorm:"primaryKey"        json:"id"`
	ProductName string  `gorm:"size:255;not null" json:"product_name"`
	Price       float64 `gorm:"not null"          json:"price"`
}

func (Product) TableName() string { return "products" }
