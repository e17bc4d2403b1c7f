package requests

import "github.com/shashiranjanraj/storefront/app/models"

// OrderInput is the body of POST /orders. order_date is accepted for
// compatibility but the server always stamps the current day.
type OrderInput struct {
	ID         *int64       `json:"id"`
	OrderDate  *models.Date `json:"order_date"`
	CustomerID uint         `json:"customer_id" validate:"required,gt=0"`
	Items      []uint       `json:"items"       validate:"required,min=1,unique,dive,gt=0"`
}
