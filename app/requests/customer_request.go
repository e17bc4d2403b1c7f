// Package requests holds the validation schemas of the API bodies and the
// merge functions that apply them to models.
package requests

import (
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/bind"
)

// CustomerInput is the body of POST /customer and PUT /customer/{id}.
// id is accepted but never applied.
type CustomerInput struct {
	ID           *int64 `json:"id"`
	CustomerName string `json:"customer_name" validate:"required,max=75"`
	Email        string `json:"email"         validate:"max=150"`
	Phone        string `json:"phone"         validate:"max=16"`
	Address      string `json:"address"       validate:"max=150"`
}

// Customer builds a new, unsaved customer from the input.
func (in CustomerInput) Customer() models.Customer {
	return models.Customer{
		CustomerName: in.CustomerName,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
	}
}

// ApplyTo copies the fields that were sent onto c.
func (in CustomerInput) ApplyTo(c *models.Customer, present bind.Present) {
	if present.Has("customer_name") {
		c.CustomerName = in.CustomerName
	}
	if present.Has("email") {
		c.Email = in.Email
	}
	if present.Has("phone") {
		c.Phone = in.Phone
	}
	if present.Has("address") {
		c.Address = in.Address
	}
}
