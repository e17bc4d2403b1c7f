package requests

import (
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/bind"
)

// ProductInput is the body of POST /products and PUT /products/{id}.
type ProductInput struct {
	ID          *int64   `json:"id"`
	ProductName string   `json:"product_name" validate:"required,max=255"`
	Price       *float64 `json:"price"        validate:"required,gte=0"`
}

// Product builds a new, unsaved product from the input.
func (in ProductInput) Product() models.Product {
	p := models.Product{ProductName: in.ProductName}
	if in.Price != nil {
		p.Price = *in.Price
	}
	return p
}

// ApplyTo copies the fields that were sent onto p.
func (in ProductInput) ApplyTo(p *models.Product, present bind.Present) {
	if present.Has("product_name") {
		p.ProductName = in.ProductName
	}
	if present.Has("price") && in.Price != nil {
		p.Price = *in.Price
	}
}
