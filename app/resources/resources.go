// Package resources shapes the JSON bodies of the read endpoints. An order
// is rendered without its items; those are served by /order_items/{id}.
package resources

import (
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/resource"
)

type CustomerResource struct{}

func (CustomerResource) ToArray(c models.Customer) resource.Map {
	return resource.Map{
		"id":            c.ID,
		"customer_name": c.CustomerName,
		"email":         c.Email,
		"phone":         c.Phone,
		"address":       c.Address,
	}
}

type ProductResource struct{}

func (ProductResource) ToArray(p models.Product) resource.Map {
	return resource.Map{
		"id":           p.ID,
		"product_name": p.ProductName,
		"price":        p.Price,
	}
}

type OrderResource struct{}

func (OrderResource) ToArray(o models.Order) resource.Map {
	return resource.Map{
		"id":          o.ID,
		"order_date":  o.OrderDate,
		"customer_id": o.CustomerID,
	}
}

func Customer(c models.Customer) resource.Resource[models.Customer] {
	return resource.New[models.Customer](CustomerResource{}, c)
}

func Customers(cs []models.Customer) resource.Collection[models.Customer] {
	return resource.CollectionOf[models.Customer](CustomerResource{}, cs)
}

func Product(p models.Product) resource.Resource[models.Product] {
	return resource.New[models.Product](ProductResource{}, p)
}

func Products(ps []models.Product) resource.Collection[models.Product] {
	return resource.CollectionOf[models.Product](ProductResource{}, ps)
}

func Order(o models.Order) resource.Resource[models.Order] {
	return resource.New[models.Order](OrderResource{}, o)
}

func Orders(orders []models.Order) resource.Collection[models.Order] {
	return resource.CollectionOf[models.Order](OrderResource{}, orders)
}
