// Package graph is the read-only GraphQL view of customers, products and
// orders, resolved through the services.
package graph

import (
	"github.com/cockroachdb/errors"
	gql "github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/graphql"
)

// Services are the read paths the schema resolves against.
type Services struct {
	Customers *services.CustomerService
	Products  *services.ProductService
	Orders    *services.OrderService
}

var idArgs = gql.FieldConfigArgument{
	"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
}

// NewSchema builds the query root:
//
//	customers, customer(id), products, product(id), orders, order(id)
//	Customer.orders, Order.customer, Order.products
func NewSchema(svc Services) (gql.Schema, error) {
	product := gql.NewObject(gql.ObjectConfig{
		Name: "Product",
		Fields: gql.Fields{
			"id":           &gql.Field{Type: gql.NewNonNull(gql.Int), Resolve: productField(func(p models.Product) interface{} { return int(p.ID) })},
			"product_name": &gql.Field{Type: gql.NewNonNull(gql.String), Resolve: productField(func(p models.Product) interface{} { return p.ProductName })},
			"price":        &gql.Field{Type: gql.NewNonNull(gql.Float), Resolve: productField(func(p models.Product) interface{} { return p.Price })},
		},
	})

	customer := gql.NewObject(gql.ObjectConfig{
		Name: "Customer",
		Fields: gql.Fields{
			"id":            &gql.Field{Type: gql.NewNonNull(gql.Int), Resolve: customerField(func(c models.Customer) interface{} { return int(c.ID) })},
			"customer_name": &gql.Field{Type: gql.NewNonNull(gql.String), Resolve: customerField(func(c models.Customer) interface{} { return c.CustomerName })},
			"email":         &gql.Field{Type: gql.String, Resolve: customerField(func(c models.Customer) interface{} { return c.Email })},
			"phone":         &gql.Field{Type: gql.String, Resolve: customerField(func(c models.Customer) interface{} { return c.Phone })},
			"address":       &gql.Field{Type: gql.String, Resolve: customerField(func(c models.Customer) interface{} { return c.Address })},
		},
	})

	order := gql.NewObject(gql.ObjectConfig{
		Name: "Order",
		Fields: gql.Fields{
			"id":          &gql.Field{Type: gql.NewNonNull(gql.Int), Resolve: orderField(func(o models.Order) interface{} { return int(o.ID) })},
			"order_date":  &gql.Field{Type: gql.NewNonNull(gql.String), Resolve: orderField(func(o models.Order) interface{} { return o.OrderDate.String() })},
			"customer_id": &gql.Field{Type: gql.NewNonNull(gql.Int), Resolve: orderField(func(o models.Order) interface{} { return int(o.CustomerID) })},
		},
	})

	order.AddFieldConfig("customer", &gql.Field{
		Type: customer,
		Resolve: func(p gql.ResolveParams) (interface{}, error) {
			o, _ := p.Source.(models.Order)
			return orNull(svc.Customers.Find(p.Context, o.CustomerID))
		},
	})
	order.AddFieldConfig("products", &gql.Field{
		Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(product))),
		Resolve: func(p gql.ResolveParams) (interface{}, error) {
			o, _ := p.Source.(models.Order)
			return svc.Orders.Items(p.Context, o.ID)
		},
	})
	customer.AddFieldConfig("orders", &gql.Field{
		Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(order))),
		Resolve: func(p gql.ResolveParams) (interface{}, error) {
			c, _ := p.Source.(models.Customer)
			return svc.Customers.Orders(p.Context, c.ID)
		},
	})

	query := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"customers": &gql.Field{
				Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(customer))),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return svc.Customers.List(p.Context)
				},
			},
			"customer": &gql.Field{
				Type: customer,
				Args: idArgs,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id, ok := argID(p)
					if !ok {
						return nil, nil
					}
					return orNull(svc.Customers.Find(p.Context, id))
				},
			},
			"products": &gql.Field{
				Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(product))),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return svc.Products.List(p.Context)
				},
			},
			"product": &gql.Field{
				Type: product,
				Args: idArgs,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id, ok := argID(p)
					if !ok {
						return nil, nil
					}
					return orNull(svc.Products.Find(p.Context, id))
				},
			},
			"orders": &gql.Field{
				Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(order))),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return svc.Orders.List(p.Context)
				},
			},
			"order": &gql.Field{
				Type: order,
				Args: idArgs,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id, ok := argID(p)
					if !ok {
						return nil, nil
					}
					return orNull(svc.Orders.Find(p.Context, id))
				},
			},
		},
	})

	return graphql.NewSchema(query)
}

func argID(p gql.ResolveParams) (uint, bool) {
	n, ok := p.Args["id"].(int)
	if !ok || n <= 0 {
		return 0, false
	}
	return uint(n), true
}

// orNull turns a not-found lookup into a null result.
func orNull[T any](v T, err error) (interface{}, error) {
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func customerField(get func(models.Customer) interface{}) gql.FieldResolveFn {
	return func(p gql.ResolveParams) (interface{}, error) {
		c, _ := p.Source.(models.Customer)
		return get(c), nil
	}
}

func productField(get func(models.Product) interface{}) gql.FieldResolveFn {
	return func(p gql.ResolveParams) (interface{}, error) {
		pr, _ := p.Source.(models.Product)
		return get(pr), nil
	}
}

func orderField(get func(models.Order) interface{}) gql.FieldResolveFn {
	return func(p gql.ResolveParams) (interface{}, error) {
		o, _ := p.Source.(models.Order)
		return get(o), nil
	}
}
