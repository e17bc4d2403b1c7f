package graph_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/graph"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/database/migrations"
	"github.com/shashiranjanraj/storefront/pkg/graphql"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

func run(t *testing.T, query string) string {
	t.Helper()
	ctx := context.Background()
	db := testkit.NewDB(t, migrations.All()...)

	svc := graph.Services{
		Customers: services.NewCustomerService(db),
		Products:  services.NewProductService(db),
		Orders:    services.NewOrderService(db),
	}
	svc.Orders.Now = func() time.Time { return time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC) }

	c := models.Customer{CustomerName: "Ada", Email: "ada@example.com"}
	require.NoError(t, svc.Customers.Create(ctx, &c))
	desk := models.Product{ProductName: "Desk", Price: 120}
	lamp := models.Product{ProductName: "Lamp", Price: 15.5}
	require.NoError(t, svc.Products.Create(ctx, &desk))
	require.NoError(t, svc.Products.Create(ctx, &lamp))
	_, err := svc.Orders.Create(ctx, c.ID, []uint{lamp.ID, desk.ID})
	require.NoError(t, err)

	schema, err := graph.NewSchema(svc)
	require.NoError(t, err)

	res := graphql.Execute(schema, graphql.Request{Query: query})
	require.Empty(t, res.Errors)
	out, err := json.Marshal(res.Data)
	require.NoError(t, err)
	return string(out)
}

func TestCustomerWithOrders(t *testing.T) {
	got := run(t, `{ customer(id: 1) { customer_name email orders { id order_date products { product_name price } } } }`)
	assert.JSONEq(t, `{"customer":{"customer_name":"Ada","email":"ada@example.com","orders":[
		{"id":1,"order_date":"2026-05-01","products":[{"product_name":"Desk","price":120},{"product_name":"Lamp","price":15.5}]}
	]}}`, got)
}

func TestOrderCustomerAndLists(t *testing.T) {
	got := run(t, `{ order(id: 1) { customer_id customer { customer_name } } products { id } customers { id } orders { id } }`)
	assert.JSONEq(t, `{
		"order":{"customer_id":1,"customer":{"customer_name":"Ada"}},
		"products":[{"id":1},{"id":2}],
		"customers":[{"id":1}],
		"orders":[{"id":1}]
	}`, got)
}

func TestMissingEntitiesAreNull(t *testing.T) {
	got := run(t, `{ customer(id: 9) { id } product(id: 9) { id } order(id: 0) { id } }`)
	assert.JSONEq(t, `{"customer":null,"product":null,"order":null}`, got)
}
