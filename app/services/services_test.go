package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/database/migrations"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

type fixture struct {
	db        *gorm.DB
	customers *services.CustomerService
	products  *services.ProductService
	orders    *services.OrderService
}

func setup(t *testing.T) fixture {
	db := testkit.NewDB(t, migrations.All()...)
	orders := services.NewOrderService(db)
	orders.Now = func() time.Time { return time.Date(2026, time.October, 14, 23, 30, 0, 0, time.UTC) }
	return fixture{
		db:        db,
		customers: services.NewCustomerService(db),
		products:  services.NewProductService(db),
		orders:    orders,
	}
}

func (f fixture) customer(t *testing.T, name string) models.Customer {
	t.Helper()
	c := models.Customer{CustomerName: name}
	require.NoError(t, f.customers.Create(context.Background(), &c))
	return c
}

func (f fixture) product(t *testing.T, name string, price float64) models.Product {
	t.Helper()
	p := models.Product{ProductName: name, Price: price}
	require.NoError(t, f.products.Create(context.Background(), &p))
	return p
}

func countOrders(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	return n
}

func TestCustomerUpdateAppliesOnlyChanges(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := models.Customer{CustomerName: "Ada", Email: "ada@example.com", Phone: "555"}
	require.NoError(t, f.customers.Create(ctx, &c))

	require.NoError(t, f.customers.Update(ctx, c.ID, func(m *models.Customer) {
		m.Email = "lovelace@example.com"
		m.ID = 999
	}))

	got, err := f.customers.Find(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Customer{ID: c.ID, CustomerName: "Ada", Email: "lovelace@example.com", Phone: "555"}, got)

	err = f.customers.Update(ctx, 42, func(*models.Customer) {})
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestCustomerDeleteBlockedByOrders(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.customer(t, "Ada")
	p := f.product(t, "Desk", 120)

	order, err := f.orders.Create(ctx, c.ID, []uint{p.ID})
	require.NoError(t, err)

	err = f.customers.Delete(ctx, c.ID)
	assert.True(t, errors.Is(err, services.ErrCustomerHasOrders))

	require.NoError(t, f.orders.Delete(ctx, order.ID))
	require.NoError(t, f.customers.Delete(ctx, c.ID))
	assert.True(t, errors.Is(f.customers.Delete(ctx, c.ID), repositories.ErrNotFound))
}

func TestProductDeleteBlockedByOrders(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.customer(t, "Ada")
	desk := f.product(t, "Desk", 120)
	lamp := f.product(t, "Lamp", 15)

	_, err := f.orders.Create(ctx, c.ID, []uint{desk.ID})
	require.NoError(t, err)

	assert.True(t, errors.Is(f.products.Delete(ctx, desk.ID), services.ErrProductInUse))
	require.NoError(t, f.products.Delete(ctx, lamp.ID))
	assert.True(t, errors.Is(f.products.Delete(ctx, lamp.ID), repositories.ErrNotFound))

	all, err := f.products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProductUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p := f.product(t, "Desk", 120)

	require.NoError(t, f.products.Update(ctx, p.ID, func(m *models.Product) { m.Price = 99.5 }))
	got, err := f.products.Find(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Product{ID: p.ID, ProductName: "Desk", Price: 99.5}, got)
}

func TestOrderCreateStampsToday(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.customer(t, "Ada")
	desk := f.product(t, "Desk", 120)
	lamp := f.product(t, "Lamp", 15)

	order, err := f.orders.Create(ctx, c.ID, []uint{lamp.ID, desk.ID})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, models.Date{Year: 2026, Month: time.October, Day: 14}, order.OrderDate)

	stored, err := f.orders.Find(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderDate, stored.OrderDate)
	assert.Equal(t, c.ID, stored.CustomerID)

	items, err := f.orders.Items(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Product{desk, lamp}, items)

	mine, err := f.customers.Orders(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)
}

func TestOrderCreateRejectsUnknownReferences(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.customer(t, "Ada")
	desk := f.product(t, "Desk", 120)

	_, err := f.orders.Create(ctx, c.ID, []uint{desk.ID, 77})
	var fe services.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, services.FieldErrors{"items": "The selected items.1 is invalid."}, fe)

	_, err = f.orders.Create(ctx, 55, []uint{desk.ID})
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, services.FieldErrors{"customer_id": "The selected customer_id is invalid."}, fe)

	_, err = f.orders.Create(ctx, c.ID, []uint{desk.ID, desk.ID})
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "items")

	assert.Zero(t, countOrders(t, f.db), "rejected orders leave nothing behind")
}

func TestOrdersShareProductsIndependently(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	c := f.customer(t, "Ada")
	desk := f.product(t, "Desk", 120)

	first, err := f.orders.Create(ctx, c.ID, []uint{desk.ID})
	require.NoError(t, err)
	second, err := f.orders.Create(ctx, c.ID, []uint{desk.ID})
	require.NoError(t, err)

	require.NoError(t, f.orders.Delete(ctx, first.ID))

	items, err := f.orders.Items(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Product{desk}, items)

	_, err = f.orders.Items(ctx, first.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	assert.True(t, errors.Is(f.orders.Delete(ctx, first.ID), repositories.ErrNotFound))

	list, err := f.orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFieldErrorsMessage(t *testing.T) {
	err := services.FieldErrors{"items": "bad", "customer_id": "missing"}
	assert.Equal(t, "invalid references: customer_id: missing; items: bad", err.Error())
}
