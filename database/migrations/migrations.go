// Package migrations contains the storefront schema migrations.
// Each migration registers itself with migration.Register from init();
// cmd/storefront imports this package so they are known at CLI startup.
package migrations

import "github.com/shashiranjanraj/storefront/pkg/migration"

// All returns the storefront migrations, for runners that do not use the
// process registry (tests open a fresh database per case).
func All() []migration.Entry {
	return []migration.Entry{
		{Name: createCustomerTable, Migration: &CreateCustomerTable{}},
		{Name: createProductsTable, Migration: &CreateProductsTable{}},
		{Name: createOrdersTable, Migration: &CreateOrdersTable{}},
	}
}

func init() {
	for _, e := range All() {
		migration.Register(e.Name, e.Migration)
	}
}
