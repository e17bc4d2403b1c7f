package seeders

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
)

func init() {
	Register("catalogue", SeedCatalogue)
}

var demoCustomers = []models.Customer{
	{CustomerName: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100", Address: "12 St James's Square, London"},
	{CustomerName: "Grace Hopper", Email: "grace@example.com", Phone: "555-0101", Address: "Arlington, Virginia"},
}

var demoProducts = []models.Product{
	{ProductName: "Standing desk", Price: 349.99},
	{ProductName: "Desk lamp", Price: 24.5},
	{ProductName: "Ergonomic chair", Price: 189},
	{ProductName: "Notebook", Price: 3.75},
}

// SeedCatalogue inserts demo customers and products. It does nothing when
// any customer or product already exists.
func SeedCatalogue(ctx context.Context, db *gorm.DB) error {
	customers := repositories.NewCustomerRepository(db)
	products := repositories.NewProductRepository(db)

	existingCustomers, err := customers.All(ctx)
	if err != nil {
		return err
	}
	existingProducts, err := products.All(ctx)
	if err != nil {
		return err
	}
	if len(existingCustomers) > 0 || len(existingProducts) > 0 {
		return nil
	}

	for _, c := range demoCustomers {
		c := c
		if err := customers.Create(ctx, &c); err != nil {
			return err
		}
	}
	for _, p := range demoProducts {
		p := p
		if err := products.Create(ctx, &p); err != nil {
			return err
		}
	}
	return nil
}
