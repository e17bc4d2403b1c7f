package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

type OrderService struct {
	db        *gorm.DB
	customers *repositories.CustomerRepository
	products  *repositories.ProductRepository
	orders    *repositories.OrderRepository

	// Now stamps order_date. Defaults to time.Now.
	Now func() time.Time
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:        db,
		customers: repositories.NewCustomerRepository(db),
		products:  repositories.NewProductRepository(db),
		orders:    repositories.NewOrderRepository(db),
		Now:       time.Now,
	}
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.All(ctx)
}

func (s *OrderService) Find(ctx context.Context, id uint) (models.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// Items returns the products of the order with id. A missing order is
// ErrNotFound, an order with no links is an empty list.
func (s *OrderService) Items(ctx context.Context, id uint) ([]models.Product, error) {
	if _, err := s.orders.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.orders.Products(ctx, id)
}

// Create places an order for customerID linking every product in items,
// dated today. The customer and every product must exist and items must
// not repeat; otherwise a FieldErrors is returned and nothing is written.
func (s *OrderService) Create(ctx context.Context, customerID uint, items []uint) (models.Order, error) {
	order := models.Order{CustomerID: customerID, OrderDate: models.DateOf(s.Now())}

	if fe := duplicateItems(items); fe != nil {
		return order, fe
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.customers.WithTx(tx).Exists(ctx, customerID)
		if err != nil {
			return err
		}
		if !ok {
			return FieldErrors{"customer_id": "The selected customer_id is invalid."}
		}

		found, err := s.products.WithTx(tx).FindByIDs(ctx, items)
		if err != nil {
			return err
		}
		if len(found) != len(items) {
			return unknownItems(items, found)
		}

		return s.orders.WithTx(tx).Create(ctx, &order, items)
	})
	if err != nil {
		return models.Order{}, err
	}
	metrics.RecordMutation("order", "create")
	return order, nil
}

// Delete removes the order and its product links.
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orders.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	metrics.RecordMutation("order", "delete")
	return nil
}

func duplicateItems(items []uint) FieldErrors {
	seen := make(map[uint]struct{}, len(items))
	for _, id := range items {
		if _, dup := seen[id]; dup {
			return FieldErrors{"items": "The items must not contain duplicate values."}
		}
		seen[id] = struct{}{}
	}
	return nil
}

func unknownItems(items []uint, found []models.Product) FieldErrors {
	known := make(map[uint]struct{}, len(found))
	for _, p := range found {
		known[p.ID] = struct{}{}
	}
	for i, id := range items {
		if _, ok := known[id]; !ok {
			return FieldErrors{"items": fmt.Sprintf("The selected items.%d is invalid.", i)}
		}
	}
	return FieldErrors{"items": "The selected items is invalid."}
}
