package services

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

type CustomerService struct {
	db        *gorm.DB
	customers *repositories.CustomerRepository
	orders    *repositories.OrderRepository
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{
		db:        db,
		customers: repositories.NewCustomerRepository(db),
		orders:    repositories.NewOrderRepository(db),
	}
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.customers.All(ctx)
}

func (s *CustomerService) Find(ctx context.Context, id uint) (models.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

// Orders returns the orders placed by the customer with id.
func (s *CustomerService) Orders(ctx context.Context, id uint) ([]models.Order, error) {
	return s.orders.ByCustomer(ctx, id)
}

func (s *CustomerService) Create(ctx context.Context, customer *models.Customer) error {
	if err := s.customers.Create(ctx, customer); err != nil {
		return err
	}
	metrics.RecordMutation("customer", "create")
	return nil
}

// Update loads the customer, lets apply change it and writes it back.
func (s *CustomerService) Update(ctx context.Context, id uint, apply func(*models.Customer)) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.customers.WithTx(tx)
		customer, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		apply(&customer)
		customer.ID = id
		return repo.Update(ctx, &customer)
	})
	if err != nil {
		return err
	}
	metrics.RecordMutation("customer", "update")
	return nil
}

// Delete removes the customer unless it still owns orders.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customers := s.customers.WithTx(tx)
		if _, err := customers.FindByID(ctx, id); err != nil {
			return err
		}
		n, err := s.orders.WithTx(tx).CountByCustomer(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return errors.Wrapf(ErrCustomerHasOrders, "delete customer %d (%d orders)", id, n)
		}
		return customers.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	metrics.RecordMutation("customer", "delete")
	return nil
}
