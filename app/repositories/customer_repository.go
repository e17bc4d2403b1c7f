package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
)

// CustomerRepository handles database operations for Customer.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *CustomerRepository) WithTx(tx *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: tx}
}

// All returns every customer ordered by id.
func (r *CustomerRepository) All(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	err := r.db.WithContext(ctx).Order("id").Find(&customers).Error
	return customers, wrap(err, "list customers")
}

// FindByID looks up a customer by primary key.
func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).First(&customer, id).Error
	return customer, wrap(err, "find customer %d", id)
}

// Exists reports whether a customer with id is stored.
func (r *CustomerRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Count(&n).Error
	return n > 0, wrap(err, "check customer %d", id)
}

// Create persists a new customer and fills in its id.
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	customer.ID = 0
	return wrap(r.db.WithContext(ctx).Create(customer).Error, "create customer")
}

// Update writes every mutable column of customer, including empty values.
func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	err := r.db.WithContext(ctx).Model(customer).
		Select("CustomerName", "Email", "Phone", "Address").
		Updates(customer).Error
	return wrap(err, "update customer %d", customer.ID)
}

// Delete removes the customer with id.
func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Customer{}, id)
	if res.Error != nil {
		return wrap(res.Error, "delete customer %d", id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "delete customer %d", id)
	}
	return nil
}
