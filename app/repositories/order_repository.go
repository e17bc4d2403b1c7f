package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
)

// OrderRepository handles database operations for Order and its
// order_products links.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// All returns every order ordered by id.
func (r *OrderRepository) All(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.WithContext(ctx).Order("id").Find(&orders).Error
	return orders, wrap(err, "list orders")
}

// FindByID looks up an order by primary key.
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).First(&order, id).Error
	return order, wrap(err, "find order %d", id)
}

// ByCustomer returns the orders placed by customerID, ordered by id.
func (r *OrderRepository) ByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&orders).Error
	return orders, wrap(err, "list orders of customer %d", customerID)
}

// CountByCustomer counts the orders placed by customerID.
func (r *OrderRepository) CountByCustomer(ctx context.Context, customerID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("customer_id = ?", customerID).Count(&n).Error
	return n, wrap(err, "count orders of customer %d", customerID)
}

// Create inserts order and one order_products row per product id. Run it
// inside a transaction so a failed link leaves no order behind.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order, productIDs []uint) error {
	db := r.db.WithContext(ctx)

	order.ID = 0
	order.Customer = nil
	order.Products = nil
	if err := db.Omit("Customer", "Products").Create(order).Error; err != nil {
		return wrap(err, "create order")
	}

	if len(productIDs) == 0 {
		return nil
	}
	links := make([]models.OrderProduct, 0, len(productIDs))
	for _, pid := range productIDs {
		links = append(links, models.OrderProduct{OrderID: order.ID, ProductID: pid})
	}
	return wrap(db.Create(&links).Error, "link order %d to products", order.ID)
}

// Products returns the products linked to orderID, ordered by id.
func (r *OrderRepository) Products(ctx context.Context, orderID uint) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.WithContext(ctx).
		Joins("JOIN "+models.OrderProductsTable+" ON "+models.OrderProductsTable+".product_id = products.id").
		Where(models.OrderProductsTable+".order_id = ?", orderID).
		Order("products.id").
		Find(&products).Error
	return products, wrap(err, "list products of order %d", orderID)
}

// Delete removes the order's links and then the order. Run it inside a
// transaction so the two deletes commit together.
func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("order_id = ?", id).Delete(&models.OrderProduct{}).Error; err != nil {
		return wrap(err, "unlink order %d", id)
	}

	res := db.Delete(&models.Order{}, id)
	if res.Error != nil {
		return wrap(res.Error, "delete order %d", id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "delete order %d", id)
	}
	return nil
}
