package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

// All returns every product ordered by id.
func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := r.db.WithContext(ctx).Order("id").Find(&products).Error
	return products, wrap(err, "list products")
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	return product, wrap(err, "find product %d", id)
}

// FindByIDs returns the products whose ids are listed, ordered by id.
// Unknown ids are simply absent from the result.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	products := []models.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&products).Error
	return products, wrap(err, "find products %v", ids)
}

// Create persists a new product and fills in its id.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = 0
	return wrap(r.db.WithContext(ctx).Create(product).Error, "create product")
}

// Update writes every mutable column of product, including zero values.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	err := r.db.WithContext(ctx).Model(product).
		Select("ProductName", "Price").
		Updates(product).Error
	return wrap(err, "update product %d", product.ID)
}

// Referenced reports whether any order links to the product.
func (r *ProductRepository) Referenced(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.OrderProduct{}).Where("product_id = ?", id).Count(&n).Error
	return n > 0, wrap(err, "count orders of product %d", id)
}

// Delete removes the product with id.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return wrap(res.Error, "delete product %d", id)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "delete product %d", id)
	}
	return nil
}
