package services

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

type ProductService struct {
	db       *gorm.DB
	products *repositories.ProductRepository
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db, products: repositories.NewProductRepository(db)}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.All(ctx)
}

func (s *ProductService) Find(ctx context.Context, id uint) (models.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, product *models.Product) error {
	if err := s.products.Create(ctx, product); err != nil {
		return err
	}
	metrics.RecordMutation("product", "create")
	return nil
}

// Update loads the product, lets apply change it and writes it back.
func (s *ProductService) Update(ctx context.Context, id uint, apply func(*models.Product)) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.products.WithTx(tx)
		product, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		apply(&product)
		product.ID = id
		return repo.Update(ctx, &product)
	})
	if err != nil {
		return err
	}
	metrics.RecordMutation("product", "update")
	return nil
}

// Delete removes the product unless an order links to it.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.products.WithTx(tx)
		if _, err := repo.FindByID(ctx, id); err != nil {
			return err
		}
		used, err := repo.Referenced(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return errors.Wrapf(ErrProductInUse, "delete product %d", id)
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	metrics.RecordMutation("product", "delete")
	return nil
}
