package controllers

import (
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/requests"
	"github.com/shashiranjanraj/storefront/app/resources"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

const productNotFound = "Product not found"

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

func (pc *ProductController) Index(c *ctx.Context) {
	products, err := pc.service.List(c.Context())
	if err != nil {
		c.ServerError("products.index", err)
		return
	}
	c.JSON(http.StatusOK, resources.Products(products))
}

func (pc *ProductController) Show(c *ctx.Context) {
	id, ok := c.ParamID("id", productNotFound)
	if !ok {
		return
	}
	product, err := pc.service.Find(c.Context(), id)
	if err != nil {
		fail(c, "products.show", productNotFound, err)
		return
	}
	c.JSON(http.StatusOK, resources.Product(product))
}

func (pc *ProductController) Store(c *ctx.Context) {
	var input requests.ProductInput
	if !c.BindJSON(&input) {
		return
	}
	product := input.Product()
	if err := pc.service.Create(c.Context(), &product); err != nil {
		c.ServerError("products.store", err)
		return
	}
	c.Created("New product added successfully!", product.ID)
}

func (pc *ProductController) Update(c *ctx.Context) {
	id, ok := c.ParamID("id", productNotFound)
	if !ok {
		return
	}
	if _, err := pc.service.Find(c.Context(), id); err != nil {
		fail(c, "products.update", productNotFound, err)
		return
	}
	var input requests.ProductInput
	present, ok := c.BindPartial(&input)
	if !ok {
		return
	}
	err := pc.service.Update(c.Context(), id, func(m *models.Product) { input.ApplyTo(m, present) })
	if err != nil {
		fail(c, "products.update", productNotFound, err)
		return
	}
	c.Message(http.StatusOK, "Product details updated successfully!")
}

func (pc *ProductController) Destroy(c *ctx.Context) {
	id, ok := c.ParamID("id", productNotFound)
	if !ok {
		return
	}
	if err := pc.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrProductInUse) {
			c.Conflict("Product is referenced by existing orders")
			return
		}
		fail(c, "products.destroy", productNotFound, err)
		return
	}
	c.Message(http.StatusOK, "Product successfully removed")
}
