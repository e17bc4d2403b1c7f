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

const customerNotFound = "Customer not found"

type CustomerController struct {
	service *services.CustomerService
}

func NewCustomerController(service *services.CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

// Index → GET /customer
func (cc *CustomerController) Index(c *ctx.Context) {
	customers, err := cc.service.List(c.Context())
	if err != nil {
		c.ServerError("customer.index", err)
		return
	}
	c.JSON(http.StatusOK, resources.Customers(customers))
}

// Show → GET /customer/{id}
func (cc *CustomerController) Show(c *ctx.Context) {
	id, ok := c.ParamID("id", customerNotFound)
	if !ok {
		return
	}
	customer, err := cc.service.Find(c.Context(), id)
	if err != nil {
		fail(c, "customer.show", customerNotFound, err)
		return
	}
	c.JSON(http.StatusOK, resources.Customer(customer))
}

// Store → POST /customer
func (cc *CustomerController) Store(c *ctx.Context) {
	var input requests.CustomerInput
	if !c.BindJSON(&input) {
		return
	}
	customer := input.Customer()
	if err := cc.service.Create(c.Context(), &customer); err != nil {
		c.ServerError("customer.store", err)
		return
	}
	c.Created("Customer added successfully!", customer.ID)
}

// Update → PUT /customer/{id}
func (cc *CustomerController) Update(c *ctx.Context) {
	id, ok := c.ParamID("id", customerNotFound)
	if !ok {
		return
	}
	if _, err := cc.service.Find(c.Context(), id); err != nil {
		fail(c, "customer.update", customerNotFound, err)
		return
	}
	var input requests.CustomerInput
	present, ok := c.BindPartial(&input)
	if !ok {
		return
	}
	err := cc.service.Update(c.Context(), id, func(m *models.Customer) { input.ApplyTo(m, present) })
	if err != nil {
		fail(c, "customer.update", customerNotFound, err)
		return
	}
	c.Message(http.StatusOK, "Customer details updated successfully!")
}

// Destroy → DELETE /customer/{id}
func (cc *CustomerController) Destroy(c *ctx.Context) {
	id, ok := c.ParamID("id", customerNotFound)
	if !ok {
		return
	}
	if err := cc.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrCustomerHasOrders) {
			c.Conflict("Customer has existing orders")
			return
		}
		fail(c, "customer.destroy", customerNotFound, err)
		return
	}
	c.Message(http.StatusOK, "Customer deleted successfully!")
}
