package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/requests"
	"github.com/shashiranjanraj/storefront/app/resources"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

const orderNotFound = "Order not found"

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

func (oc *OrderController) Index(c *ctx.Context) {
	orders, err := oc.service.List(c.Context())
	if err != nil {
		c.ServerError("orders.index", err)
		return
	}
	c.JSON(http.StatusOK, resources.Orders(orders))
}

func (oc *OrderController) Show(c *ctx.Context) {
	id, ok := c.ParamID("id", orderNotFound)
	if !ok {
		return
	}
	order, err := oc.service.Find(c.Context(), id)
	if err != nil {
		fail(c, "orders.show", orderNotFound, err)
		return
	}
	c.JSON(http.StatusOK, resources.Order(order))
}

// Items → GET /order_items/{id}
func (oc *OrderController) Items(c *ctx.Context) {
	id, ok := c.ParamID("id", orderNotFound)
	if !ok {
		return
	}
	products, err := oc.service.Items(c.Context(), id)
	if err != nil {
		fail(c, "orders.items", orderNotFound, err)
		return
	}
	c.JSON(http.StatusOK, resources.Products(products))
}

// Store → POST /orders. order_date in the body is ignored.
func (oc *OrderController) Store(c *ctx.Context) {
	var input requests.OrderInput
	if !c.BindJSON(&input) {
		return
	}
	order, err := oc.service.Create(c.Context(), input.CustomerID, input.Items)
	if err != nil {
		fail(c, "orders.store", orderNotFound, err)
		return
	}
	c.Created("Order placed successfully!", order.ID)
}

func (oc *OrderController) Destroy(c *ctx.Context) {
	id, ok := c.ParamID("id", orderNotFound)
	if !ok {
		return
	}
	if err := oc.service.Delete(c.Context(), id); err != nil {
		fail(c, "orders.destroy", orderNotFound, err)
		return
	}
	c.Message(http.StatusOK, "Order successfully removed!")
}
