// Package routes wires controllers to URLs.
package routes

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/app/graph"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/graphql"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// New builds the router with the global middleware stack and every route.
//
// Middleware, outermost first:
//  1. Prometheus metrics (total latency)
//  2. Request ID
//  3. Logger (reads request_id, sees the final status)
//  4. Recovery (panics become a logged 500)
//  5. CORS
func New(db *gorm.DB) (*router.Router, error) {
	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.CORSOptions()),
	)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	if err := RegisterAPI(r, db); err != nil {
		return nil, err
	}
	return r, nil
}

// RegisterAPI adds the storefront routes to r.
func RegisterAPI(r *router.Router, db *gorm.DB) error {
	customerService := services.NewCustomerService(db)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db)

	schema, err := graph.NewSchema(graph.Services{
		Customers: customerService,
		Products:  productService,
		Orders:    orderService,
	})
	if err != nil {
		return err
	}

	customerController := controllers.NewCustomerController(customerService)
	productController := controllers.NewProductController(productService)
	orderController := controllers.NewOrderController(orderService)
	healthController := controllers.NewHealthController(db)

	r.Get("/", "home", ctx.Wrap(controllers.Home))
	r.Get("/healthz", "health", ctx.Wrap(healthController.Check))
	r.Handle(http.MethodGet, "/metrics", "metrics", metrics.Handler())

	gqlHandler := graphql.Handler(schema)
	r.Get("/graphql", "graphql.query", gqlHandler)
	r.Post("/graphql", "graphql", gqlHandler)

	r.Get("/customer", "customer.index", ctx.Wrap(customerController.Index))
	r.Post("/customer", "customer.store", ctx.Wrap(customerController.Store))
	r.Get("/customer/{id}", "customer.show", ctx.Wrap(customerController.Show))
	r.Put("/customer/{id}", "customer.update", ctx.Wrap(customerController.Update))
	r.Delete("/customer/{id}", "customer.destroy", ctx.Wrap(customerController.Destroy))

	r.Get("/products", "products.index", ctx.Wrap(productController.Index))
	r.Post("/products", "products.store", ctx.Wrap(productController.Store))
	r.Get("/products/{id}", "products.show", ctx.Wrap(productController.Show))
	r.Put("/products/{id}", "products.update", ctx.Wrap(productController.Update))
	r.Delete("/products/{id}", "products.destroy", ctx.Wrap(productController.Destroy))

	r.Get("/orders", "orders.index", ctx.Wrap(orderController.Index))
	r.Post("/orders", "orders.store", ctx.Wrap(orderController.Store))
	r.Get("/orders/{id}", "orders.show", ctx.Wrap(orderController.Show))
	r.Delete("/orders/{id}", "orders.destroy", ctx.Wrap(orderController.Destroy))
	r.Get("/order_items/{id}", "orders.items", ctx.Wrap(orderController.Items))

	return nil
}
