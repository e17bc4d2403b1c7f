// Package ctx provides a request context for storefront handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context with helpers for params, binding and replies:
//
//	func (cc *CustomerController) Show(c *ctx.Context) {
//	    id, ok := c.ParamID("id", "Customer not found")
//	    if !ok {
//	        return // 404 already sent
//	    }
//	    c.JSON(http.StatusOK, customer)
//	}
//
//	// Register with ctx.Wrap:
//	router.Get("/customer/{id}", "customer.show", ctx.Wrap(cc.Show))
package ctx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc so it can be
// passed to any router method.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// ─── Context ──────────────────────────────────────────────────────────────────

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/customer/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamID parses a positive integer path parameter. When the value is not
// one, the route cannot name an entity: a 404 with notFound is sent and
// ok is false.
func (c *Context) ParamID(key, notFound string) (id uint, ok bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		c.NotFound(notFound)
		return 0, false
	}
	return uint(n), true
}

// Method returns the HTTP method of the request.
func (c *Context) Method() string { return c.R.Method }

// Path returns the request URL path.
func (c *Context) Path() string { return c.R.URL.Path }

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Logger returns the request-scoped logger (tagged with the request ID).
func (c *Context) Logger() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation.
// On any field failure it sends 400 with the field map and returns false.
// Returns true only when dest is valid and ready to use.
//
//	var input requests.CustomerInput
//	if !c.BindJSON(&input) {
//	    return // response already sent
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	return c.bindResult(errs, err)
}

// BindPartial is BindJSON for partial updates: only the keys sent are
// validated, and they are returned so the caller can merge them.
func (c *Context) BindPartial(dest any) (bind.Present, bool) {
	present, errs, err := bind.Partial(c.R, dest)
	if !c.bindResult(errs, err) {
		return nil, false
	}
	return present, true
}

func (c *Context) bindResult(errs map[string]string, err error) bool {
	if err != nil {
		if errors.Is(err, bind.ErrBodyTooLarge) {
			c.Message(http.StatusRequestEntityTooLarge, err.Error())
			return false
		}
		c.Message(http.StatusBadRequest, err.Error())
		return false
	}
	if len(errs) > 0 {
		response.ValidationError(c.W, errs)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes a JSON response with the given status code.
func (c *Context) JSON(code int, v any) {
	response.JSON(c.W, code, v)
}

// Message writes {"message": msg}.
func (c *Context) Message(code int, msg string) {
	c.JSON(code, response.MessageBody{Message: msg})
}

// Created writes 201 {"message": msg, "id": id}.
func (c *Context) Created(msg string, id uint) {
	c.JSON(http.StatusCreated, response.CreatedBody{Message: msg, ID: id})
}

// NotFound writes 404 {"message": msg}.
func (c *Context) NotFound(msg string) {
	c.Message(http.StatusNotFound, msg)
}

// Conflict writes 409 {"message": msg}.
func (c *Context) Conflict(msg string) {
	c.Message(http.StatusConflict, msg)
}

// ServerError logs err with the request's logger and writes the generic 500.
func (c *Context) ServerError(op string, err error) {
	c.Logger().Error("request failed", "op", op, "method", c.Method(), "path", c.Path(), "error", err)
	c.Message(http.StatusInternalServerError, response.InternalErrorMessage)
}

// String writes a plain-text response.
func (c *Context) String(code int, format string, args ...any) {
	c.W.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.W.WriteHeader(code)
	fmt.Fprintf(c.W, format, args...)
}
