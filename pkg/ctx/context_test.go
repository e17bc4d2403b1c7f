package ctx_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	appctx "github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

func serve(method, pattern, target, body string, h appctx.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, appctx.Wrap(h))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	return rec
}

func TestWrapAndJSON(t *testing.T) {
	rec := serve(http.MethodGet, "/", "/", "", func(c *appctx.Context) {
		c.JSON(http.StatusOK, map[string]any{"ok": true})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestParamID(t *testing.T) {
	var got uint
	rec := serve(http.MethodGet, "/customer/{id}", "/customer/42", "", func(c *appctx.Context) {
		id, ok := c.ParamID("id", "Customer not found")
		assert.True(t, ok)
		got = id
		c.Message(http.StatusOK, "ok")
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), got)

	for _, bad := range []string{"abc", "0", "-3", "1.5"} {
		rec := serve(http.MethodGet, "/customer/{id}", "/customer/"+bad, "", func(c *appctx.Context) {
			_, ok := c.ParamID("id", "Customer not found")
			assert.False(t, ok)
		})
		assert.Equal(t, http.StatusNotFound, rec.Code, bad)
		assert.JSONEq(t, `{"message":"Customer not found"}`, rec.Body.String())
	}
}

type nameInput struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"omitempty,max=5"`
}

func TestBindJSONValid(t *testing.T) {
	rec := serve(http.MethodPost, "/", "/", `{"name":"John"}`, func(c *appctx.Context) {
		var in nameInput
		if !assert.True(t, c.BindJSON(&in)) {
			return
		}
		assert.Equal(t, "John", in.Name)
		c.Created("added", 1)
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"added","id":1}`, rec.Body.String())
}

func TestBindJSONInvalid(t *testing.T) {
	rec := serve(http.MethodPost, "/", "/", `{"name":"","extra":1}`, func(c *appctx.Context) {
		var in nameInput
		assert.False(t, c.BindJSON(&in))
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"extra":"Unknown field."}`, rec.Body.String())
}

func TestBindPartial(t *testing.T) {
	rec := serve(http.MethodPut, "/", "/", `{"email":"a@b"}`, func(c *appctx.Context) {
		var in nameInput
		present, ok := c.BindPartial(&in)
		assert.True(t, ok)
		assert.True(t, present.Has("email"))
		assert.False(t, present.Has("name"))
		c.Message(http.StatusOK, "updated")
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(http.MethodPut, "/", "/", `{"email":"toolong@example.com"}`, func(c *appctx.Context) {
		var in nameInput
		_, ok := c.BindPartial(&in)
		assert.False(t, ok)
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email"`)
}

func TestErrorResponses(t *testing.T) {
	rec := serve(http.MethodGet, "/", "/", "", func(c *appctx.Context) { c.Conflict("Customer has existing orders") })
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(http.MethodGet, "/", "/", "", func(c *appctx.Context) { c.ServerError("customer.list", errors.New("db down")) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestServerErrorLogsRequest(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.L
	logger.L = logger.New(&buf, "production", "info")
	t.Cleanup(func() { logger.L = prev })

	serve(http.MethodDelete, "/orders/{id}", "/orders/3", "", func(c *appctx.Context) {
		c.ServerError("orders.destroy", errors.New("db down"))
	})

	out := buf.String()
	assert.Contains(t, out, `"op":"orders.destroy"`)
	assert.Contains(t, out, `"method":"DELETE"`)
	assert.Contains(t, out, `"path":"/orders/3"`)
	assert.Contains(t, out, `"error":"db down"`)
}

func TestString(t *testing.T) {
	rec := serve(http.MethodGet, "/", "/", "", func(c *appctx.Context) { c.String(http.StatusOK, "Welcome to the %s!", "E-Commerce API") })
	assert.Equal(t, "Welcome to the E-Commerce API!", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}
