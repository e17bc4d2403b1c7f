package controllers

import (
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

// fail maps a service error onto a response: not-found → 404 with
// notFound, bad references → 400 field map, anything else → 500.
func fail(c *ctx.Context, op, notFound string, err error) {
	var fe services.FieldErrors
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.NotFound(notFound)
	case errors.As(err, &fe):
		c.JSON(http.StatusBadRequest, map[string]string(fe))
	default:
		c.ServerError(op, err)
	}
}
