package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

const WelcomeText = "Welcome to the E-Commerce API!"

// Home answers GET / with a plain-text greeting.
func Home(c *ctx.Context) {
	c.String(http.StatusOK, WelcomeText)
}
