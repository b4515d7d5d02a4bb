package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

// ReceiptController resolves receipt tokens issued at checkout. A token is
// sealed with the app key and self-authenticating, so the endpoint is public.
type ReceiptController struct{}

func NewReceiptController() *ReceiptController { return &ReceiptController{} }

// Show decodes the ?token= query value and returns the purchase summary.
func (rc *ReceiptController) Show() http.HandlerFunc {
	return ctx.Wrap(func(c *ctx.Context) {
		token := c.Query("token")
		if token == "" {
			c.Error(http.StatusBadRequest, "Missing receipt token")
			return
		}

		claims, err := services.DecodeReceiptToken(token)
		if err != nil {
			c.Error(http.StatusUnprocessableEntity, "Invalid receipt token")
			return
		}
		c.Success(claims)
	})
}
