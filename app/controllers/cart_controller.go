package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

type CartController struct {
	carts    *services.CartService
	checkout *services.CheckoutService
}

func NewCartController(carts *services.CartService, checkout *services.CheckoutService) *CartController {
	return &CartController{carts: carts, checkout: checkout}
}

// View returns the cart with its computed total.
func (c *CartController) View(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	cart, err := c.carts.GetCart(r.Context(), email)
	if errors.Is(err, services.ErrUserNotFound) {
		response.Unauthorized(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load cart")
		return
	}

	response.Success(w, map[string]interface{}{
		"cart":        cart,
		"total_price": c.carts.TotalPrice(cart),
	})
}

type addItemInput struct {
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// Add puts a product into the cart.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	productID, err := strconv.ParseUint(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var in addItemInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	err = c.carts.AddItem(r.Context(), email, uint(productID), in.Quantity)
	switch {
	case errors.Is(err, services.ErrInvalidQuantity):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrProductNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrProductInactive):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		response.Unauthorized(w)
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Could not add to cart")
	default:
		response.Success(w, map[string]string{"message": "Added to cart"})
	}
}

// Remove deletes one line from the cart. A missing or foreign item behaves
// like a success: the line is gone either way from the caller's view.
func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	itemID, err := strconv.ParseUint(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid cart item id")
		return
	}

	err = c.carts.RemoveItem(r.Context(), email, uint(itemID))
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		response.Unauthorized(w)
	case errors.Is(err, services.ErrCartNotFound):
		response.NotFound(w)
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Could not remove item")
	default:
		response.Success(w, map[string]string{"message": "Removed from cart"})
	}
}

// Checkout finalises the cart into orders.
func (c *CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	receipt, err := c.checkout.Checkout(r.Context(), email)
	if errors.Is(err, services.ErrUserNotFound) {
		response.Unauthorized(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Checkout failed")
		return
	}

	response.Success(w, receipt)
}
