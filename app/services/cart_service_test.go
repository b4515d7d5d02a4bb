package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
)

func TestAddItemCreatesCartOnFirstUse(t *testing.T) {
	w := newWorld()
	buyer := w.seedUser("buyer@example.com")
	product := w.seedProduct(w.seedUser("seller@example.com"), "Mug", 500)

	svc := w.cartService()
	require.NoError(t, svc.AddItem(context.Background(), buyer.Email, product.ID, 2))

	cart, err := w.carts.FindByUserID(buyer.ID)
	require.NoError(t, err)
	require.NotNil(t, cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, product.ID, cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// Empty-cart create plus the save after appending the line.
	assert.Equal(t, 2, w.carts.saves)
	assert.Equal(t, 1, w.items.saves)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	w := newWorld()
	buyer := w.seedUser("buyer@example.com")
	product := w.seedProduct(w.seedUser("seller@example.com"), "Mug", 500)

	svc := w.cartService()
	ctx := context.Background()
	require.NoError(t, svc.AddItem(ctx, buyer.Email, product.ID, 2))

	cartSaves, itemSaves := w.carts.saves, w.items.saves
	require.NoError(t, svc.AddItem(ctx, buyer.Email, product.ID, 3))

	cart, _ := w.carts.FindByUserID(buyer.ID)
	require.Len(t, cart.Items, 1, "same product must merge, not duplicate")
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// The merge touches only the line.
	assert.Equal(t, cartSaves, w.carts.saves)
	assert.Equal(t, itemSaves+1, w.items.saves)
}

func TestAddItemDistinctProductsGetDistinctLines(t *testing.T) {
	w := newWorld()
	buyer := w.seedUser("buyer@example.com")
	seller := w.seedUser("seller@example.com")
	mug := w.seedProduct(seller, "Mug", 500)
	tote := w.seedProduct(seller, "Tote", 2800)

	svc := w.cartService()
	ctx := context.Background()
	require.NoError(t, svc.AddItem(ctx, buyer.Email, mug.ID, 1))
	require.NoError(t, svc.AddItem(ctx, buyer.Email, tote.ID, 1))

	cart, _ := w.carts.FindByUserID(buyer.ID)
	assert.Len(t, cart.Items, 2)
}

func TestAddItemValidatesBeforeWriting(t *testing.T) {
	w := newWorld()
	buyer := w.seedUser("buyer@example.com")
	inactive := w.seedProduct(w.seedUser("seller@example.com"), "Gone", 100)
	inactive.Active = false

	svc := w.cartService()
	ctx := context.Background()

	err := svc.AddItem(ctx, buyer.Email, inactive.ID, 1)
	assert.ErrorIs(t, err, services.ErrProductInactive)

	err = svc.AddItem(ctx, buyer.Email, 999, 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	err = svc.AddItem(ctx, "nobody@example.com", inactive.ID, 1)
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	err = svc.AddItem(ctx, buyer.Email, inactive.ID, 0)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)

	// None of the failures may have created a cart or written anything.
	cart, _ := w.carts.FindByUserID(buyer.ID)
	assert.Nil(t, cart)
	assert.Zero(t, w.carts.saves)
	assert.Zero(t, w.items.saves)
}

func TestRemoveItemDeletesOwnedLine(t *testing.T) {
	w := newWorld()
	buyer := w.seedUser("buyer@example.com")
	product := w.seedProduct(w.seedUser("seller@example.com"), "Mug", 500)

	svc := w.cartService()
	ctx := context.Background()
	require.NoError(t, svc.AddItem(ctx, buyer.Email, product.ID, 1))

	cart, _ := w.carts.FindByUserID(buyer.ID)
	itemID := cart.Items[0].ID

	require.NoError(t, svc.RemoveItem(ctx, buyer.Email, itemID))

	cart, _ = w.carts.FindByUserID(buyer.ID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 1, w.items.deletes)
}

func TestRemoveItemIgnoresForeignLine(t *testing.T) {
	w := newWorld()
	buyer := w.seedUser("buyer@example.com")
	other := w.seedUser("other@example.com")
	product := w.seedProduct(w.seedUser("seller@example.com"), "Mug", 500)

	svc := w.cartService()
	ctx := context.Background()
	require.NoError(t, svc.AddItem(ctx, other.Email, product.ID, 1))
	require.NoError(t, svc.AddItem(ctx, buyer.Email, product.ID, 1))

	otherCart, _ := w.carts.FindByUserID(other.ID)
	foreignID := otherCart.Items[0].ID

	// Guessing someone else's item id must not delete their line.
	require.NoError(t, svc.RemoveItem(ctx, buyer.Email, foreignID))

	otherCart, _ = w.carts.FindByUserID(other.ID)
	assert.Len(t, otherCart.Items, 1)
	assert.Zero(t, w.items.deletes)
}

func TestRemoveItemMissingLineIsNoOp(t *testing.T) {
	w := newWorld()
	buyer := w.seedUser("buyer@example.com")
	product := w.seedProduct(w.seedUser("seller@example.com"), "Mug", 500)

	svc := w.cartService()
	ctx := context.Background()
	require.NoError(t, svc.AddItem(ctx, buyer.Email, product.ID, 1))

	require.NoError(t, svc.RemoveItem(ctx, buyer.Email, 4242))
	assert.Zero(t, w.items.deletes)
}

func TestRemoveItemWithoutCart(t *testing.T) {
	w := newWorld()
	buyer := w.seedUser("buyer@example.com")

	err := w.cartService().RemoveItem(context.Background(), buyer.Email, 1)
	assert.ErrorIs(t, err, services.ErrCartNotFound)
}

func TestGetCartNeverCreates(t *testing.T) {
	w := newWorld()
	buyer := w.seedUser("buyer@example.com")

	cart, err := w.cartService().GetCart(context.Background(), buyer.Email)
	require.NoError(t, err)
	assert.Nil(t, cart)
	assert.Zero(t, w.carts.saves)
}

func TestTotalPrice(t *testing.T) {
	svc := newWorld().cartService()

	assert.Zero(t, svc.TotalPrice(nil))
	assert.Zero(t, svc.TotalPrice(&models.Cart{}))

	cart := &models.Cart{Items: []models.CartItem{
		{Quantity: 2, Product: models.Product{Price: 100}},
		{Quantity: 3, Product: models.Product{Price: 50}},
	}}
	assert.Equal(t, 350, svc.TotalPrice(cart))
}

func TestCartMutationsCommitAsOneUnit(t *testing.T) {
	w := newWorld()
	buyer := w.seedUser("buyer@example.com")
	mug := w.seedProduct(w.seedUser("seller@example.com"), "Mug", 500)

	ctx := context.Background()
	require.NoError(t, w.cartService().AddItem(ctx, buyer.Email, mug.ID, 1))

	savesBefore := w.carts.saves
	itemSavesBefore := w.items.saves

	// A transaction that cannot commit leaves every record untouched.
	broken := services.NewCartService(w.users, w.products, w.carts, w.items,
		&failingAtomic{err: errors.New("deadlock")})

	require.Error(t, broken.AddItem(ctx, buyer.Email, mug.ID, 1))
	assert.Equal(t, savesBefore, w.carts.saves)
	assert.Equal(t, itemSavesBefore, w.items.saves)

	cart, _ := w.carts.FindByUserID(buyer.ID)
	require.NotNil(t, cart)
	require.Len(t, cart.Items, 1)
	itemID := cart.Items[0].ID

	require.Error(t, broken.RemoveItem(ctx, buyer.Email, itemID))
	assert.Zero(t, w.items.deletes)
	got, _ := w.items.FindByID(itemID)
	assert.NotNil(t, got)
}
