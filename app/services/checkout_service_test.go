package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

func TestCheckoutCreatesOrdersAndClearsCart(t *testing.T) {
	w := newWorld()
	buyer := w.seedUser("buyer@example.com")
	seller := w.seedUser("seller@example.com")
	mug := w.seedProduct(seller, "Mug", 500)
	tote := w.seedProduct(seller, "Tote", 2800)

	ctx := context.Background()
	carts := w.cartService()
	require.NoError(t, carts.AddItem(ctx, buyer.Email, mug.ID, 2))
	require.NoError(t, carts.AddItem(ctx, buyer.Email, tote.ID, 1))

	receipt, err := w.checkoutService().Checkout(ctx, buyer.Email)
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.Len(t, receipt.Orders, 2)
	assert.Equal(t, 2*500+2800, receipt.Total)
	assert.False(t, receipt.Empty())

	// Order history lives on the user and was persisted with them.
	assert.Len(t, buyer.Orders, 2)
	assert.Positive(t, w.users.saves)

	// The cart survives checkout, emptied; its lines are gone.
	cart, _ := w.carts.FindByUserID(buyer.ID)
	require.NotNil(t, cart)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 2, w.items.deletes)
	assert.Empty(t, w.items.items)

	// The sealed token opens back into the same summary.
	require.NotEmpty(t, receipt.Token)
	claims, err := services.DecodeReceiptToken(receipt.Token)
	require.NoError(t, err)
	assert.Equal(t, buyer.Email, claims.Email)
	assert.Equal(t, 2, claims.Orders)
	assert.Equal(t, receipt.Total, claims.Total)
}

func TestCheckoutSendsOneConfirmationPerLine(t *testing.T) {
	w := newWorld()
	buyer := w.seedUser("buyer@example.com")
	seller := w.seedUser("seller@example.com")
	mug := w.seedProduct(seller, "Mug", 500)
	tote := w.seedProduct(seller, "Tote", 2800)

	ctx := context.Background()
	carts := w.cartService()
	require.NoError(t, carts.AddItem(ctx, buyer.Email, mug.ID, 3))
	require.NoError(t, carts.AddItem(ctx, buyer.Email, tote.ID, 1))

	_, err := w.checkoutService().Checkout(ctx, buyer.Email)
	require.NoError(t, err)

	require.Len(t, w.notifier.sent, 2)
	assert.Equal(t, sentNotification{email: buyer.Email, title: "Mug", qty: 3}, w.notifier.sent[0])
	assert.Equal(t, sentNotification{email: buyer.Email, title: "Tote", qty: 1}, w.notifier.sent[1])
}

func TestCheckoutSucceedsWhenConfirmationFails(t *testing.T) {
	w := newWorld()
	w.notifier.err = errors.New("smtp down")
	buyer := w.seedUser("buyer@example.com")
	mug := w.seedProduct(w.seedUser("seller@example.com"), "Mug", 500)

	ctx := context.Background()
	require.NoError(t, w.cartService().AddItem(ctx, buyer.Email, mug.ID, 1))

	failuresBefore := testutil.ToFloat64(metrics.NotificationFailures)

	receipt, err := w.checkoutService().Checkout(ctx, buyer.Email)
	require.NoError(t, err, "a delivery failure must not fail the checkout")
	assert.Len(t, receipt.Orders, 1)

	// State committed despite the failed send.
	cart, _ := w.carts.FindByUserID(buyer.ID)
	assert.Empty(t, cart.Items)
	assert.Len(t, buyer.Orders, 1)

	assert.Equal(t, failuresBefore+1, testutil.ToFloat64(metrics.NotificationFailures))
}

func TestCheckoutEmptyCartIsInert(t *testing.T) {
	w := newWorld()
	buyer := w.seedUser("buyer@example.com")

	receipt, err := w.checkoutService().Checkout(context.Background(), buyer.Email)
	require.NoError(t, err)
	assert.True(t, receipt.Empty())
	assert.Equal(t, buyer.Email, receipt.UserEmail)

	assert.Empty(t, w.notifier.sent)
	assert.Zero(t, w.users.saves)
	assert.Zero(t, w.carts.saves)
}

func TestCheckoutUnknownUser(t *testing.T) {
	w := newWorld()

	_, err := w.checkoutService().Checkout(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

// failingAtomic aborts before running the callback, standing in for a
// transaction that could not commit.
type failingAtomic struct{ err error }

func (a *failingAtomic) Transact(context.Context, func(services.Stores) error) error {
	return a.err
}

func TestCheckoutNotificationsOnlyAfterCommit(t *testing.T) {
	w := newWorld()
	buyer := w.seedUser("buyer@example.com")
	mug := w.seedProduct(w.seedUser("seller@example.com"), "Mug", 500)

	ctx := context.Background()
	require.NoError(t, w.cartService().AddItem(ctx, buyer.Email, mug.ID, 1))

	svc := services.NewCheckoutService(w.users, w.carts, w.notifier,
		&failingAtomic{err: errors.New("deadlock")})

	_, err := svc.Checkout(ctx, buyer.Email)
	require.Error(t, err)
	assert.Empty(t, w.notifier.sent, "no confirmation may go out for an uncommitted checkout")
}
