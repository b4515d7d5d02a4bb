package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/crypt"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

// OrderPlacedEvent is the event name fired once per successful checkout.
// The payload is the *Receipt.
const OrderPlacedEvent = "order.placed"

// Receipt summarises what a checkout produced. Token is an encrypted,
// self-contained copy of the summary that the buyer can present to the
// public receipt endpoint without authenticating.
type Receipt struct {
	UserEmail string         `json:"user_email"`
	Orders    []models.Order `json:"orders"`
	Total     int            `json:"total"`
	Token     string         `json:"receipt_token,omitempty"`
}

// ReceiptClaims is the payload sealed inside a receipt token.
type ReceiptClaims struct {
	Email    string    `json:"email"`
	Orders   int       `json:"orders"`
	Total    int       `json:"total"`
	IssuedAt time.Time `json:"issued_at"`
}

// DecodeReceiptToken opens a receipt token issued at checkout.
func DecodeReceiptToken(token string) (*ReceiptClaims, error) {
	var claims ReceiptClaims
	if err := crypt.DecryptJSON(token, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// Empty reports whether the checkout was an inert call (no cart / no items).
func (r *Receipt) Empty() bool { return len(r.Orders) == 0 }

// CheckoutService turns a cart into persisted orders.
//
// The state change — orders created, order history extended, cart emptied —
// commits as one transaction. Purchase confirmations go out afterwards, one
// per line; a delivery failure is logged and counted but can no longer
// touch the committed state.
type CheckoutService struct {
	users    UserStore
	carts    CartStore
	notifier Notifier
	atomic   Atomic
}

func NewCheckoutService(users UserStore, carts CartStore, notifier Notifier, atomic Atomic) *CheckoutService {
	return &CheckoutService{users: users, carts: carts, notifier: notifier, atomic: atomic}
}

// Checkout finalises the cart of the user with the given email. An absent
// or empty cart is a valid, inert call: it returns an empty receipt,
// creates nothing and notifies nobody.
func (s *CheckoutService) Checkout(ctx context.Context, email string) (*Receipt, error) {
	log := logger.WithCtx(ctx)

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("checkout: find user: %w", err)
	}
	if user == nil {
		log.Error("checkout: user not found", "email", email)
		return nil, ErrUserNotFound
	}

	cart, err := s.carts.FindByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("checkout: find cart: %w", err)
	}
	if cart == nil || len(cart.Items) == 0 {
		log.Info("checkout: nothing to do", "user", user.Email)
		return &Receipt{UserEmail: user.Email}, nil
	}

	receipt := &Receipt{UserEmail: user.Email}
	type line struct {
		title string
		qty   int
	}
	lines := make([]line, 0, len(cart.Items))
	now := time.Now()

	err = s.atomic.Transact(ctx, func(tx Stores) error {
		for i := range cart.Items {
			item := &cart.Items[i]
			order := models.Order{
				UserID:      user.ID,
				ProductID:   item.ProductID,
				Quantity:    item.Quantity,
				PurchasedAt: now,
			}
			user.Orders = append(user.Orders, order)
			receipt.Orders = append(receipt.Orders, order)
			receipt.Total += item.Product.Price * item.Quantity
			lines = append(lines, line{title: item.Product.Title, qty: item.Quantity})

			if err := tx.CartItems.Delete(item); err != nil {
				return fmt.Errorf("delete cart item %d: %w", item.ID, err)
			}
		}

		cart.Items = nil
		if err := tx.Carts.Save(cart); err != nil {
			return fmt.Errorf("save cart: %w", err)
		}
		// Saving the user cascades the new order rows.
		if err := tx.Users.Save(user); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	if token, err := crypt.EncryptJSON(ReceiptClaims{
		Email:    user.Email,
		Orders:   len(receipt.Orders),
		Total:    receipt.Total,
		IssuedAt: now,
	}); err != nil {
		log.Error("checkout: seal receipt token", "error", err)
	} else {
		receipt.Token = token
	}

	// Best-effort from here on: the purchase is committed.
	for _, l := range lines {
		if err := s.notifier.SendPurchaseConfirmation(user.Email, l.title, l.qty); err != nil {
			metrics.NotificationFailures.Inc()
			log.Error("checkout: confirmation failed",
				"user", user.Email, "product", l.title, "error", err)
		}
	}

	metrics.OrdersPlaced.Add(float64(len(receipt.Orders)))
	metrics.OrderRevenue.Add(float64(receipt.Total))
	event.Fire(OrderPlacedEvent, receipt)

	log.Info("checkout: completed",
		"user", user.Email, "orders", len(receipt.Orders), "total", receipt.Total)
	return receipt, nil
}
