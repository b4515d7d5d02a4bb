package services

import (
	"context"

	"github.com/shashiranjanraj/storefront/app/models"
)

// Store ports consumed by the service layer. The concrete implementations
// live in app/repositories; tests substitute in-memory fakes.
//
// Lookups return (nil, nil) when the record is absent — "not found" is a
// normal outcome here, the services translate it into a domain error.

// UserStore persists User records.
type UserStore interface {
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	Save(user *models.User) error
	All() ([]models.User, error)
}

// ProductStore persists Product records.
type ProductStore interface {
	FindByID(id uint) (*models.Product, error)
	Save(product *models.Product) error
	Delete(product *models.Product) error
	FindActiveByTitle(title string) ([]models.Product, error)
	AllActive() ([]models.Product, error)
}

// ImageStore persists Image records.
type ImageStore interface {
	FindByID(id uint) (*models.Image, error)
	Save(img *models.Image) error
	Delete(img *models.Image) error
}

// CartStore persists Cart records.
type CartStore interface {
	FindByUserID(userID uint) (*models.Cart, error)
	FindByID(id uint) (*models.Cart, error)
	Save(cart *models.Cart) error
	Delete(cart *models.Cart) error
}

// CartItemStore persists CartItem records.
type CartItemStore interface {
	FindByID(id uint) (*models.CartItem, error)
	Save(item *models.CartItem) error
	Delete(item *models.CartItem) error
}

// Notifier delivers a purchase confirmation to the buyer. Delivery is
// best-effort from checkout's point of view: the returned error is observed
// (logged, counted, retried) but never rolls checkout back.
type Notifier interface {
	SendPurchaseConfirmation(email, productTitle string, quantity int) error
}

// Stores bundles every store port, bound to one transaction when handed out
// by Atomic.Transact.
type Stores struct {
	Users     UserStore
	Products  ProductStore
	Images    ImageStore
	Carts     CartStore
	CartItems CartItemStore
}

// Atomic runs fn inside a single transaction. The Stores passed to fn write
// through that transaction; returning an error rolls everything back.
type Atomic interface {
	Transact(ctx context.Context, fn func(s Stores) error) error
}

// ImageArchive keeps a copy of uploaded image payloads on the configured
// storage disk, next to the database row.
type ImageArchive interface {
	Put(path string, data []byte) error
	Delete(path string) error
}
