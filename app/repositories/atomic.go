package repositories

import (
	"context"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// Atomic runs service callbacks inside one database transaction, handing
// them repositories bound to the transaction handle.
type Atomic struct{}

func NewAtomic() *Atomic {
	return &Atomic{}
}

func (a *Atomic) Transact(ctx context.Context, fn func(s services.Stores) error) error {
	return orm.DB().Transaction(func(tx *orm.Query) error {
		return fn(services.Stores{
			Users:     &UserRepository{q: tx},
			Products:  &ProductRepository{q: tx},
			Images:    &ImageRepository{q: tx},
			Carts:     &CartRepository{q: tx},
			CartItems: &CartItemRepository{q: tx},
		})
	})
}
