package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// CartService mediates every mutation of a user's cart. The cart is the
// aggregate root for its items: callers never touch CartItem rows directly.
type CartService struct {
	users    UserStore
	products ProductStore
	carts    CartStore
	items    CartItemStore
	atomic   Atomic
}

func NewCartService(users UserStore, products ProductStore, carts CartStore, items CartItemStore, atomic Atomic) *CartService {
	return &CartService{users: users, products: products, carts: carts, items: items, atomic: atomic}
}

// AddItem puts quantity units of a product into the user's cart, creating
// the cart on first use. Adding a product already in the cart bumps the
// existing line's quantity instead of duplicating it.
//
// All validation happens before any write: a failed call leaves every
// record untouched.
func (s *CartService) AddItem(ctx context.Context, email string, productID uint, quantity int) error {
	log := logger.WithCtx(ctx)

	if quantity < 1 {
		return ErrInvalidQuantity
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return fmt.Errorf("cart: find user: %w", err)
	}
	if user == nil {
		log.Error("cart: user not found", "email", email)
		return ErrUserNotFound
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		return fmt.Errorf("cart: find product: %w", err)
	}
	if product == nil {
		log.Error("cart: product not found", "product_id", productID)
		return ErrProductNotFound
	}
	if !product.Active {
		log.Error("cart: product inactive", "product_id", productID)
		return ErrProductInactive
	}

	cart, err := s.carts.FindByUserID(user.ID)
	if err != nil {
		return fmt.Errorf("cart: find cart: %w", err)
	}
	if cart == nil {
		cart = &models.Cart{UserID: user.ID}
	}

	// All writes commit as one unit: cart creation, line insert or merge.
	merged := false
	err = s.atomic.Transact(ctx, func(tx Stores) error {
		if cart.ID == 0 {
			if err := tx.Carts.Save(cart); err != nil {
				return fmt.Errorf("create cart: %w", err)
			}
		}

		// Merge with an existing line for the same product if there is one.
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cart.Items[i].Quantity += quantity
				if err := tx.CartItems.Save(&cart.Items[i]); err != nil {
					return fmt.Errorf("update item: %w", err)
				}
				merged = true
				return nil
			}
		}

		item := models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			Product:   *product,
		}
		if err := tx.CartItems.Save(&item); err != nil {
			return fmt.Errorf("save item: %w", err)
		}
		cart.Items = append(cart.Items, item)
		if err := tx.Carts.Save(cart); err != nil {
			return fmt.Errorf("save cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cart: %w", err)
	}

	if merged {
		log.Info("cart: quantity merged", "product_id", productID, "user", user.Email)
	} else {
		log.Info("cart: item added", "product_id", productID, "quantity", quantity, "user", user.Email)
	}
	return nil
}

// RemoveItem takes one line out of the user's cart and deletes it. A
// missing item, or an item that belongs to someone else's cart, is logged
// and treated as a no-op toward the caller — the ownership check prevents
// cross-user deletion by guessed ids.
func (s *CartService) RemoveItem(ctx context.Context, email string, itemID uint) error {
	log := logger.WithCtx(ctx)

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return fmt.Errorf("cart: find user: %w", err)
	}
	if user == nil {
		log.Error("cart: user not found", "email", email)
		return ErrUserNotFound
	}

	cart, err := s.carts.FindByUserID(user.ID)
	if err != nil {
		return fmt.Errorf("cart: find cart: %w", err)
	}
	if cart == nil {
		log.Error("cart: no cart for user", "user", user.Email)
		return ErrCartNotFound
	}

	item, err := s.items.FindByID(itemID)
	if err != nil {
		return fmt.Errorf("cart: find item: %w", err)
	}
	if item == nil || item.CartID != cart.ID {
		log.Error("cart: item missing or not owned", "item_id", itemID, "user", user.Email)
		return nil
	}

	cart.RemoveItem(item.ID)
	err = s.atomic.Transact(ctx, func(tx Stores) error {
		if err := tx.CartItems.Delete(item); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		if err := tx.Carts.Save(cart); err != nil {
			return fmt.Errorf("save cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cart: %w", err)
	}

	log.Info("cart: item removed", "item_id", itemID, "user", user.Email)
	return nil
}

// GetCart returns the user's cart, or nil if they have none yet. Reading
// never creates a cart.
func (s *CartService) GetCart(ctx context.Context, email string) (*models.Cart, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("cart: find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	cart, err := s.carts.FindByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("cart: find cart: %w", err)
	}
	return cart, nil
}

// TotalPrice sums price × quantity over the cart's lines. Nil and empty
// carts total zero. Pure function, no store access.
func (s *CartService) TotalPrice(cart *models.Cart) int {
	if cart == nil {
		return 0
	}
	total := 0
	for i := range cart.Items {
		total += cart.Items[i].Product.Price * cart.Items[i].Quantity
	}
	return total
}
