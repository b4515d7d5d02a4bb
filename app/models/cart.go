package models

import "gorm.io/gorm"

// Cart holds a user's pending purchases. Each user has at most one cart;
// the unique index on UserID is the serialization point for two concurrent
// first adds racing to create it.
type Cart struct {
	gorm.Model
	UserID uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	Items  []CartItem `json:"items,omitempty"`
}

// RemoveItem detaches the item with the given id from the cart's in-memory
// list. It reports whether the item was present.
func (c *Cart) RemoveItem(itemID uint) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// CartItem is one product line in a cart. The product is a shared
// reference, not owned by the cart.
type CartItem struct {
	gorm.Model
	CartID    uint    `gorm:"not null;index" json:"cart_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Quantity  int     `gorm:"not null"       json:"quantity"`
	Product   Product `json:"product,omitempty"`
}
