package models

import (
	"time"

	"gorm.io/gorm"
)

// Order records one purchased product line. Orders are created by checkout
// only and are immutable afterwards.
type Order struct {
	gorm.Model
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	ProductID   uint      `gorm:"not null;index" json:"product_id"`
	Quantity    int       `gorm:"not null"       json:"quantity"`
	PurchasedAt time.Time `gorm:"not null"       json:"purchased_at"`
	// Pointer so an unloaded association is dropped from JSON instead of
	// serialising as an empty product object.
	Product *Product `json:"product,omitempty"`
}
