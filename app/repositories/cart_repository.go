package repositories

import (
	"errors"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"gorm.io/gorm"
)

// CartRepository handles database operations for Cart.
type CartRepository struct {
	q *orm.Query
}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

func (r *CartRepository) query() *orm.Query {
	if r.q != nil {
		return r.q
	}
	return orm.DB()
}

// FindByUserID loads a user's cart with its items and their products.
// Returns (nil, nil) when the user has no cart yet.
func (r *CartRepository) FindByUserID(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.query().
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id") }).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindByID loads a cart by primary key.
func (r *CartRepository) FindByID(id uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.query().
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id") }).
		Preload("Items.Product").
		Where("id = ?", id).
		First(&cart)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save persists the cart. Item rows are written by the item repository; a
// cart save only records the cart's own state.
func (r *CartRepository) Save(cart *models.Cart) error {
	if cart.ID == 0 {
		return r.query().Create(cart)
	}
	// Item writes are explicit and ordered in the service layer; a cart
	// save must not resurrect detached items through the association.
	return r.query().SaveOmitAssociations(cart)
}

// Delete removes the cart row.
func (r *CartRepository) Delete(cart *models.Cart) error {
	return r.query().Delete(cart)
}
