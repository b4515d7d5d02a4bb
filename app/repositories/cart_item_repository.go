package repositories

import (
	"errors"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"gorm.io/gorm"
)

// CartItemRepository handles database operations for CartItem.
type CartItemRepository struct {
	q *orm.Query
}

func NewCartItemRepository() *CartItemRepository {
	return &CartItemRepository{}
}

func (r *CartItemRepository) query() *orm.Query {
	if r.q != nil {
		return r.q
	}
	return orm.DB()
}

func (r *CartItemRepository) FindByID(id uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.query().Preload("Product").Where("id = ?", id).First(&item)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Save persists the item's own columns. The referenced product is shared,
// not owned, so it is never written from here.
func (r *CartItemRepository) Save(item *models.CartItem) error {
	return r.query().SaveOmitAssociations(item)
}

func (r *CartItemRepository) Delete(item *models.CartItem) error {
	return r.query().Delete(item)
}
