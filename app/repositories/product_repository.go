package repositories

import (
	"errors"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"gorm.io/gorm"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	q *orm.Query
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) query() *orm.Query {
	if r.q != nil {
		return r.q
	}
	return orm.DB()
}

// FindByID loads a product with its image slots in stored order.
func (r *ProductRepository) FindByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.query().Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("images.id")
	}).Where("id = ?", id).First(&product)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Save persists the product and its attached images.
func (r *ProductRepository) Save(product *models.Product) error {
	if product.ID == 0 {
		return r.query().Create(product)
	}
	return r.query().Save(product)
}

// Delete removes the product row. The service layer deactivates instead of
// calling this; it exists for seeding and tests.
func (r *ProductRepository) Delete(product *models.Product) error {
	return r.query().Delete(product)
}

// FindActiveByTitle returns active products whose title contains text.
func (r *ProductRepository) FindActiveByTitle(text string) ([]models.Product, error) {
	var products []models.Product
	err := r.query().Model(&models.Product{}).
		Where("active = ? AND title LIKE ?", true, "%"+text+"%").
		Order("id").
		Get(&products)
	return products, err
}

// AllActive returns every active product.
func (r *ProductRepository) AllActive() ([]models.Product, error) {
	var products []models.Product
	err := r.query().Model(&models.Product{}).
		Where("active = ?", true).
		Order("id").
		Get(&products)
	return products, err
}
