package repositories

import (
	"errors"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"gorm.io/gorm"
)

// ImageRepository handles database operations for Image.
type ImageRepository struct {
	q *orm.Query
}

func NewImageRepository() *ImageRepository {
	return &ImageRepository{}
}

func (r *ImageRepository) query() *orm.Query {
	if r.q != nil {
		return r.q
	}
	return orm.DB()
}

// FindByID loads one image including its byte payload.
func (r *ImageRepository) FindByID(id uint) (*models.Image, error) {
	var img models.Image
	err := r.query().Where("id = ?", id).First(&img)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *ImageRepository) Save(img *models.Image) error {
	if img.ID == 0 {
		return r.query().Create(img)
	}
	return r.query().Save(img)
}

func (r *ImageRepository) Delete(img *models.Image) error {
	return r.query().Delete(img)
}
