package repositories

import (
	"errors"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"gorm.io/gorm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	q *orm.Query
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) query() *orm.Query {
	if r.q != nil {
		return r.q
	}
	return orm.DB()
}

// FindByEmail looks up a user by their email address, preloading the order
// history. Returns (nil, nil) when no such user exists.
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.query().Preload("Orders").Where("email = ?", email).First(&user)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.query().Preload("Orders").Where("id = ?", id).First(&user)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Save persists the user and any orders appended to their history.
func (r *UserRepository) Save(user *models.User) error {
	if user.ID == 0 {
		return r.query().Create(user)
	}
	return r.query().Save(user)
}

// All returns every user.
func (r *UserRepository) All() ([]models.User, error) {
	var users []models.User
	err := r.query().Model(&models.User{}).Order("id").Get(&users)
	return users, err
}

// Paginate returns one page of users for the admin listing.
func (r *UserRepository) Paginate(page, limit int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	pagination, err := r.query().Model(&models.User{}).Order("id").GetWithPagination(&users, page, limit)
	return users, pagination, err
}
