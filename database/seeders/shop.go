package seeders

import (
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("admin_user", SeedAdminUser)
	Register("demo_catalog", SeedDemoCatalog)
}

// SeedAdminUser creates the initial admin account if it does not exist.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", "admin@storefront.local").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("change-me-please")
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Email:    "admin@storefront.local",
		Password: hash,
		Active:   true,
		Roles:    models.RoleUser + "," + models.RoleAdmin,
	}).Error
}

// SeedDemoCatalog inserts a few products owned by a demo seller so a fresh
// install has something to browse.
func SeedDemoCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("change-me-please")
	if err != nil {
		return err
	}
	seller := &models.User{
		Email:    "seller@storefront.local",
		Password: hash,
		Active:   true,
		Roles:    models.RoleUser,
	}
	if err := db.Create(seller).Error; err != nil {
		return err
	}

	products := []models.Product{
		{Title: "Walnut desk organizer", Description: "Five compartments, oiled finish.", Price: 4500, Active: true, UserID: seller.ID},
		{Title: "Ceramic pour-over set", Description: "Dripper and carafe, matte white.", Price: 6200, Active: true, UserID: seller.ID},
		{Title: "Linen tote bag", Description: "Heavy weave, inner pocket.", Price: 2800, Active: true, UserID: seller.ID},
	}
	return db.Create(&products).Error
}
