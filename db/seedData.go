package db

import (
	"sales-ops-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedCategories populates the database with the system company categories.
func SeedCategories(db *gorm.DB, createdBy string) error {
	categories := []models.Category{
		{Name: "WHOLESALE", Description: "Wholesale distributors", IsActive: true, CreatedBy: createdBy},
		{Name: "RETAIL", Description: "Retail chains and shops", IsActive: true, CreatedBy: createdBy},
		{Name: "HORECA", Description: "Hotels, restaurants and catering", IsActive: true, CreatedBy: createdBy},
		{Name: "GDO", Description: "Large-scale organised distribution", IsActive: true, CreatedBy: createdBy},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := db.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				cat.ID = uuid.New()
				if err := db.Create(&cat).Error; err != nil {
					return err
				}
			} else {
				return err
			}
		}
	}
	return nil
}

// SeedRoles populates the database with the system person roles.
func SeedRoles(db *gorm.DB, createdBy string) error {
	roles := []models.Role{
		{Name: "OWNER", Description: "Business owner", IsActive: true, CreatedBy: createdBy},
		{Name: "BUYER", Description: "Purchasing contact", IsActive: true, CreatedBy: createdBy},
		{Name: "STORE_MANAGER", Description: "Selling point manager", IsActive: true, CreatedBy: createdBy},
		{Name: "AGENT", Description: "Field sales agent", IsActive: true, CreatedBy: createdBy},
	}

	for _, role := range roles {
		var existing models.Role
		if err := db.Where("name = ?", role.Name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				role.ID = uuid.New()
				if err := db.Create(&role).Error; err != nil {
					return err
				}
			} else {
				return err
			}
		}
	}
	return nil
}

// SeedAll runs every seeder in dependency order.
func SeedAll(db *gorm.DB) error {
	const createdBy = "system"
	if err := SeedCategories(db, createdBy); err != nil {
		return err
	}
	return SeedRoles(db, createdBy)
}
