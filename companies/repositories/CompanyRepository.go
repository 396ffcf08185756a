package repositories

import (
	"context"
	"errors"

	"sales-ops-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	CreateCompanyWithAddress(ctx context.Context, company *models.Company, address *models.Address) (*models.Company, error)
	GetCompanyByVAT(ctx context.Context, vat string) (*models.Company, error)
	CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)
	GetAllCompanies(ctx context.Context) ([]models.Company, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// CreateCompanyWithAddress persists the address and the company in one
// transaction. The address may be nil when the company carries no location.
func (r *companyRepository) CreateCompanyWithAddress(ctx context.Context, company *models.Company, address *models.Address) (*models.Company, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address != nil {
			if err := tx.Create(address).Error; err != nil {
				return err
			}
			company.AddressID = &address.ID
		}
		return tx.Create(company).Error
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (r *companyRepository) GetCompanyByVAT(ctx context.Context, vat string) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).Where("vat = ?", vat).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ? AND is_active = ?", id, true).
		Count(&count).Error
	return count > 0, err
}

func (r *companyRepository) GetAllCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	err := r.db.WithContext(ctx).Preload("Category").Find(&companies).Error
	return companies, err
}
