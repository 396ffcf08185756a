package controllers

import (
	bleveRepositories "sales-ops-backend/bleve/repositories"
	companiesRepositories "sales-ops-backend/companies/repositories"
	"sales-ops-backend/imports/repositories"
	"sales-ops-backend/imports/services"

	"gorm.io/gorm"
)

type ImportController struct {
	ImportRepo    repositories.ImportRepository
	CompanyRepo   companiesRepositories.CompanyRepository
	DB            *gorm.DB
	BleveRepo     bleveRepositories.BleveRepositoryInterface
	ImportService *services.ImportService
	TemplateGen   *services.TemplateGenerator
}
