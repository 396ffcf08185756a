package controllers

import (
	bleveRepositories "sales-ops-backend/bleve/repositories"
	"sales-ops-backend/companies/repositories"
	importservices "sales-ops-backend/imports/services"

	"gorm.io/gorm"
)

type CompanyController struct {
	CompanyRepo repositories.CompanyRepository
	DB          *gorm.DB
	BleveRepo   bleveRepositories.BleveRepositoryInterface
	Resolver    *importservices.AddressResolver
}
