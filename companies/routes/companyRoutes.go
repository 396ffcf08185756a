package routes

import (
	bleveRepositories "sales-ops-backend/bleve/repositories"
	"sales-ops-backend/companies/controllers"
	"sales-ops-backend/companies/repositories"
	importservices "sales-ops-backend/imports/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CompanyRouterInit(
	app *fiber.App,
	db *gorm.DB,
	companyRepository repositories.CompanyRepository,
	bleveRepo bleveRepositories.BleveRepositoryInterface,
	resolver *importservices.AddressResolver,
) {
	companyController := &controllers.CompanyController{
		CompanyRepo: companyRepository,
		DB:          db,
		BleveRepo:   bleveRepo,
		Resolver:    resolver,
	}

	companyRoutes := app.Group("/companies")
	companyRoutes.Post("/", companyController.CreateCompany)
}
