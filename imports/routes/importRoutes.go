package routes

import (
	bleveRepositories "sales-ops-backend/bleve/repositories"
	companiesRepositories "sales-ops-backend/companies/repositories"
	"sales-ops-backend/imports/controllers"
	"sales-ops-backend/imports/repositories"
	"sales-ops-backend/imports/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ImportRouterInit(
	app *fiber.App,
	db *gorm.DB,
	importRepository repositories.ImportRepository,
	companyRepository companiesRepositories.CompanyRepository,
	bleveRepo bleveRepositories.BleveRepositoryInterface,
	importService *services.ImportService,
	templateGen *services.TemplateGenerator,
) {
	importController := &controllers.ImportController{
		ImportRepo:    importRepository,
		CompanyRepo:   companyRepository,
		DB:            db,
		BleveRepo:     bleveRepo,
		ImportService: importService,
		TemplateGen:   templateGen,
	}

	importRoutes := app.Group("/imports")
	importRoutes.Post("/:entityType", importController.BulkImport)
	importRoutes.Get("/:entityType/template", importController.DownloadTemplate)
}
