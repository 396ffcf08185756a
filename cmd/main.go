package main

import (
	"context"

	"sales-ops-backend/config"
	seed "sales-ops-backend/db"
	"sales-ops-backend/geocoding"
	"sales-ops-backend/internal/bootstrap"
	"sales-ops-backend/middleware"
	"sales-ops-backend/utils"

	// Repositories
	companies_repositories "sales-ops-backend/companies/repositories"
	imports_repositories "sales-ops-backend/imports/repositories"

	// Services
	imports_services "sales-ops-backend/imports/services"

	// Routes
	company_routes "sales-ops-backend/companies/routes"
	import_routes "sales-ops-backend/imports/routes"

	// bleve
	bleveRepositories "sales-ops-backend/bleve/repositories"
	bleveServices "sales-ops-backend/bleve/services"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	err := godotenv.Load(".env")
	if err != nil {
		config.Logger.Fatal("Error loading .env file", zap.Error(err))
	}

	app := fiber.New()

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	port := config.GetEnv("PORT")
	ctx := context.Background()

	redisClient := config.InitRedisServer(ctx)

	indexPath := config.GetEnv("BLEVE_INDEX_PATH")
	if indexPath == "" {
		indexPath = "./bleve_data" // Default for local development
		config.Logger.Warn("BLEVE_INDEX_PATH not set, using default: ./bleve_data")
	}

	// Initialize the mailer
	utils.InitializeMailer()
	if utils.GetMailer() == nil {
		config.Logger.Fatal("Mailer not initialized")
	}

	// Serve static files (generated error reports)
	app.Static("/public", "./public")

	// Repositories
	bleveIndexingService := bleveServices.NewIndexingService(config.Logger, indexPath)
	_, bleveInterfaceRepo := bleveRepositories.NewBleveRepository(bleveIndexingService)
	importRepo := imports_repositories.NewImportRepository(db)
	companyRepo := companies_repositories.NewCompanyRepository(db)

	// Services
	geocoder := geocoding.NewNominatimService(config.Logger, redisClient)
	resolver := imports_services.NewAddressResolver(geocoder)
	validator := imports_services.NewValidator(importRepo)
	writer := imports_services.NewWriter(importRepo, resolver, config.Logger)
	importService := imports_services.NewImportService(validator, writer, config.Logger)
	templateGen := imports_services.NewTemplateGenerator(importRepo)

	// Routes
	import_routes.ImportRouterInit(app, db, importRepo, companyRepo, bleveInterfaceRepo, importService, templateGen)
	company_routes.CompanyRouterInit(app, db, companyRepo, bleveInterfaceRepo, resolver)

	// Seed the reference tables used by import validation
	if err := seed.SeedAll(db); err != nil {
		config.Logger.Error("Database seeding failed", zap.Error(err))
	}

	// Background cleanup tasks
	go utils.RunScheduledCleanup(redisClient)

	// Re-Index all data
	bootstrap.IndexBleveData(ctx, companyRepo, importRepo, bleveInterfaceRepo)

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
