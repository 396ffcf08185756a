package bootstrap

import (
	"context"
	"log"

	bleveRepositories "sales-ops-backend/bleve/repositories"
	companiesRepositories "sales-ops-backend/companies/repositories"
	"sales-ops-backend/config"
	importsRepositories "sales-ops-backend/imports/repositories"

	"go.uber.org/zap"
)

// IndexBleveData rebuilds the search indexes from the database at startup.
func IndexBleveData(
	ctx context.Context,
	companyRepo companiesRepositories.CompanyRepository,
	importRepo importsRepositories.ImportRepository,
	bleveRepo bleveRepositories.BleveRepositoryInterface,
) {

	// Delete All Indexes first
	err := bleveRepo.DeleteAllIndices(ctx)
	if err != nil {
		log.Fatalf("Error deleting all indices: %v", err)
	}

	// Index Companies
	if companies, err := companyRepo.GetAllCompanies(ctx); err != nil {
		config.Logger.Error("Error fetching companies for Bleve indexing", zap.Error(err))
	} else if err := bleveRepo.IndexExistingCompanies(companies); err != nil {
		config.Logger.Error("Failed to index companies into Bleve", zap.Error(err))
	}

	// Index Selling Points
	if points, err := importRepo.GetAllSellingPoints(ctx); err != nil {
		config.Logger.Error("Error fetching selling points for Bleve indexing", zap.Error(err))
	} else if err := bleveRepo.IndexExistingSellingPoints(points); err != nil {
		config.Logger.Error("Failed to index selling points into Bleve", zap.Error(err))
	}

	// Index People
	if people, err := importRepo.GetAllPeople(ctx); err != nil {
		config.Logger.Error("Error fetching people for Bleve indexing", zap.Error(err))
	} else if err := bleveRepo.IndexExistingPeople(people); err != nil {
		config.Logger.Error("Failed to index people into Bleve", zap.Error(err))
	}
}
