package repositories

import (
	"sales-ops-backend/config"
	"sales-ops-backend/db/models"

	"go.uber.org/zap"
)

func companyDoc(company models.Company) interface{} {
	var categoryName string
	if company.Category != nil {
		categoryName = company.Category.Name
	}

	return struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		VAT          string `json:"vat"`
		CategoryID   string `json:"category_id,omitempty"`
		CategoryName string `json:"category_name,omitempty"`
		IsSupplier   bool   `json:"is_supplier"`
		IsSeller     bool   `json:"is_seller"`
		IsActive     bool   `json:"is_active"`
	}{
		ID:           company.ID.String(),
		Name:         company.Name,
		VAT:          company.VAT,
		CategoryID:   derefUUID(company.CategoryID),
		CategoryName: categoryName,
		IsSupplier:   company.IsSupplier,
		IsSeller:     company.IsSeller,
		IsActive:     company.IsActive,
	}
}

func (r *BleveRepository) IndexSingleCompany(company models.Company) error {
	err := r.indexer.IndexDocument("companies", company.ID.String(), companyDoc(company))
	if err != nil {
		config.Logger.Error("Failed to index single company into Bleve",
			zap.Error(err),
			zap.String("company_id", company.ID.String()))
		return err
	}

	config.Logger.Info("Successfully indexed single company into Bleve",
		zap.String("company_id", company.ID.String()))
	return nil
}

func (r *BleveRepository) IndexExistingCompanies(companies []models.Company) error {
	docs := make(map[string]interface{})
	for _, company := range companies {
		docs[company.ID.String()] = companyDoc(company)
	}

	if len(docs) == 0 {
		return nil
	}

	err := r.indexer.BulkIndexDocuments("companies", docs)
	if err != nil {
		config.Logger.Error("Failed to bulk index companies into Bleve",
			zap.Error(err),
			zap.Int("count", len(docs)))
		return err
	}

	config.Logger.Info("Successfully bulk indexed companies into Bleve",
		zap.Int("count", len(docs)))
	return nil
}
