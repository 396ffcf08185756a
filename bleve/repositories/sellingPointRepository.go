package repositories

import (
	"sales-ops-backend/config"
	"sales-ops-backend/db/models"

	"go.uber.org/zap"
)

func sellingPointDoc(sp models.SellingPoint) interface{} {
	var sellerName, city string
	if sp.SellerCompany != nil {
		sellerName = sp.SellerCompany.Name
	}
	if sp.Address != nil {
		city = sp.Address.City
	}

	return struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		SellerCompanyID string `json:"seller_company_id"`
		SellerName      string `json:"seller_name,omitempty"`
		City            string `json:"city,omitempty"`
		IsActive        bool   `json:"is_active"`
	}{
		ID:              sp.ID.String(),
		Name:            sp.Name,
		SellerCompanyID: sp.SellerCompanyID.String(),
		SellerName:      sellerName,
		City:            city,
		IsActive:        sp.IsActive,
	}
}

func (r *BleveRepository) IndexSingleSellingPoint(sp models.SellingPoint) error {
	err := r.indexer.IndexDocument("selling_points", sp.ID.String(), sellingPointDoc(sp))
	if err != nil {
		config.Logger.Error("Failed to index single selling point into Bleve",
			zap.Error(err),
			zap.String("selling_point_id", sp.ID.String()))
		return err
	}

	config.Logger.Info("Successfully indexed single selling point into Bleve",
		zap.String("selling_point_id", sp.ID.String()))
	return nil
}

func (r *BleveRepository) IndexExistingSellingPoints(points []models.SellingPoint) error {
	docs := make(map[string]interface{})
	for _, sp := range points {
		docs[sp.ID.String()] = sellingPointDoc(sp)
	}

	if len(docs) == 0 {
		return nil
	}

	err := r.indexer.BulkIndexDocuments("selling_points", docs)
	if err != nil {
		config.Logger.Error("Failed to bulk index selling points into Bleve",
			zap.Error(err),
			zap.Int("count", len(docs)))
		return err
	}

	config.Logger.Info("Successfully bulk indexed selling points into Bleve",
		zap.Int("count", len(docs)))
	return nil
}
