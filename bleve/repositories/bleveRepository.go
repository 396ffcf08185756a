package repositories

import (
	"context"

	bleveindex "sales-ops-backend/bleve/services"
	"sales-ops-backend/db/models"

	"github.com/google/uuid"
)

type BleveRepository struct {
	indexer *bleveindex.IndexingService
}

type BleveRepositoryInterface interface {
	// General
	DeleteAllIndices(ctx context.Context) error

	// ==== Company Indexing ====
	IndexSingleCompany(company models.Company) error
	IndexExistingCompanies(companies []models.Company) error

	// ==== Selling Point Indexing ====
	IndexSingleSellingPoint(sp models.SellingPoint) error
	IndexExistingSellingPoints(points []models.SellingPoint) error

	// ==== Person Indexing ====
	IndexSinglePerson(person models.Person) error
	IndexExistingPeople(people []models.Person) error
}

// Constructor returning both the struct and the interface
func NewBleveRepository(indexer *bleveindex.IndexingService) (*BleveRepository, BleveRepositoryInterface) {
	repo := &BleveRepository{indexer: indexer}
	return repo, repo
}

func (r *BleveRepository) DeleteAllIndices(ctx context.Context) error {
	return r.indexer.DeleteAllIndices()
}

func derefUUID(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
