package repositories

import (
	"sales-ops-backend/config"
	"sales-ops-backend/db/models"

	"go.uber.org/zap"
)

func personDoc(person models.Person) interface{} {
	var companyName, roleName string
	if person.Company != nil {
		companyName = person.Company.Name
	}
	if person.Role != nil {
		roleName = person.Role.Name
	}

	return struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		Surname        string `json:"surname"`
		Email          string `json:"email"`
		Phone          string `json:"phone"`
		CompanyID      string `json:"company_id"`
		CompanyName    string `json:"company_name,omitempty"`
		SellingPointID string `json:"selling_point_id,omitempty"`
		RoleName       string `json:"role_name,omitempty"`
		IsActive       bool   `json:"is_active"`
	}{
		ID:             person.ID.String(),
		Name:           person.Name,
		Surname:        person.Surname,
		Email:          person.Email,
		Phone:          person.Phone,
		CompanyID:      person.CompanyID.String(),
		CompanyName:    companyName,
		SellingPointID: derefUUID(person.SellingPointID),
		RoleName:       roleName,
		IsActive:       person.IsActive,
	}
}

func (r *BleveRepository) IndexSinglePerson(person models.Person) error {
	err := r.indexer.IndexDocument("people", person.ID.String(), personDoc(person))
	if err != nil {
		config.Logger.Error("Failed to index single person into Bleve",
			zap.Error(err),
			zap.String("person_id", person.ID.String()))
		return err
	}

	config.Logger.Info("Successfully indexed single person into Bleve",
		zap.String("person_id", person.ID.String()))
	return nil
}

func (r *BleveRepository) IndexExistingPeople(people []models.Person) error {
	docs := make(map[string]interface{})
	for _, person := range people {
		docs[person.ID.String()] = personDoc(person)
	}

	if len(docs) == 0 {
		return nil
	}

	err := r.indexer.BulkIndexDocuments("people", docs)
	if err != nil {
		config.Logger.Error("Failed to bulk index people into Bleve",
			zap.Error(err),
			zap.Int("count", len(docs)))
		return err
	}

	config.Logger.Info("Successfully bulk indexed people into Bleve",
		zap.Int("count", len(docs)))
	return nil
}
