package services

import (
	"strings"

	"sales-ops-backend/db/models"
	importservices "sales-ops-backend/imports/services"
)

// ValidateCompany applies the same field rules as bulk import rows. Returns
// an empty string when the company is acceptable.
func ValidateCompany(company *models.Company) string {
	name := strings.TrimSpace(company.Name)
	if name == "" {
		return "Name missing or empty"
	}
	if importservices.ForbiddenName(name) {
		return "Name is a placeholder value"
	}
	if strings.TrimSpace(company.VAT) == "" {
		return "VAT missing or empty"
	}
	if !importservices.ValidVAT(company.VAT) {
		return "VAT must be exactly 11 digits"
	}
	return ""
}
