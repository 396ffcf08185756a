package services

import (
	"testing"

	"sales-ops-backend/db/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateCompany(t *testing.T) {
	cases := []struct {
		name    string
		company models.Company
		want    string
	}{
		{
			name:    "valid",
			company: models.Company{Name: "Rossi Distribuzione", VAT: "01234567890"},
			want:    "",
		},
		{
			name:    "missing name",
			company: models.Company{VAT: "01234567890"},
			want:    "Name missing or empty",
		},
		{
			name:    "placeholder name",
			company: models.Company{Name: "prova", VAT: "01234567890"},
			want:    "Name is a placeholder value",
		},
		{
			name:    "missing vat",
			company: models.Company{Name: "Rossi Distribuzione"},
			want:    "VAT missing or empty",
		},
		{
			name:    "short vat",
			company: models.Company{Name: "Rossi Distribuzione", VAT: "12345"},
			want:    "VAT must be exactly 11 digits",
		},
		{
			name:    "vat with letters",
			company: models.Company{Name: "Rossi Distribuzione", VAT: "1234567890a"},
			want:    "VAT must be exactly 11 digits",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateCompany(&tc.company))
		})
	}
}
