package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SellingPoint is a physical outlet operated by a seller company.
type SellingPoint struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Name string    `gorm:"not null;index" json:"name"`

	SellerCompanyID uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_company_id"`
	Phone           *string   `json:"phone"`

	AddressID uuid.UUID `gorm:"type:uuid;not null;index" json:"address_id"`

	SellerCompany *Company       `gorm:"foreignKey:SellerCompanyID" json:"seller_company,omitempty"`
	Address       *Address       `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	SupplierLinks []SupplierLink `gorm:"foreignKey:SellingPointID" json:"supplier_links,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	// Audit fields
	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SupplierLink associates a supplier company with a selling point it serves.
// CadenceDays feeds the visit-due dashboard; EndDate bounds the relationship
// in time when set.
type SupplierLink struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	SupplierID     uuid.UUID `gorm:"type:uuid;not null;index" json:"supplier_id"`
	SellingPointID uuid.UUID `gorm:"type:uuid;not null;index" json:"selling_point_id"`

	StartDate   time.Time  `gorm:"not null" json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CadenceDays *int       `json:"cadence_days"`
	Code        *string    `json:"code"`

	Supplier *Company `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
