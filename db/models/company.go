package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents a legal entity in the sales network. A company can act
// as a supplier, a seller, or both; the flags drive which reference sheets
// it appears on in import templates.
type Company struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Name string    `gorm:"not null;index" json:"name"`
	VAT  string    `gorm:"unique;not null;index" json:"vat"` // 11-digit fiscal code

	IsSupplier bool `gorm:"default:false" json:"is_supplier"`
	IsSeller   bool `gorm:"default:false" json:"is_seller"`

	AddressID  *uuid.UUID `gorm:"type:uuid;index" json:"address_id"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`

	Address  *Address  `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	// Audit fields
	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
