package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Person is a contact attached to a company, optionally pinned to one of its
// selling points. Email is unique across the whole system.
type Person struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Name    string    `gorm:"not null" json:"name"`
	Surname string    `gorm:"not null" json:"surname"`
	Email   string    `gorm:"unique;not null;index" json:"email"`
	Phone   string    `gorm:"not null" json:"phone"`

	CompanyID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	SellingPointID *uuid.UUID `gorm:"type:uuid;index" json:"selling_point_id"`
	RoleID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"role_id"`

	Company      *Company      `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	SellingPoint *SellingPoint `gorm:"foreignKey:SellingPointID" json:"selling_point,omitempty"`
	Role         *Role         `gorm:"foreignKey:RoleID" json:"role,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	// Audit fields
	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
