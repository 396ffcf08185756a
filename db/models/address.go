package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Address is a physical location referenced by companies and selling points.
// It is never persisted without both coordinates resolved: either the caller
// supplied them or the geocoder filled them in first.
type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Line1      *string   `json:"line1"`
	Line2      *string   `json:"line2"`
	City       string    `gorm:"not null;index" json:"city"`
	State      string    `gorm:"not null" json:"state"`
	PostalCode *string   `json:"postal_code"`
	Country    string    `gorm:"not null" json:"country"`

	Latitude  decimal.Decimal `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude decimal.Decimal `gorm:"type:decimal(11,8);not null" json:"longitude"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
