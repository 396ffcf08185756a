package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ImportErrorType classifies why a row was rejected.
type ImportErrorType string

const (
	ValidationErrorType ImportErrorType = "Validation"
	DuplicateErrorType  ImportErrorType = "Duplicate"
	GeocodeErrorType    ImportErrorType = "Geocode"
	WriteErrorType      ImportErrorType = "Write"
	EmptyFileErrorType  ImportErrorType = "Empty File"
)

type AddedViaType string

const (
	SingleAddedViaType AddedViaType = "Single"
	BulkAddedViaType   AddedViaType = "Bulk"
)

// BulkImportError records a row that stopped a bulk import, kept for the
// error report sent back to the uploader. RawRow holds the original cell
// values so the uploader can fix and re-submit the exact line.
type BulkImportError struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	EntityType string          `gorm:"not null;index" json:"entity_type"`
	RowNumber  int             `json:"row_number"` // spreadsheet row, header = 1
	Reason     string          `json:"reason"`
	RawRow     datatypes.JSON  `json:"raw_row"`
	ErrorType  ImportErrorType `json:"error_type"`
	AddedVia   AddedViaType    `json:"added_via"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
