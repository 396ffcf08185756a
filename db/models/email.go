package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailLog keeps a record of every outbound email, including error-report
// attachments sent after a failed bulk import.
type EmailLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Recipient      string    `json:"recipient"`
	Subject        string    `json:"subject"`
	Message        string    `json:"message"`
	SentAt         time.Time `json:"sent_at"`
	Active         *bool     `json:"active"`
	AttachmentPath string    `json:"attachment_path"`
}
