package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessage is a submission of the public contact form
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Reference uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"reference"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Email     string    `gorm:"type:text;not null" json:"email"`
	Phone     string    `gorm:"type:text" json:"phone,omitempty"`
	Subject   string    `gorm:"type:text" json:"subject,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IPAddress string    `gorm:"type:text" json:"ip_address,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name
func (ContactMessage) TableName() string {
	return "contact_messages"
}

// BeforeCreate sets the public reference before creating
func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.Reference == uuid.Nil {
		m.Reference = uuid.New()
	}
	return nil
}

// ContactRequest represents the contact form payload
type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// ContactResponse acknowledges a submission
type ContactResponse struct {
	Message   string `json:"message"`
	Reference string `json:"reference"`
}

// ContactMessageListResponse represents paginated contact message list response
type ContactMessageListResponse struct {
	Messages   []ContactMessage `json:"messages"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}
