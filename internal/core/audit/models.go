package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Actions recorded by the admin panel.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
	ActionLogout = "logout"
)

// AuditLog represents one admin action
type AuditLog struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`

	// Who
	Actor string `json:"actor" gorm:"type:text;index"`

	// Action details
	Action   string `json:"action" gorm:"type:text;not null;index"` // create, update, delete, login, logout
	Entity   string `json:"entity" gorm:"type:text;not null;index"` // product, blog_post, gallery_item, ...
	EntityID string `json:"entity_id" gorm:"type:text;index"`

	// Change tracking
	OldValue datatypes.JSON `json:"old_value,omitempty"`
	NewValue datatypes.JSON `json:"new_value,omitempty"`

	// Request metadata
	IPAddress string `json:"ip_address,omitempty" gorm:"type:text"`
	UserAgent string `json:"user_agent,omitempty" gorm:"type:text"`
	Method    string `json:"method,omitempty" gorm:"type:text"`
	Endpoint  string `json:"endpoint,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName specifies the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate sets UUID before creating
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Actor identifies the admin and request behind a change.
type Actor struct {
	Username  string
	IPAddress string
	UserAgent string
	Method    string
	Endpoint  string
}

// AuditFilter represents filters for querying audit logs
type AuditFilter struct {
	Actor     string
	Action    string
	Entity    string
	EntityID  string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// AuditLogResponse represents paginated audit log response
type AuditLogResponse struct {
	Logs       []AuditLog `json:"logs"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
