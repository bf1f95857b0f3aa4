package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/chatbot"
)

// SettingsRowID is the primary key of the single settings row
const SettingsRowID = 1

// ChatbotSettings holds the greeting and FAQ list. Only one row exists.
type ChatbotSettings struct {
	ID        uint                                `gorm:"primaryKey" json:"-"`
	Greeting  string                              `gorm:"type:text;not null" json:"greeting"`
	FAQs      datatypes.JSONType[chatbot.FAQList] `gorm:"column:faqs" json:"faqs"`
	UpdatedAt time.Time                           `json:"updated_at"`
}

// TableName specifies the table name
func (ChatbotSettings) TableName() string {
	return "chatbot_settings"
}

// FAQList returns the stored FAQ list, never nil
func (s *ChatbotSettings) FAQList() chatbot.FAQList {
	return s.FAQs.Data().Normalized()
}

// DefaultChatbotSettings is what a fresh install answers with
func DefaultChatbotSettings() *ChatbotSettings {
	return &ChatbotSettings{
		ID:       SettingsRowID,
		Greeting: chatbot.DefaultGreeting,
		FAQs:     datatypes.NewJSONType(chatbot.DefaultFAQs()),
	}
}

// ChatbotSettingsRequest replaces greeting and FAQs in one call. FAQs may be
// sent as an array or as a JSON-encoded string.
type ChatbotSettingsRequest struct {
	Greeting string          `json:"greeting"`
	FAQs     chatbot.FAQList `json:"faqs"`
}

// ChatbotSettingsResponse is the read shape of the settings. FAQs holds
// either the list or its JSON encoding as a string.
type ChatbotSettingsResponse struct {
	Greeting  string      `json:"greeting"`
	FAQs      interface{} `json:"faqs" swaggertype:"string"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ChatMessageRequest is a visitor's chat message
type ChatMessageRequest struct {
	Message string `json:"message"`
}

// ChatMessageResponse is the bot's reply
type ChatMessageResponse struct {
	Response string `json:"response"`
}

// Chat outcomes
const (
	OutcomeResolved = "resolved"
	OutcomeFallback = "fallback"
)

// Reply sources
const (
	SourceFAQ    = "faq"
	SourceLLM    = "llm"
	SourceStatic = "static"
)

// ChatLog records one chatbot exchange
type ChatLog struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Message         string    `gorm:"type:text;not null" json:"message"`
	Response        string    `gorm:"type:text;not null" json:"response"`
	Outcome         string    `gorm:"type:text;not null;index" json:"outcome"`
	Source          string    `gorm:"type:text;not null" json:"source"`
	MatchedQuestion string    `gorm:"type:text" json:"matched_question,omitempty"`
	Score           int       `gorm:"not null;default:0" json:"score"`
	IPAddress       string    `gorm:"type:text" json:"ip_address,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name
func (ChatLog) TableName() string {
	return "chat_logs"
}

// ChatLogFilter represents chat log filtering options
type ChatLogFilter struct {
	Outcome  string
	Page     int
	PageSize int
}

// ChatLogListResponse represents paginated chat log list response
type ChatLogListResponse struct {
	Logs       []ChatLog `json:"logs"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}
