package auth

import (
	"time"
)

// User is an admin account allowed into the CMS
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"type:text;uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"type:text;not null" json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// LoginRequest represents login request payload
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"` // seconds
	User        *UserInfo `json:"user"`
}

// UserInfo represents user information in auth responses
type UserInfo struct {
	Username string `json:"username"`
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	Username  string
	ExpiresAt time.Time
}
