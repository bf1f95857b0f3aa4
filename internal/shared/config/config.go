package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	DataDir     string

	// Auth
	JWTSecret       string
	JWTExpiresHours int
	AdminUsername   string
	AdminPassword   string

	// HTTP
	CORSOrigins        string
	SiteURL            string
	RateLimitPerMinute int

	// Chatbot
	ChatbotFallback    string
	ChatbotFAQEncoding string // text (legacy) or structured
	LLMFallback        bool
	OpenAIKey          string
	OpenAIBaseURL      string
	LLMModel           string

	// Email
	EmailProvider string
	ResendAPIKey  string
	BrevoAPIKey   string
	EmailFrom     string
	EmailFromName string
	AdminEmail    string

	// Maintenance
	AuditRetentionDays   int
	ChatLogRetentionDays int
	MaintenanceCron      string

	SeedDemoData bool
}

// DevJWTSecret signs tokens when JWT_SECRET is unset outside production
const DevJWTSecret = "dev-secret-change-me"

const DefaultChatbotFallback = "Thank you for your message. For specific inquiries, please contact us through our contact form or email us at info@sinfinimarketing.com"

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:        os.Getenv("PORT"),
		Env:         os.Getenv("ENV"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DataDir:     os.Getenv("DATA_DIR"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTExpiresHours: getInt("JWT_EXPIRES_HOURS", 24),
		AdminUsername:   os.Getenv("ADMIN_USERNAME"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),

		CORSOrigins:        os.Getenv("CORS_ORIGINS"),
		SiteURL:            os.Getenv("SITE_URL"),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 30),

		ChatbotFallback:    os.Getenv("CHATBOT_FALLBACK"),
		ChatbotFAQEncoding: strings.ToLower(os.Getenv("CHATBOT_FAQ_ENCODING")),
		LLMFallback:        getBool("LLM_FALLBACK", false),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:      os.Getenv("OPENAI_BASE_URL"),
		LLMModel:           os.Getenv("LLM_MODEL"),

		EmailProvider: strings.ToLower(os.Getenv("EMAIL_PROVIDER")),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		BrevoAPIKey:   os.Getenv("BREVO_API_KEY"),
		EmailFrom:     os.Getenv("EMAIL_FROM"),
		EmailFromName: os.Getenv("EMAIL_FROM_NAME"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),

		AuditRetentionDays:   getInt("AUDIT_RETENTION_DAYS", 90),
		ChatLogRetentionDays: getInt("CHAT_LOG_RETENTION_DAYS", 30),
		MaintenanceCron:      os.Getenv("MAINTENANCE_CRON"),

		SeedDemoData: getBool("SEED_DEMO_DATA", false),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set, using an insecure development secret")
		cfg.JWTSecret = DevJWTSecret
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}
	if cfg.CORSOrigins == "" {
		cfg.CORSOrigins = "*"
	}
	if cfg.SiteURL == "" {
		cfg.SiteURL = "http://localhost:3000"
	}
	if cfg.ChatbotFallback == "" {
		cfg.ChatbotFallback = DefaultChatbotFallback
	}
	if cfg.ChatbotFAQEncoding != "structured" {
		cfg.ChatbotFAQEncoding = "text"
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = "gpt-4o-mini"
	}
	if cfg.EmailFromName == "" {
		cfg.EmailFromName = "Sinfini Marketing FZC"
	}
	if cfg.MaintenanceCron == "" {
		cfg.MaintenanceCron = "0 0 3 * * *"
	}

	return cfg
}

// Validate rejects settings that are only acceptable in development
func (c *Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == DevJWTSecret) {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

// SQLitePath is the database file used when DATABASE_URL is empty.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "sinfini.db")
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer, using default")
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
