package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/config"
)

// Provider defines the interface for email providers
type Provider interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
	GetProviderName() string
}

// Service wraps the email provider
type Service struct {
	provider   Provider
	adminEmail string
	siteName   string
}

// NewService creates a new email service with the specified provider
func NewService(provider Provider, adminEmail, siteName string) *Service {
	return &Service{
		provider:   provider,
		adminEmail: adminEmail,
		siteName:   siteName,
	}
}

// NewServiceFromConfig picks the provider named by EMAIL_PROVIDER. The
// returned service is nil when email is not configured.
func NewServiceFromConfig(cfg *config.Config) (*Service, error) {
	if cfg.EmailProvider == "" || cfg.AdminEmail == "" {
		return nil, nil
	}

	var provider Provider
	switch strings.ToLower(cfg.EmailProvider) {
	case "resend":
		if cfg.ResendAPIKey == "" {
			return nil, fmt.Errorf("RESEND_API_KEY is required for the resend provider")
		}
		provider = NewResendProvider(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailFromName)
	case "brevo":
		if cfg.BrevoAPIKey == "" {
			return nil, fmt.Errorf("BREVO_API_KEY is required for the brevo provider")
		}
		provider = NewBrevoProvider(cfg.BrevoAPIKey, cfg.EmailFrom, cfg.EmailFromName)
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.EmailProvider)
	}

	return NewService(provider, cfg.AdminEmail, cfg.EmailFromName), nil
}

// SendEmail sends an HTML email
func (s *Service) SendEmail(ctx context.Context, to, subject, body string) error {
	if s == nil || s.provider == nil {
		return fmt.Errorf("no email provider configured")
	}
	return s.provider.SendEmail(ctx, to, subject, body)
}

// NotifyContact forwards a contact form submission to the admin inbox
func (s *Service) NotifyContact(ctx context.Context, msg ContactNotification) error {
	if s == nil || s.provider == nil {
		return fmt.Errorf("no email provider configured")
	}
	subject := "New contact message"
	if msg.Subject != "" {
		subject = fmt.Sprintf("New contact message: %s", msg.Subject)
	}
	return s.provider.SendEmail(ctx, s.adminEmail, subject, buildContactHTML(s.siteName, msg))
}

// GetProviderName returns the name of the current provider
func (s *Service) GetProviderName() string {
	if s == nil || s.provider == nil {
		return "none"
	}
	return s.provider.GetProviderName()
}
